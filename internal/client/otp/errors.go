package otp

import "errors"

var (
	ErrIncompleteCode = errors.New("otp: code is incomplete")
	ErrInvalidDigit   = errors.New("otp: cell accepts a single digit")
	ErrInvalidCell    = errors.New("otp: cell index out of range")
	ErrResendLocked   = errors.New("otp: resend is not available yet")
	ErrNotActive      = errors.New("otp: flow is not accepting input")
)
