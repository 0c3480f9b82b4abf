// Package otp implements the one-time-code verification screen as a state
// machine that is independent of any terminal or UI toolkit.
//
// The code is entered across four single-digit cells. A resend cooldown
// blocks requesting a new code until it runs out; it is recomputed from the
// moment it started rather than decremented, so a late or skipped tick never
// makes it drift. A successful submit marks the session authenticated and
// navigates to the dashboard.
package otp
