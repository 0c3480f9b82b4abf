package httpx

import "fmt"

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       []byte
	Attempt    Attempt
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s origin responded with status %d", e.Attempt.Origin, e.StatusCode)
}

// NetworkError is returned when no response was received at all.
type NetworkError struct {
	Attempt Attempt
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s origin unreachable: %v", e.Attempt.Origin, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
