package httpx

import "fmt"

// Origin names the base URL an attempt is sent to.
type Origin string

const (
	OriginPrimary   Origin = "primary"
	OriginSecondary Origin = "secondary"
)

// Attempt is the metadata attached to one try of a request.
type Attempt struct {
	Origin  Origin
	BaseURL string
	Retried bool
}

// Outcome is what an attempt produced: a transport error or a status code.
type Outcome struct {
	StatusCode int
	Err        error
}

func (o Outcome) retryable() bool {
	return o.Err != nil || o.StatusCode >= 500
}

// RequestPlan is the decision taken after a failed attempt.
type RequestPlan struct {
	Retry  bool
	Next   Attempt
	Reason string
}

// WithFallback decides whether a failed attempt is replayed on the fallback
// origin. Only a primary attempt that has not been retried yet and failed
// with a network error or a 5xx status is replayed, and only when a fallback
// origin exists.
func WithFallback(a Attempt, o Outcome, fallbackBaseURL string) RequestPlan {
	switch {
	case !o.retryable():
		return RequestPlan{Reason: fmt.Sprintf("status %d is not retryable", o.StatusCode)}
	case a.Retried:
		return RequestPlan{Reason: "request already retried"}
	case a.Origin != OriginPrimary:
		return RequestPlan{Reason: "failure on secondary origin"}
	case fallbackBaseURL == "":
		return RequestPlan{Reason: "no fallback origin configured"}
	}

	reason := fmt.Sprintf("server error %d", o.StatusCode)
	if o.Err != nil {
		reason = "network error"
	}

	return RequestPlan{
		Retry:  true,
		Next:   Attempt{Origin: OriginSecondary, BaseURL: fallbackBaseURL, Retried: true},
		Reason: reason,
	}
}
