package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/schooladmin/internal/client/httpx"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRejected     = errors.New("request rejected")
	ErrBadResponse  = errors.New("malformed server response")
)

// APIError carries what the server said about a failed request.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string

	kind  error
	cause error
}

// Kind returns the sentinel the status code maps to.
func (e *APIError) Kind() error {
	if e.kind != nil {
		return e.kind
	}
	return kindForStatus(e.StatusCode)
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind().Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(&b, "; %s: %s", k, strings.Join(e.Fields[k], ", "))
		}
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind()}
	}
	return []error{e.Kind(), e.cause}
}

func kindForStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}

func (c *RESTClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *httpx.StatusError
	if errors.As(err, &se) {
		msg, fields := parseErrorBody(se.Body)
		return &APIError{
			StatusCode: se.StatusCode,
			Message:    msg,
			Fields:     fields,
			kind:       kindForStatus(se.StatusCode),
			cause:      err,
		}
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	var ne *httpx.NetworkError
	if errors.As(err, &ne) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
