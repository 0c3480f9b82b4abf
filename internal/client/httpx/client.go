package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/common"
	"github.com/dmitrijs2005/schooladmin/internal/logging"
	"github.com/google/uuid"
)

// DefaultTimeout applies to every request when Options.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// TokenSource supplies the bearer token for outbound requests.
// An empty token means the request is sent without Authorization.
type TokenSource interface {
	Token() string
}

// Request is a replayable description of an outbound call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

// Response is a fully read 2xx response together with the attempt that
// produced it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Attempt    Attempt
}

type Options struct {
	PrimaryBaseURL  string
	FallbackBaseURL string
	Timeout         time.Duration
	Tokens          TokenSource
	Logger          logging.Logger
	// HTTPClient overrides the underlying client; its Timeout is replaced.
	HTTPClient   *http.Client
	NewRequestID func() string
}

type Client struct {
	http         *http.Client
	primary      string
	fallback     string
	tokens       TokenSource
	log          logging.Logger
	newRequestID func() string
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// New validates the origins and builds a Client. The fallback origin is
// optional; without it failures are never retried.
func New(opts Options) (*Client, error) {
	if err := checkBaseURL(opts.PrimaryBaseURL); err != nil {
		return nil, fmt.Errorf("primary base url: %w", err)
	}
	if opts.FallbackBaseURL != "" {
		if err := checkBaseURL(opts.FallbackBaseURL); err != nil {
			return nil, fmt.Errorf("fallback base url: %w", err)
		}
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		cp := *opts.HTTPClient
		hc = &cp
	}
	hc.Timeout = opts.Timeout
	if hc.Timeout <= 0 {
		hc.Timeout = DefaultTimeout
	}

	c := &Client{
		http:         hc,
		primary:      strings.TrimRight(opts.PrimaryBaseURL, "/"),
		fallback:     strings.TrimRight(opts.FallbackBaseURL, "/"),
		tokens:       opts.Tokens,
		log:          opts.Logger,
		newRequestID: opts.NewRequestID,
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	if c.newRequestID == nil {
		c.newRequestID = uuid.NewString
	}
	return c, nil
}

// Timeout reports the per-attempt timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// CloseIdleConnections releases pooled connections to both origins.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// Do sends req to the primary origin and, when WithFallback allows it,
// replays it once on the fallback origin.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := c.newRequestID()
	attempt := Attempt{Origin: OriginPrimary, BaseURL: c.primary}
	log := c.log.With("method", req.Method, "path", req.Path, "request_id", requestID)

	for {
		resp, err := c.send(ctx, attempt, req, requestID)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		outcome := Outcome{Err: err}
		var failure error
		if err != nil {
			failure = &NetworkError{Attempt: attempt, Err: err}
		} else {
			outcome.StatusCode = resp.StatusCode
			failure = &StatusError{StatusCode: resp.StatusCode, Body: resp.Body, Attempt: attempt}
		}

		if ctx.Err() != nil {
			log.Debug(ctx, "request cancelled", "origin", attempt.Origin)
			return nil, failure
		}

		plan := WithFallback(attempt, outcome, c.fallback)
		if !plan.Retry {
			log.Error(ctx, "request failed", "origin", attempt.Origin, "status", outcome.StatusCode,
				"reason", plan.Reason, "error", failure)
			return nil, failure
		}

		log.Warn(ctx, "retrying on fallback origin", "from", attempt.Origin, "to", plan.Next.Origin,
			"reason", plan.Reason, "status", outcome.StatusCode)
		attempt = plan.Next
	}
}

func (c *Client) buildURL(base string, req Request) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u = u.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	return u.String(), nil
}

func (c *Client) send(ctx context.Context, attempt Attempt, req Request, requestID string) (*Response, error) {
	target, err := c.buildURL(attempt.BaseURL, req)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	hr, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	if hr.Header.Get(common.ContentTypeHeader) == "" {
		hr.Header.Set(common.ContentTypeHeader, common.JSONContentType)
	}
	if hr.Header.Get(common.AcceptHeader) == "" {
		hr.Header.Set(common.AcceptHeader, common.JSONContentType)
	}
	hr.Header.Set(common.RequestIDHeader, requestID)
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			hr.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
		}
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data, Attempt: attempt}, nil
}
