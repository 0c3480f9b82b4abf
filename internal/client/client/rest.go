package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/schooladmin/internal/client/httpx"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
)

const (
	healthPath    = "/api/health"
	sendOTPPath   = "/api/auth/otp/send"
	verifyOTPPath = "/api/auth/otp/verify"
	logoutPath    = "/api/auth/logout"
	profilePath   = "/api/auth/me"
)

type RESTClient struct {
	http *httpx.Client
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client over the primary and fallback origins in opts.
func NewRESTClient(opts httpx.Options) (*RESTClient, error) {
	h, err := httpx.New(opts)
	if err != nil {
		return nil, err
	}
	return &RESTClient{http: h}, nil
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *RESTClient) call(ctx context.Context, method, path string, in, out any) error {
	req := httpx.Request{Method: method, Path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Body = b
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return c.mapError(err)
	}
	return decodePayload(resp.Body, out)
}

type healthStatus struct {
	Status string `json:"status"`
}

// Ping checks the health endpoint. A body that reports a status other than
// ok/up counts as unavailable.
func (c *RESTClient) Ping(ctx context.Context) error {
	var h healthStatus
	if err := c.call(ctx, http.MethodGet, healthPath, nil, &h); err != nil {
		return err
	}
	switch strings.ToLower(h.Status) {
	case "", "ok", "up", "healthy":
		return nil
	default:
		return fmt.Errorf("%w: health status %q", ErrUnavailable, h.Status)
	}
}

func (c *RESTClient) SendOTP(ctx context.Context, mobile string) error {
	return c.call(ctx, http.MethodPost, sendOTPPath, models.SendOTPRequest{Mobile: mobile}, nil)
}

// verifyResult accepts both token spellings seen from the API.
type verifyResult struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"access_token"`
	User        *models.Profile `json:"user"`
}

func (c *RESTClient) VerifyOTP(ctx context.Context, mobile, code string) (*models.AuthResult, error) {
	var res verifyResult
	req := models.VerifyOTPRequest{Mobile: mobile, OTP: code}
	if err := c.call(ctx, http.MethodPost, verifyOTPPath, req, &res); err != nil {
		return nil, err
	}

	token := res.Token
	if token == "" {
		token = res.AccessToken
	}
	if token == "" {
		return nil, fmt.Errorf("%w: verification response has no token", ErrBadResponse)
	}
	return &models.AuthResult{Token: token, User: res.User}, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, logoutPath, nil, nil)
}

func (c *RESTClient) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.call(ctx, http.MethodGet, profilePath, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func itemPath(kind models.Kind, id string) string {
	return kind.Path() + "/" + url.PathEscape(id)
}

func (c *RESTClient) ListRecords(ctx context.Context, kind models.Kind, out any) error {
	return c.call(ctx, http.MethodGet, kind.Path(), nil, out)
}

func (c *RESTClient) GetRecord(ctx context.Context, kind models.Kind, id string, out any) error {
	return c.call(ctx, http.MethodGet, itemPath(kind, id), nil, out)
}

func (c *RESTClient) CreateRecord(ctx context.Context, kind models.Kind, in, out any) error {
	return c.call(ctx, http.MethodPost, kind.Path(), in, out)
}

func (c *RESTClient) UpdateRecord(ctx context.Context, kind models.Kind, id string, in, out any) error {
	return c.call(ctx, http.MethodPut, itemPath(kind, id), in, out)
}

func (c *RESTClient) DeleteRecord(ctx context.Context, kind models.Kind, id string) error {
	return c.call(ctx, http.MethodDelete, itemPath(kind, id), nil, nil)
}
