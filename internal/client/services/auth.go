// Package services contains the application services of the school admin
// console. This file defines the authentication service: requesting and
// verifying one-time codes, logout, liveness probe and profile refresh.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/otp"
	"github.com/dmitrijs2005/schooladmin/internal/client/session"
	"github.com/dmitrijs2005/schooladmin/internal/common"
	"github.com/dmitrijs2005/schooladmin/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - RequestOTP: validate the mobile number and ask the server for a code.
//   - Verify: check a code with the server and start the session.
//   - Verifier: the backend verifier for the OTP screen, nil when codes are
//     only checked locally.
//   - Logout: best-effort server logout, then clear the local session.
//   - Ping: check server liveness.
//   - RefreshProfile: reload the signed-in user and cache it.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	RequestOTP(ctx context.Context, mobile string) error
	Verify(ctx context.Context, mobile, code string) error
	Verifier() otp.Verifier
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	RefreshProfile(ctx context.Context) (*models.Profile, error)
	Close(ctx context.Context) error
}

type AuthOptions struct {
	// RemoteOTP sends and verifies codes through the API. When false the
	// code is only checked for completeness on the client.
	RemoteOTP bool
	Logger    logging.Logger
}

type authService struct {
	client    client.Client
	session   *session.Session
	validator *models.Validator
	remoteOTP bool
	log       logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session.
func NewAuthService(c client.Client, s *session.Session, v *models.Validator, opts AuthOptions) AuthService {
	a := &authService{
		client:    c,
		session:   s,
		validator: v,
		remoteOTP: opts.RemoteOTP,
		log:       opts.Logger,
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	return a
}

func (a *authService) RequestOTP(ctx context.Context, mobile string) error {
	if err := a.validator.ValidateMobile(mobile); err != nil {
		return err
	}
	if !a.remoteOTP {
		a.log.Debug(ctx, "remote otp disabled, not requesting a code", "mobile", mobile)
		return nil
	}
	if err := a.client.SendOTP(ctx, mobile); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

// Verify checks the code with the server and stores the issued token and
// profile. Without remote OTP it does nothing.
func (a *authService) Verify(ctx context.Context, mobile, code string) error {
	if !a.remoteOTP {
		return nil
	}
	res, err := a.client.VerifyOTP(ctx, mobile, code)
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	if err := a.session.Begin(ctx, res.Token, res.User); err != nil {
		return err
	}
	a.log.Info(ctx, "session started", "mobile", mobile)
	return nil
}

type remoteVerifier struct {
	a *authService
}

func (v remoteVerifier) SendOTP(ctx context.Context, mobile string) error {
	return v.a.RequestOTP(ctx, mobile)
}

func (v remoteVerifier) VerifyOTP(ctx context.Context, mobile, code string) error {
	return v.a.Verify(ctx, mobile, code)
}

func (a *authService) Verifier() otp.Verifier {
	if !a.remoteOTP {
		return nil
	}
	return remoteVerifier{a: a}
}

// Logout tells the server to drop the token when there is one, then clears
// the local session whatever the server said.
func (a *authService) Logout(ctx context.Context) error {
	if !a.session.IsAuthenticated() && a.session.Token() == "" {
		return common.ErrNotLoggedIn
	}
	if a.session.Token() != "" {
		if err := a.client.Logout(ctx); err != nil {
			a.log.Warn(ctx, "server logout failed", "error", err)
		}
	}
	return a.session.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// RefreshProfile fetches the current user. A token the server no longer
// accepts ends the local session.
func (a *authService) RefreshProfile(ctx context.Context) (*models.Profile, error) {
	if a.session.Token() == "" {
		return nil, common.ErrNotLoggedIn
	}

	p, err := a.client.Profile(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		a.log.Info(ctx, "session rejected by server, clearing")
		if cerr := a.session.Clear(ctx); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err := a.session.SetProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
