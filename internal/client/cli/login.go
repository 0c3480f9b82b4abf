package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/otp"
	"github.com/dmitrijs2005/schooladmin/internal/common"
)

// Login asks for a mobile number, requests a code and runs the OTP screen.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in. Type 'logout' to switch user.")
		return nil
	}

	var mobile string
	for {
		text, err := GetSimpleText(a.reader, "Enter mobile number", a.out)
		if err != nil {
			return err
		}
		if err := a.validator.ValidateMobile(text); err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				a.println(verr.Fields["mobile"])
				continue
			}
			return err
		}
		mobile = text
		break
	}

	if err := a.authService.RequestOTP(ctx, mobile); err != nil {
		return fmt.Errorf("request code: %w", err)
	}
	return a.runOTPScreen(ctx, mobile)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	a.Navigate(ctx, otp.RouteLogin)
	return nil
}

// WhoAmI prints the signed-in user. With a server token it refreshes the
// profile first and falls back to the cached one when offline.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}

	p := a.session.Profile()
	if a.session.Token() != "" {
		fresh, err := a.authService.RefreshProfile(ctx)
		switch {
		case err == nil:
			p = fresh
		case errors.Is(err, common.ErrNotLoggedIn):
		default:
			if !a.isLoggedIn() {
				return err
			}
			a.log.Warn(ctx, "profile refresh failed, showing cached profile", "error", err)
		}
	}

	if p == nil {
		a.println("Logged in (no profile available).")
		return nil
	}
	a.printf("Name:   %s\n", p.Name)
	a.printf("Mobile: %s\n", p.Mobile)
	if p.Email != "" {
		a.printf("Email:  %s\n", p.Email)
	}
	if p.Role != "" {
		a.printf("Role:   %s\n", p.Role)
	}
	return nil
}

// Status prints connectivity and session details.
func (a *App) Status(ctx context.Context) error {
	mode := a.Mode()
	if mode == "" {
		mode = "unknown"
	}
	a.printf("Mode:     %s\n", mode)
	a.printf("Primary:  %s\n", a.config.PrimaryBaseURL)
	if a.config.FallbackBaseURL != "" {
		a.printf("Fallback: %s\n", a.config.FallbackBaseURL)
	}

	if !a.isLoggedIn() {
		a.println("Session:  not logged in")
		return nil
	}
	a.println("Session:  logged in")
	if exp, ok := a.session.ExpiresAt(); ok {
		left := exp.Sub(a.now()).Round(time.Minute)
		a.printf("Expires:  %s (in %s)\n", exp.Local().Format(time.DateTime), left)
	}
	return nil
}
