package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/client/otp"
)

// countdownTick is how often the OTP screen samples the resend countdown.
var countdownTick = time.Second

// runOTPScreen drives an otp.Flow from input lines:
//
//	7        one digit for the focused cell
//	1234     paste the whole code
//	<        backspace
//	resend   request a new code once the countdown is over
//	submit   or an empty line, submit the code
//	cancel   leave the screen
//
// A ticker goroutine samples the countdown and stops when the screen exits.
func (a *App) runOTPScreen(ctx context.Context, mobile string) error {
	flow := otp.New(otp.Options{
		Navigator:     a,
		Authenticator: a.session,
		Verifier:      a.authService.Verifier(),
		Logger:        a.log.With("component", "otp"),
		Cooldown:      a.config.ResendCooldown,
		Now:           a.now,
	})

	flow.Mount(ctx, mobile)
	if flow.State().Phase == otp.PhaseRedirected {
		return nil
	}

	screenCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.runCountdown(screenCtx, flow)
	}()
	defer func() {
		flow.Unmount()
		cancel()
		wg.Wait()
	}()

	a.printf("A 4-digit code was sent to %s.\n", mobile)
	a.println("Type digits one per line or paste the code; '<' erases, 'resend', 'submit', 'cancel'.")
	a.renderOTP(flow.State())

	for {
		line, err := ReadLine(a.reader)
		if err != nil {
			return err
		}

		done, err := a.handleOTPInput(ctx, flow, line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		a.renderOTP(flow.State())
	}
}

// handleOTPInput applies one input line. done is true when the screen should
// close.
func (a *App) handleOTPInput(ctx context.Context, flow *otp.Flow, line string) (done bool, err error) {
	st := flow.State()

	switch cmd := strings.ToLower(strings.TrimSpace(line)); {
	case cmd == "cancel":
		a.println("Login cancelled.")
		return true, nil

	case cmd == "resend":
		err := flow.Resend(ctx)
		switch {
		case errors.Is(err, otp.ErrResendLocked):
			a.printf("You can resend the code in %ds.\n", flow.State().Remaining)
		case err != nil:
			a.log.Warn(ctx, "resend failed", "error", err)
		default:
			a.println("A new code was sent.")
		}
		return false, nil

	case cmd == "" || cmd == "submit":
		err := flow.Submit(ctx)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, otp.ErrIncompleteCode):
			return false, nil
		case errors.Is(err, otp.ErrNotActive):
			return true, nil
		default:
			a.log.Warn(ctx, "otp submit failed", "error", err)
			return false, nil
		}

	case cmd == "<":
		return false, flow.Backspace(st.Focus)

	case len(cmd) == otp.CodeLength:
		if err := flow.Paste(0, cmd); err != nil {
			a.println("A pasted code must be exactly 4 digits.")
		}
		return false, nil

	case len(cmd) == 1:
		if err := flow.EnterDigit(st.Focus, cmd); err != nil {
			a.println("Only digits 0-9 are accepted.")
		}
		return false, nil

	default:
		a.println("Type a single digit, the full 4-digit code, '<', 'resend', 'submit' or 'cancel'.")
		return false, nil
	}
}

// runCountdown ticks the flow until ctx is done. It keeps running after an
// unlock so the countdown restarted by a resend is ticked too. On a terminal
// the remaining time is announced every ten seconds.
func (a *App) runCountdown(ctx context.Context, flow *otp.Flow) {
	ticker := time.NewTicker(countdownTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !flow.Ticking() {
				continue
			}
			remaining, available := flow.Tick(a.now())
			switch {
			case available:
				a.println("You can now request a new code (type 'resend').")
			case a.interactive && remaining > 0 && remaining%10 == 0:
				a.printf("Resend available in %ds.\n", remaining)
			}
		}
	}
}

func (a *App) renderOTP(st otp.State) {
	var b strings.Builder
	for i, c := range st.Cells {
		if c == "" {
			c = "_"
		}
		if i == st.Focus {
			fmt.Fprintf(&b, "[%s]", c)
		} else {
			fmt.Fprintf(&b, " %s ", c)
		}
	}

	switch st.Resend {
	case otp.ResendAvailable:
		b.WriteString("   resend available")
	default:
		fmt.Fprintf(&b, "   resend in %ds", st.Remaining)
	}
	a.println(b.String())

	if st.Error != "" {
		a.println("! " + st.Error)
	}
}
