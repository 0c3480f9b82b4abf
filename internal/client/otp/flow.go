package otp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/logging"
)

// CodeLength is the number of cells in a code.
const CodeLength = 4

const incompleteMessage = "Please enter the complete 4-digit code"

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseEntering   Phase = "entering"
	PhaseSubmitting Phase = "submitting"
	PhaseDone       Phase = "done"
	PhaseRedirected Phase = "redirected"
	PhaseClosed     Phase = "closed"
)

type ResendState string

const (
	ResendLocked    ResendState = "resend-locked"
	ResendAvailable ResendState = "resend-available"
)

type Route string

const (
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
)

// Navigator moves the console to another screen.
type Navigator interface {
	Navigate(ctx context.Context, route Route)
}

// Authenticator persists the authenticated flag.
type Authenticator interface {
	MarkAuthenticated(ctx context.Context) error
}

// Verifier talks to the backend. It is optional; without one the flow only
// validates the code locally.
type Verifier interface {
	SendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, code string) error
}

type Options struct {
	Navigator     Navigator
	Authenticator Authenticator
	Verifier      Verifier
	Logger        logging.Logger
	Cooldown      time.Duration
	Now           func() time.Time
}

// State is a point-in-time copy of the flow for rendering.
type State struct {
	Mobile    string
	Cells     [CodeLength]string
	Focus     int
	Error     string
	Phase     Phase
	Resend    ResendState
	Remaining int
}

// Code joins the cells.
func (s State) Code() string {
	return strings.Join(s.Cells[:], "")
}

// Flow is safe for use by the input loop and a ticker goroutine at once.
type Flow struct {
	nav      Navigator
	auth     Authenticator
	verifier Verifier
	log      logging.Logger
	cooldown time.Duration
	now      func() time.Time

	mu        sync.Mutex
	mobile    string
	cells     [CodeLength]string
	focus     int
	errMsg    string
	phase     Phase
	resend    ResendState
	countdown Countdown
	remaining int
	ticking   bool
}

func New(opts Options) *Flow {
	f := &Flow{
		nav:      opts.Navigator,
		auth:     opts.Authenticator,
		verifier: opts.Verifier,
		log:      opts.Logger,
		cooldown: opts.Cooldown,
		now:      opts.Now,
		phase:    PhaseIdle,
		resend:   ResendLocked,
	}
	if f.log == nil {
		f.log = logging.Discard()
	}
	if f.cooldown <= 0 {
		f.cooldown = DefaultCooldown
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// Mount starts the flow for mobile. An empty mobile redirects to the login
// screen and ends the flow.
func (f *Flow) Mount(ctx context.Context, mobile string) {
	mobile = strings.TrimSpace(mobile)

	f.mu.Lock()
	if mobile == "" {
		f.phase = PhaseRedirected
		f.ticking = false
		f.mu.Unlock()
		f.log.Debug(ctx, "otp screen opened without a mobile number")
		f.navigate(ctx, RouteLogin)
		return
	}

	f.mobile = mobile
	f.phase = PhaseEntering
	f.resetLocked()
	f.mu.Unlock()

	if f.verifier == nil {
		f.log.Warn(ctx, "otp verification is local only, no backend verifier configured")
	}
}

// resetLocked clears the cells and restarts the cooldown. f.mu must be held.
func (f *Flow) resetLocked() {
	f.cells = [CodeLength]string{}
	f.focus = 0
	f.errMsg = ""
	f.countdown = NewCountdown(f.now(), f.cooldown)
	f.remaining = f.countdown.Remaining(f.now())
	f.resend = ResendLocked
	f.ticking = true
	if f.remaining == 0 {
		f.resend = ResendAvailable
		f.ticking = false
	}
}

// Tick samples the countdown at now. becameAvailable is true only on the
// tick that unlocks resend.
func (f *Flow) Tick(now time.Time) (remaining int, becameAvailable bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.ticking {
		return f.remaining, false
	}
	f.remaining = f.countdown.Remaining(now)
	if f.remaining == 0 {
		f.ticking = false
		f.resend = ResendAvailable
		return 0, true
	}
	return f.remaining, false
}

// Ticking reports whether the countdown still needs ticks.
func (f *Flow) Ticking() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticking
}

// EnterDigit stores v in cell i. An empty v clears the cell. Focus moves to
// the next cell after a digit is entered.
func (f *Flow) EnterDigit(i int, v string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseEntering {
		return ErrNotActive
	}
	if i < 0 || i >= CodeLength {
		return ErrInvalidCell
	}
	if v != "" && !isDigits(v, 1) {
		return ErrInvalidDigit
	}

	f.cells[i] = v
	f.errMsg = ""
	f.focus = i
	if v != "" && i < CodeLength-1 {
		f.focus = i + 1
	}
	return nil
}

// Backspace clears cell i when it holds a digit. On an empty cell it moves
// focus to the previous one.
func (f *Flow) Backspace(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseEntering {
		return ErrNotActive
	}
	if i < 0 || i >= CodeLength {
		return ErrInvalidCell
	}

	if f.cells[i] != "" {
		f.cells[i] = ""
		f.focus = i
		return nil
	}
	if i > 0 {
		f.focus = i - 1
	}
	return nil
}

// Paste distributes a full code pasted into the first cell. Anything else is
// ignored and reported as ErrInvalidDigit.
func (f *Flow) Paste(i int, s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseEntering {
		return ErrNotActive
	}
	s = strings.TrimSpace(s)
	if i != 0 || !isDigits(s, CodeLength) {
		return ErrInvalidDigit
	}

	for n := range CodeLength {
		f.cells[n] = s[n : n+1]
	}
	f.errMsg = ""
	f.focus = CodeLength - 1
	return nil
}

// Resend requests a new code once the cooldown has run out, then clears the
// cells and restarts the cooldown.
func (f *Flow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != PhaseEntering {
		f.mu.Unlock()
		return ErrNotActive
	}
	if f.resend != ResendAvailable {
		f.mu.Unlock()
		return ErrResendLocked
	}
	mobile := f.mobile
	f.mu.Unlock()

	if f.verifier != nil {
		if err := f.verifier.SendOTP(ctx, mobile); err != nil {
			f.setError("Could not resend the code, please try again")
			return fmt.Errorf("resend otp: %w", err)
		}
	}

	f.mu.Lock()
	if f.phase != PhaseEntering {
		f.mu.Unlock()
		return ErrNotActive
	}
	f.resetLocked()
	f.mu.Unlock()

	f.log.Info(ctx, "otp resent")
	return nil
}

// Submit verifies the entered code. An incomplete code sets an inline error
// and keeps the flow in the entering phase.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != PhaseEntering {
		f.mu.Unlock()
		return ErrNotActive
	}
	code := strings.Join(f.cells[:], "")
	if !isDigits(code, CodeLength) {
		f.errMsg = incompleteMessage
		f.mu.Unlock()
		return ErrIncompleteCode
	}
	f.phase = PhaseSubmitting
	mobile := f.mobile
	f.mu.Unlock()

	if f.verifier != nil {
		if err := f.verifier.VerifyOTP(ctx, mobile, code); err != nil {
			f.fail("Invalid code, please try again")
			return fmt.Errorf("verify otp: %w", err)
		}
	}

	f.mu.Lock()
	closed := f.phase != PhaseSubmitting
	f.mu.Unlock()
	if closed {
		return ErrNotActive
	}

	if f.auth != nil {
		if err := f.auth.MarkAuthenticated(ctx); err != nil {
			f.fail("Could not save the session")
			return fmt.Errorf("mark authenticated: %w", err)
		}
	}

	f.mu.Lock()
	f.phase = PhaseDone
	f.ticking = false
	f.mu.Unlock()

	f.log.Info(ctx, "otp verified")
	f.navigate(ctx, RouteDashboard)
	return nil
}

// Unmount stops the countdown and closes a flow that has not finished.
// Later ticks are no-ops and later input returns ErrNotActive.
func (f *Flow) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticking = false
	switch f.phase {
	case PhaseIdle, PhaseEntering, PhaseSubmitting:
		f.phase = PhaseClosed
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Mobile:    f.mobile,
		Cells:     f.cells,
		Focus:     f.focus,
		Error:     f.errMsg,
		Phase:     f.phase,
		Resend:    f.resend,
		Remaining: f.remaining,
	}
}

func (f *Flow) setError(msg string) {
	f.mu.Lock()
	f.errMsg = msg
	f.mu.Unlock()
}

func (f *Flow) fail(msg string) {
	f.mu.Lock()
	if f.phase == PhaseSubmitting {
		f.phase = PhaseEntering
	}
	f.errMsg = msg
	f.mu.Unlock()
}

func (f *Flow) navigate(ctx context.Context, r Route) {
	if f.nav != nil {
		f.nav.Navigate(ctx, r)
	}
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
