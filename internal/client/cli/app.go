package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/config"
	"github.com/dmitrijs2005/schooladmin/internal/client/httpx"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/otp"
	"github.com/dmitrijs2005/schooladmin/internal/client/services"
	"github.com/dmitrijs2005/schooladmin/internal/client/session"
	"github.com/dmitrijs2005/schooladmin/internal/filex"
	"github.com/dmitrijs2005/schooladmin/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single probe of the online status watcher.
const pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	session     *session.Session
	authService services.AuthService
	validator   *models.Validator
	records     map[models.Kind]recordCommands
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
	now         func() time.Time

	mu    sync.RWMutex
	mode  Mode
	route otp.Route
}

// NewApp opens the local store, restores the session and connects the API
// client to the configured origins.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	sess, err := session.Open(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open session: %w", err)
	}

	api, err := client.NewRESTClient(httpx.Options{
		PrimaryBaseURL:  c.PrimaryBaseURL,
		FallbackBaseURL: c.FallbackBaseURL,
		Timeout:         c.RequestTimeout,
		Tokens:          sess,
		Logger:          log.With("component", "http"),
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, log, sess, api, os.Stdin, os.Stdout)
	a.db = db
	a.interactive = isTerminal(int(os.Stdin.Fd()))
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, sess *session.Session, api client.Client, in io.Reader, out io.Writer) *App {
	v := models.NewValidator()
	a := &App{
		config:    c,
		log:       log,
		session:   sess,
		validator: v,
		reader:    bufio.NewReader(in),
		out:       &syncWriter{w: out},
		now:       time.Now,
		authService: services.NewAuthService(api, sess, v, services.AuthOptions{
			RemoteOTP: c.RemoteOTP,
			Logger:    log.With("component", "auth"),
		}),
	}
	a.records = newRecordRegistry(a, api, v)
	return a
}

// syncWriter serialises writes from the REPL and background goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Navigate switches the current screen.
func (a *App) Navigate(ctx context.Context, route otp.Route) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()

	switch route {
	case otp.RouteDashboard:
		a.showDashboard()
	case otp.RouteLogin:
		a.println("Please log in with your mobile number (type 'login').")
	}
}

func (a *App) currentRoute() otp.Route {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.route
}

func (a *App) showDashboard() {
	name := "administrator"
	if p := a.session.Profile(); p != nil && p.Name != "" {
		name = p.Name
	}
	a.printf("Welcome, %s!\n", name)
	a.println("Collections:")
	for _, k := range models.Kinds() {
		a.printf("  %s\n", k)
	}
	a.println("Type 'list <collection>' to browse or 'help' for all commands.")
}

// Run shows the console until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	a.println("School admin console (type 'help' for commands)")
	a.expireSession(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	if a.isLoggedIn() {
		a.Navigate(ctx, otp.RouteDashboard)
	} else {
		a.Navigate(ctx, otp.RouteLogin)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// expireSession drops a stored session whose token has an exp claim in the
// past.
func (a *App) expireSession(ctx context.Context) {
	if !a.session.Expired(a.now()) {
		return
	}
	a.log.Info(ctx, "stored session expired")
	if err := a.session.Clear(ctx); err != nil {
		a.log.Error(ctx, "clear expired session", "error", err)
	}
}

func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "close api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "close database", "error", err)
		}
	}
}

// StartOnlineStatusWatcher pings the backend every interval and switches
// between online and offline mode. It blocks until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) getStatus() string {
	var parts []string
	if p := a.session.Profile(); p != nil && p.Name != "" {
		parts = append(parts, p.Name)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
