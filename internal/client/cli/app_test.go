package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/otp"
	"github.com/dmitrijs2005/schooladmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenExpiring(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestSetMode(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ctx := context.Background()

	assert.Equal(t, Mode(""), ta.Mode())
	ta.setMode(ctx, ModeOnline)
	assert.Equal(t, ModeOnline, ta.Mode())
	ta.setMode(ctx, ModeOffline)
	assert.Equal(t, ModeOffline, ta.Mode())
}

func TestStartOnlineStatusWatcher_FollowsPing(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ta.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return ta.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	ta.api.setPingErr(client.ErrUnavailable)
	require.Eventually(t, func() bool { return ta.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.GreaterOrEqual(t, ta.api.pingCount(), 2)
}

func TestNavigate(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ctx := context.Background()

	ta.Navigate(ctx, otp.RouteLogin)
	assert.Equal(t, otp.RouteLogin, ta.currentRoute())
	assert.Contains(t, ta.buf.String(), "Please log in with your mobile number")

	ta.buf.Reset()
	ta.Navigate(ctx, otp.RouteDashboard)
	assert.Equal(t, otp.RouteDashboard, ta.currentRoute())
	out := ta.buf.String()
	assert.Contains(t, out, "Welcome, administrator!")
	for _, k := range models.Kinds() {
		assert.Contains(t, out, string(k))
	}
}

func TestGetStatus(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ctx := context.Background()

	assert.Equal(t, "", ta.getStatus())
	ta.setMode(ctx, ModeOffline)
	assert.Equal(t, "(offline)", ta.getStatus())

	require.NoError(t, ta.session.Begin(ctx, "tok", &models.Profile{Name: "Asha"}))
	assert.Equal(t, "(Asha offline)", ta.getStatus())
}

func TestStatus(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ctx := context.Background()

	require.NoError(t, ta.Status(ctx))
	out := ta.buf.String()
	assert.Contains(t, out, "Mode:     unknown")
	assert.Contains(t, out, "Primary:  http://localhost:8080")
	assert.Contains(t, out, "Fallback: http://localhost:8081")
	assert.Contains(t, out, "Session:  not logged in")

	ta.buf.Reset()
	require.NoError(t, ta.session.Begin(ctx, tokenExpiring(t, time.Now().Add(2*time.Hour)), nil))
	require.NoError(t, ta.Status(ctx))
	assert.Contains(t, ta.buf.String(), "Session:  logged in")
	assert.Contains(t, ta.buf.String(), "Expires:")
}

func TestLogout(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ctx := context.Background()

	assert.ErrorIs(t, ta.Logout(ctx), common.ErrNotLoggedIn)

	require.NoError(t, ta.session.Begin(ctx, "tok", nil))
	require.NoError(t, ta.Logout(ctx))

	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, "", ta.session.Token())
	assert.Equal(t, 1, ta.api.logoutCalls)
	assert.Equal(t, otp.RouteLogin, ta.currentRoute())
	assert.Contains(t, ta.buf.String(), "Logged out.")
}

func TestWhoAmI(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		ta := newTestApp(t, "", nil)
		assert.ErrorIs(t, ta.WhoAmI(ctx), common.ErrNotLoggedIn)
	})

	t.Run("refreshed", func(t *testing.T) {
		ta := newTestApp(t, "", nil)
		require.NoError(t, ta.session.Begin(ctx, "tok", &models.Profile{Name: "Old"}))
		ta.api.profileRet = &models.Profile{Name: "Asha Rao", Mobile: "9876543210", Role: "admin"}

		require.NoError(t, ta.WhoAmI(ctx))
		out := ta.buf.String()
		assert.Contains(t, out, "Name:   Asha Rao")
		assert.Contains(t, out, "Role:   admin")
		assert.Equal(t, "Asha Rao", ta.session.Profile().Name)
	})

	t.Run("offline uses cache", func(t *testing.T) {
		ta := newTestApp(t, "", nil)
		require.NoError(t, ta.session.Begin(ctx, "tok", &models.Profile{Name: "Cached"}))
		ta.api.profileErr = client.ErrUnavailable

		require.NoError(t, ta.WhoAmI(ctx))
		assert.Contains(t, ta.buf.String(), "Name:   Cached")
	})

	t.Run("rejected token", func(t *testing.T) {
		ta := newTestApp(t, "", nil)
		require.NoError(t, ta.session.Begin(ctx, "tok", &models.Profile{Name: "Cached"}))
		ta.api.profileErr = client.ErrUnauthorized

		assert.ErrorIs(t, ta.WhoAmI(ctx), client.ErrUnauthorized)
		assert.False(t, ta.isLoggedIn())
	})

	t.Run("local login without profile", func(t *testing.T) {
		ta := newTestApp(t, "", nil)
		ta.login(t)

		require.NoError(t, ta.WhoAmI(ctx))
		assert.Contains(t, ta.buf.String(), "no profile available")
	})
}

func TestExpireSession(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ctx := context.Background()

	require.NoError(t, ta.session.Begin(ctx, tokenExpiring(t, time.Now().Add(-time.Minute)), nil))
	ta.expireSession(ctx)
	assert.False(t, ta.isLoggedIn())

	require.NoError(t, ta.session.Begin(ctx, tokenExpiring(t, time.Now().Add(time.Hour)), nil))
	ta.expireSession(ctx)
	assert.True(t, ta.isLoggedIn())
}

func TestRun_StartsOnLoginScreenAndExits(t *testing.T) {
	orig := printlnFn
	var printed []string
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	ta := newTestApp(t, lines("help", "exit"), nil)
	ta.Run(context.Background())

	out := ta.buf.String()
	assert.Contains(t, out, "School admin console")
	assert.Contains(t, out, "Please log in")
	assert.Contains(t, printed, helpLoggedOut)
	assert.Contains(t, printed, "Bye!")
}
