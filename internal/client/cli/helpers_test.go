package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/config"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/session"
	"github.com/dmitrijs2005/schooladmin/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements client.Client. Ping is read by the watcher goroutine,
// so every field is guarded by mu.
type fakeAPI struct {
	mu sync.Mutex

	pingErr      error
	pings        int
	verifyRet    *models.AuthResult
	verifyErr    error
	sendCalls    int
	verifyCode   string
	profileRet   *models.Profile
	profileErr   error
	logoutCalls  int
	records      map[models.Kind]string
	recordErr    error
	lastIn       any
	lastID       string
	deleteCalled bool
}

var _ client.Client = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{records: map[models.Kind]string{}}
}

func (f *fakeAPI) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAPI) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *fakeAPI) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendCalls
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAPI) SendOTP(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	return nil
}

func (f *fakeAPI) VerifyOTP(_ context.Context, _, code string) (*models.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCode = code
	return f.verifyRet, f.verifyErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return nil
}

func (f *fakeAPI) Profile(context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profileRet, f.profileErr
}

func (f *fakeAPI) ListRecords(_ context.Context, kind models.Kind, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	payload := f.records[kind]
	if payload == "" {
		payload = "[]"
	}
	return json.Unmarshal([]byte(payload), out)
}

func (f *fakeAPI) GetRecord(_ context.Context, kind models.Kind, id string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID = id
	if f.recordErr != nil {
		return f.recordErr
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(f.records[kind]), &items); err != nil {
		return err
	}
	for _, raw := range items {
		var probe struct {
			ID models.ID `json:"id"`
		}
		if err := json.Unmarshal(raw, &probe); err == nil && string(probe.ID) == id {
			return json.Unmarshal(raw, out)
		}
	}
	return &client.APIError{StatusCode: 404, Message: "not found"}
}

func (f *fakeAPI) CreateRecord(_ context.Context, _ models.Kind, in, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastIn = in
	if f.recordErr != nil {
		return f.recordErr
	}
	return echo(in, "new-1", out)
}

func (f *fakeAPI) UpdateRecord(_ context.Context, _ models.Kind, id string, in, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastIn, f.lastID = in, id
	if f.recordErr != nil {
		return f.recordErr
	}
	return echo(in, id, out)
}

func (f *fakeAPI) DeleteRecord(_ context.Context, _ models.Kind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID = id
	f.deleteCalled = true
	return f.recordErr
}

func echo(in any, id string, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	m["id"] = id
	if b, err = json.Marshal(m); err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

type testApp struct {
	*App
	api *fakeAPI
	buf *lockedBuffer
}

// lockedBuffer can be read while background goroutines write to it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// newTestApp builds an App over a temporary database that reads the given
// input lines.
func newTestApp(t *testing.T, input string, tweak func(*config.Config)) *testApp {
	t.Helper()
	return newTestAppReader(t, strings.NewReader(input), tweak)
}

func newTestAppReader(t *testing.T, in io.Reader, tweak func(*config.Config)) *testApp {
	t.Helper()

	orig := countdownTick
	countdownTick = time.Hour
	t.Cleanup(func() { countdownTick = orig })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "console.db")
	if tweak != nil {
		tweak(cfg)
	}

	ctx := context.Background()
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sess, err := session.Open(ctx, db)
	require.NoError(t, err)

	api := newFakeAPI()
	buf := &lockedBuffer{}
	a := newApp(cfg, logging.Discard(), sess, api, in, buf)
	return &testApp{App: a, api: api, buf: buf}
}

func (ta *testApp) login(t *testing.T) {
	t.Helper()
	require.NoError(t, ta.session.MarkAuthenticated(context.Background()))
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

type atomicTime struct {
	mu sync.Mutex
	t  time.Time
}

func (a *atomicTime) set(t time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.t = t
}

func (a *atomicTime) get() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.t
}
