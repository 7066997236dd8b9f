package theme

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDisk = errors.New("disk unavailable")

// fakeStore is an in-memory Store with failure injection and an optional
// gate that holds every Get until it is closed.
type fakeStore struct {
	mu     sync.Mutex
	rows   map[string]string
	getErr error
	setErr error
	gate   chan struct{}
	sets   []string
}

func newFakeStore(rows map[string]string) *fakeStore {
	if rows == nil {
		rows = map[string]string{}
	}
	return &fakeStore{rows: rows}
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.rows[key]
	return v, ok, nil
}

func (s *fakeStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = append(s.sets, value)
	if s.setErr != nil {
		return s.setErr
	}
	s.rows[key] = value
	return nil
}

func (s *fakeStore) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rows[key]
	return v, ok
}

func (s *fakeStore) writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sets...)
}

type statusBarRecorder struct {
	mu     sync.Mutex
	styles []StatusBarStyle
}

func (r *statusBarRecorder) SetStyle(style StatusBarStyle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles = append(r.styles, style)
}

func (r *statusBarRecorder) calls() []StatusBarStyle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StatusBarStyle(nil), r.styles...)
}

type failureRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *failureRecorder) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *failureRecorder) all() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, store Store, bar StatusBar, failures *failureRecorder) *Manager {
	t.Helper()
	opts := Options{Logger: quietLogger()}
	if failures != nil {
		opts.OnFailure = failures.record
	}
	m := NewManager(store, bar, opts)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.Close(ctx)
	})
	return m
}

func waitReady(t *testing.T, m *Manager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.WaitReady(ctx))
}

func flush(t *testing.T, m *Manager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Close(ctx))
}

func TestManagerLoadsSavedLightMode(t *testing.T) {
	store := newFakeStore(map[string]string{DefaultKey: "light"})
	bar := &statusBarRecorder{}
	m := newTestManager(t, store, bar, nil)

	waitReady(t, m)

	state := m.State()
	assert.Equal(t, ModeLight, state.Mode)
	assert.False(t, state.IsLoading)
	assert.Equal(t, For(ModeLight), state.Theme)
	assert.Equal(t, []StatusBarStyle{StatusBarDarkContent}, bar.calls())
}

func TestManagerCustomKey(t *testing.T) {
	store := newFakeStore(map[string]string{"prefs.theme": "light"})
	m := NewManager(store, nil, Options{Key: "prefs.theme", Logger: quietLogger()})
	waitReady(t, m)

	assert.Equal(t, ModeLight, m.Mode())

	m.Toggle()
	flush(t, m)
	v, _ := store.value("prefs.theme")
	assert.Equal(t, "dark", v)
	_, ok := store.value(DefaultKey)
	assert.False(t, ok)
}

func TestManagerRoundTrip(t *testing.T) {
	store := newFakeStore(nil)

	first := newTestManager(t, store, nil, nil)
	waitReady(t, first)
	first.SetMode(ModeLight)
	flush(t, first)

	second := newTestManager(t, store, nil, nil)
	waitReady(t, second)
	assert.Equal(t, ModeLight, second.Mode())
}

func TestManagerSetModeIsIdempotent(t *testing.T) {
	store := newFakeStore(nil)
	bar := &statusBarRecorder{}
	failures := &failureRecorder{}
	m := newTestManager(t, store, bar, failures)
	waitReady(t, m)

	m.SetMode(ModeDark)
	assert.Equal(t, ModeDark, m.Mode())
	m.SetMode(ModeDark)
	assert.Equal(t, ModeDark, m.Mode())

	flush(t, m)
	assert.Empty(t, failures.all())
	assert.Equal(t, []string{"dark", "dark"}, store.writes())
	assert.Equal(t, []StatusBarStyle{StatusBarLightContent, StatusBarLightContent, StatusBarLightContent}, bar.calls())
}

func TestManagerDefaultsOnUnusableSavedMode(t *testing.T) {
	tests := []struct {
		name        string
		rows        map[string]string
		getErr      error
		wantFailure bool
	}{
		{name: "read error", rows: map[string]string{DefaultKey: "light"}, getErr: errDisk, wantFailure: true},
		{name: "invalid value", rows: map[string]string{DefaultKey: "blue"}},
		{name: "missing key", rows: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(tt.rows)
			store.getErr = tt.getErr
			bar := &statusBarRecorder{}
			failures := &failureRecorder{}
			m := newTestManager(t, store, bar, failures)

			waitReady(t, m)

			state := m.State()
			assert.Equal(t, ModeDark, state.Mode)
			assert.False(t, state.IsLoading)
			assert.Equal(t, []StatusBarStyle{StatusBarLightContent}, bar.calls())

			errs := failures.all()
			if !tt.wantFailure {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			var pf *PersistenceFailure
			require.ErrorAs(t, errs[0], &pf)
			assert.Equal(t, OpRead, pf.Op)
			assert.ErrorIs(t, errs[0], errDisk)
		})
	}
}

func TestManagerToggleSymmetry(t *testing.T) {
	store := newFakeStore(nil)
	bar := &statusBarRecorder{}
	m := newTestManager(t, store, bar, nil)
	waitReady(t, m)
	require.Equal(t, ModeDark, m.Mode())

	m.Toggle()
	assert.Equal(t, ModeLight, m.Mode())
	assert.Equal(t, For(ModeLight), m.State().Theme)

	m.Toggle()
	assert.Equal(t, ModeDark, m.Mode())
	assert.Equal(t, For(ModeDark), m.State().Theme)

	assert.Equal(t, []StatusBarStyle{
		StatusBarLightContent,
		StatusBarDarkContent,
		StatusBarLightContent,
	}, bar.calls())
}

func TestManagerNoFlashWhileLoading(t *testing.T) {
	store := newFakeStore(map[string]string{DefaultKey: "light"})
	store.gate = make(chan struct{})
	bar := &statusBarRecorder{}
	m := newTestManager(t, store, bar, nil)

	state := m.State()
	assert.True(t, state.IsLoading)
	assert.Equal(t, ModeDark, state.Mode)
	assert.Equal(t, For(ModeDark), state.Theme)
	assert.Empty(t, bar.calls())

	select {
	case <-m.Ready():
		t.Fatal("ready before the store answered")
	default:
	}

	close(store.gate)
	waitReady(t, m)

	assert.Equal(t, ModeLight, m.Mode())
	assert.False(t, m.State().IsLoading)
	assert.Equal(t, []StatusBarStyle{StatusBarDarkContent}, bar.calls())
}

func TestManagerWriteFailureKeepsNewMode(t *testing.T) {
	store := newFakeStore(nil)
	store.setErr = errDisk
	failures := &failureRecorder{}
	m := newTestManager(t, store, nil, failures)
	waitReady(t, m)

	m.SetMode(ModeLight)
	m.Toggle()
	assert.Equal(t, ModeDark, m.Mode())

	flush(t, m)
	assert.Equal(t, ModeDark, m.Mode())

	errs := failures.all()
	require.Len(t, errs, 2)
	for _, err := range errs {
		var pf *PersistenceFailure
		require.ErrorAs(t, err, &pf)
		assert.Equal(t, OpWrite, pf.Op)
		assert.ErrorIs(t, err, errDisk)
	}

	// Nothing landed, so the next launch starts from the default.
	store.setErr = nil
	next := newTestManager(t, store, nil, nil)
	waitReady(t, next)
	assert.Equal(t, ModeDark, next.Mode())
}

func TestManagerMutationDuringLoadWins(t *testing.T) {
	store := newFakeStore(map[string]string{DefaultKey: "dark"})
	store.gate = make(chan struct{})
	bar := &statusBarRecorder{}
	m := newTestManager(t, store, bar, nil)

	m.SetMode(ModeLight)
	state := m.State()
	assert.Equal(t, ModeLight, state.Mode)
	assert.True(t, state.IsLoading)
	assert.Empty(t, bar.calls())

	close(store.gate)
	waitReady(t, m)

	assert.Equal(t, ModeLight, m.Mode())
	assert.False(t, m.State().IsLoading)
	assert.Equal(t, []StatusBarStyle{StatusBarDarkContent}, bar.calls())
}

func TestManagerLastWriteMatchesMemory(t *testing.T) {
	store := newFakeStore(nil)
	m := newTestManager(t, store, nil, nil)
	waitReady(t, m)

	for i := 0; i < 25; i++ {
		m.Toggle()
	}
	want := m.Mode()
	require.Equal(t, ModeLight, want)

	flush(t, m)
	v, ok := store.value(DefaultKey)
	require.True(t, ok)
	assert.Equal(t, string(want), v)
}

func TestManagerConcurrentReadersSeeConsistentState(t *testing.T) {
	store := newFakeStore(nil)
	m := newTestManager(t, store, nil, nil)
	waitReady(t, m)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := m.State()
				if s.Theme != For(s.Mode) {
					t.Errorf("inconsistent state: mode=%s theme=%s", s.Mode, s.Theme.Mode)
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		m.Toggle()
	}
	close(stop)
	wg.Wait()
}

func TestManagerSetModeIgnoresInvalid(t *testing.T) {
	store := newFakeStore(nil)
	bar := &statusBarRecorder{}
	m := newTestManager(t, store, bar, nil)
	waitReady(t, m)

	m.SetMode(Mode("blue"))
	flush(t, m)

	assert.Equal(t, ModeDark, m.Mode())
	assert.Empty(t, store.writes())
	assert.Len(t, bar.calls(), 1)
}

func TestManagerSubscribe(t *testing.T) {
	store := newFakeStore(nil)
	m := newTestManager(t, store, nil, nil)
	waitReady(t, m)

	var got []Mode
	unsubscribe := m.Subscribe(func(s State) {
		got = append(got, s.Mode)
	})

	m.Toggle()
	m.SetMode(ModeLight)
	unsubscribe()
	m.Toggle()

	assert.Equal(t, []Mode{ModeLight, ModeLight}, got)
}

func TestManagerCloseHonoursContext(t *testing.T) {
	store := newFakeStore(nil)
	store.gate = make(chan struct{})
	m := NewManager(store, nil, Options{Logger: quietLogger()})
	defer close(store.gate)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Close(ctx), context.DeadlineExceeded)
	assert.ErrorIs(t, m.WaitReady(ctx), context.DeadlineExceeded)
}

func TestStatusBarFunc(t *testing.T) {
	var got StatusBarStyle
	var bar StatusBar = StatusBarFunc(func(s StatusBarStyle) { got = s })
	bar.SetStyle(StatusBarDarkContent)
	assert.Equal(t, StatusBarDarkContent, got)
}
