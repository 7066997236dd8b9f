package theme

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/atomic"

	"github.com/pocketvault/pocketvault/pkg/pocketvault/internal"
)

// DefaultKey is the store key holding the saved mode.
const DefaultKey = "theme_mode"

// Store is the durable key-value store the saved mode lives in.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns ok=false with a nil error when key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Options configures a Manager.
type Options struct {
	Key       string          // Store key for the saved mode (default: DefaultKey)
	Logger    *slog.Logger    // Diagnostics logger (default: the internal logger)
	OnFailure func(error)     // Receives every *PersistenceFailure, after it is logged
	Context   context.Context // Passed to store calls (default: context.Background())
}

// State is a consistent snapshot of a Manager: Theme is always For(Mode).
type State struct {
	Theme     Theme
	Mode      Mode
	IsLoading bool
}

// Provider is the read-only view given to screens.
type Provider interface {
	State() State
}

// Controller is the view given to settings controls.
type Controller interface {
	Provider
	Toggle()
	SetMode(Mode)
}

var (
	_ Provider   = (*Manager)(nil)
	_ Controller = (*Manager)(nil)
)

// Manager holds the current theme, loads the saved mode on construction and
// saves every later change.
//
// Mutations are two-phase. The new mode is committed in memory and pushed to
// the status bar before Toggle or SetMode return; the store write happens
// afterwards on its own goroutine and its outcome only reaches diagnostics.
type Manager struct {
	store     Store
	statusBar StatusBar
	key       string
	logger    *slog.Logger
	onFailure func(error)
	ctx       context.Context

	mu        sync.Mutex // serializes commits, status bar calls and listeners
	state     *atomic.Pointer[State]
	touched   bool // a mutation was committed before loading finished
	listeners map[int]func(State)
	nextID    int
	ready     chan struct{}

	writeMu sync.Mutex // one store write at a time
	writes  sync.WaitGroup
}

// NewManager creates the manager and starts reading the saved mode in the
// background. Until that read finishes State reports the default mode with
// IsLoading set. statusBar may be nil when the host has none.
func NewManager(store Store, statusBar StatusBar, opts Options) *Manager {
	m := &Manager{
		store:     store,
		statusBar: statusBar,
		key:       opts.Key,
		logger:    opts.Logger,
		onFailure: opts.OnFailure,
		ctx:       opts.Context,
		state:     atomic.NewPointer(&State{Theme: For(DefaultMode), Mode: DefaultMode, IsLoading: true}),
		listeners: make(map[int]func(State)),
		ready:     make(chan struct{}),
	}
	if m.key == "" {
		m.key = DefaultKey
	}
	if m.logger == nil {
		m.logger = internal.GetInternalLogger()
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	m.logger = m.logger.With("component", "theme", "key", m.key)

	go m.initialize()
	return m
}

// State returns the current snapshot.
func (m *Manager) State() State {
	return *m.state.Load()
}

// Mode is shorthand for State().Mode.
func (m *Manager) Mode() Mode {
	return m.state.Load().Mode
}

// Ready is closed once the initial load has finished, successfully or not.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// WaitReady blocks until the initial load has finished or ctx is done.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Toggle flips between light and dark.
func (m *Manager) Toggle() {
	m.mu.Lock()
	next := m.state.Load().Mode.Opposite()
	m.commitLocked(next)
	m.mu.Unlock()

	m.persistAsync()
}

// SetMode switches to mode. Setting the current mode again still reapplies
// the status bar and rewrites the store. Invalid modes are logged and
// ignored.
func (m *Manager) SetMode(mode Mode) {
	if !mode.Valid() {
		m.logger.Warn("ignoring invalid theme mode", "mode", string(mode))
		return
	}

	m.mu.Lock()
	m.commitLocked(mode)
	m.mu.Unlock()

	m.persistAsync()
}

// Subscribe registers fn to receive every new State. fn runs synchronously
// while the manager is locked and must not call Toggle or SetMode.
// The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Close waits for the initial load and all pending writes, or for ctx.
// No mutation may be started once Close has been called.
func (m *Manager) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		<-m.ready
		m.writes.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) initialize() {
	defer close(m.ready)

	loaded, ok, err := m.load(m.ctx)
	if err != nil {
		m.report(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	mode := m.state.Load().Mode
	switch {
	case m.touched:
		m.logger.Debug("keeping mode chosen during load", "mode", string(mode))
	case ok:
		mode = loaded
	}

	m.publishLocked(mode, false)
	m.applyStatusBarLocked(mode)
	m.logger.Debug("theme loaded", "mode", string(mode))
}

// load reads the saved mode. ok is false when nothing usable was stored.
func (m *Manager) load(ctx context.Context) (mode Mode, ok bool, err error) {
	raw, found, err := m.store.Get(ctx, m.key)
	if err != nil {
		return "", false, &PersistenceFailure{Op: OpRead, Key: m.key, Err: err}
	}
	if !found {
		return "", false, nil
	}

	mode, err = ParseMode(raw)
	if err != nil {
		m.logger.Warn("ignoring saved theme mode", "value", raw, "error", err)
		return "", false, nil
	}
	return mode, true, nil
}

func (m *Manager) commitLocked(mode Mode) {
	current := m.state.Load()
	if current.IsLoading {
		// initialize applies the status bar once loading ends.
		m.touched = true
		m.publishLocked(mode, true)
		return
	}
	m.publishLocked(mode, false)
	m.applyStatusBarLocked(mode)
}

func (m *Manager) publishLocked(mode Mode, loading bool) {
	next := &State{Theme: For(mode), Mode: mode, IsLoading: loading}
	m.state.Store(next)
	for _, fn := range m.listeners {
		fn(*next)
	}
}

func (m *Manager) applyStatusBarLocked(mode Mode) {
	if m.statusBar == nil {
		return
	}
	m.statusBar.SetStyle(StyleFor(mode))
}

func (m *Manager) persistAsync() {
	m.writes.Add(1)
	go func() {
		defer m.writes.Done()
		if err := m.persist(m.ctx); err != nil {
			m.report(err)
		}
	}()
}

// persist writes the mode that is current when the write starts, so the
// last write to land always carries the last committed mode.
func (m *Manager) persist(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	mode := m.state.Load().Mode
	if err := m.store.Set(ctx, m.key, string(mode)); err != nil {
		return &PersistenceFailure{Op: OpWrite, Key: m.key, Mode: mode, Err: err}
	}
	m.logger.Debug("theme saved", "mode", string(mode))
	return nil
}

// report is where persistence errors stop.
func (m *Manager) report(err error) {
	m.logger.Error("theme persistence failed", "error", err)
	if m.onFailure != nil {
		m.onFailure(err)
	}
}
