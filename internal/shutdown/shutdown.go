// Package shutdown coordinates clean teardown of the background tracker:
// signal handling, cleanup registration, and ordered execution.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// CleanupFunc performs one piece of teardown. The context is canceled when
// the shutdown deadline passes.
type CleanupFunc func(ctx context.Context) error

type cleanupEntry struct {
	name string
	fn   CleanupFunc
}

// Manager coordinates graceful shutdown. Cleanups run in LIFO order so
// dependents tear down before their dependencies.
type Manager struct {
	mu       sync.Mutex
	cleanups []cleanupEntry

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewManager creates a shutdown manager.
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{ctx: ctx, cancel: cancel}
}

// RegisterCleanup adds a named cleanup, called during shutdown in reverse
// registration order.
func (m *Manager) RegisterCleanup(name string, fn CleanupFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanups = append(m.cleanups, cleanupEntry{name: name, fn: fn})
}

// HandleSignals triggers Shutdown on SIGINT or SIGTERM. It returns
// immediately; the listener runs until the first signal.
func (m *Manager) HandleSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		signal.Stop(sigCh)
		m.Shutdown()
	}()
}

// Shutdown cancels the manager's context. Safe to call more than once;
// only the first call has effect.
func (m *Manager) Shutdown() {
	m.once.Do(m.cancel)
}

// IsShutdown reports whether shutdown has been initiated.
func (m *Manager) IsShutdown() bool {
	select {
	case <-m.ctx.Done():
		return true
	default:
		return false
	}
}

// Context is canceled when shutdown begins. Long-running operations should
// watch it.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Wait runs the registered cleanups in LIFO order, bounded by ctx. It
// returns ctx's error when the deadline passes before cleanup finishes.
func (m *Manager) Wait(ctx context.Context) error {
	m.mu.Lock()
	cleanups := make([]cleanupEntry, len(m.cleanups))
	copy(cleanups, m.cleanups)
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(cleanups) - 1; i >= 0; i-- {
			// Cleanup errors do not stop the remaining cleanups.
			_ = cleanups[i].fn(ctx)
		}
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
