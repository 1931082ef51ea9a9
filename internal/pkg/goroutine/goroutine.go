// Package goroutine runs background jobs with a bounded concurrency and
// collects their errors for shutdown.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/otpauth/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager gets a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager owns long running jobs such as message consumers.
type Manager struct {
	wg   sync.WaitGroup
	sema chan struct{}

	mu   sync.Mutex
	errs []error

	stateMu sync.RWMutex
	closed  bool
}

func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go starts f in its own goroutine. It reports false, without running f,
// when the manager is closed or already at its limit.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, job skipped")
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, job skipped")
		return false
	}

	g.wg.Go(func() {
		defer func() {
			<-g.sema
			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(ctx, "panic in goroutine", "because", rvr, "stack", paths)
				} else {
					slog.ErrorContext(ctx, "panic in goroutine", "because", rvr, "stack", string(stack))
				}
			}
		}()

		if ctx.Err() != nil {
			slog.WarnContext(ctx, "goroutine canceled before start", "because", ctx.Err())
			return
		}

		if err := f(ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	})

	return true
}

// Wait closes the manager, blocks until every job returns and joins their errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
