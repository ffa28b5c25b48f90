// Package shutdown stops the server in order when the process is signalled:
// the HTTP listener first, then live sessions, then the preference store.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
)

// Common shutdown errors.
var (
	ErrShutdownTimeout = errors.New("shutdown timed out")
	ErrAlreadyClosed   = errors.New("shutdown handler already closed")
)

// Hook priorities (lower runs earlier).
const (
	PriorityHTTP  = 100
	PriorityLive  = 200
	PriorityStore = 300
)

// Hook is a named shutdown step.
type Hook struct {
	Name string

	// Priority determines execution order (lower = earlier).
	Priority int

	Fn func(ctx context.Context) error
}

// Config configures the shutdown handler.
type Config struct {
	// Timeout bounds the whole shutdown sequence.
	Timeout time.Duration

	// Signals are the OS signals to listen for.
	Signals []os.Signal

	Logger logging.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
		Logger:  logging.NopLogger{},
	}
}

// Handler runs hooks on shutdown.
type Handler struct {
	config Config
	hooks  []Hook
	done   chan struct{}
	closed bool
	mu     sync.Mutex
}

// NewHandler creates a new shutdown handler.
func NewHandler(config Config) *Handler {
	if config.Logger == nil {
		config.Logger = logging.NopLogger{}
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	return &Handler{
		config: config,
		done:   make(chan struct{}),
	}
}

// Register adds a shutdown hook.
func (h *Handler) Register(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// RegisterFunc registers fn as a hook.
func (h *Handler) RegisterFunc(name string, priority int, fn func(ctx context.Context) error) {
	h.Register(Hook{Name: name, Priority: priority, Fn: fn})
}

// Wait blocks until a signal arrives, ctx ends or fatal receives an error,
// then runs the hooks. An error from fatal is returned joined with any hook
// errors.
func (h *Handler) Wait(ctx context.Context, fatal <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.config.Signals...)
	defer signal.Stop(sigCh)

	var cause error
	select {
	case sig := <-sigCh:
		h.config.Logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case <-ctx.Done():
	case err := <-fatal:
		cause = err
	case <-h.done:
		return nil
	}

	return errors.Join(cause, h.Shutdown())
}

// Shutdown runs every hook by priority within the configured timeout.
func (h *Handler) Shutdown() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrAlreadyClosed
	}
	h.closed = true
	close(h.done)

	hooks := make([]Hook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	sort.SliceStable(hooks, func(i, j int) bool {
		return hooks[i].Priority < hooks[j].Priority
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var errs []error
	for _, hook := range hooks {
		start := time.Now()
		err := hook.Fn(ctx)
		if err != nil {
			h.config.Logger.Error("shutdown hook failed",
				logging.String("hook", hook.Name), logging.Err(err))
			errs = append(errs, err)
		} else {
			h.config.Logger.Debug("shutdown hook done",
				logging.String("hook", hook.Name), logging.Duration("took", time.Since(start)))
		}

		if ctx.Err() != nil {
			return errors.Join(append(errs, ErrShutdownTimeout)...)
		}
	}

	return errors.Join(errs...)
}

// Done returns a channel that is closed once shutdown starts.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

// IsClosed reports whether shutdown has started.
func (h *Handler) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// HTTPServerHook shuts down an HTTP server.
func HTTPServerHook(name string, shutdownFn func(ctx context.Context) error) Hook {
	return Hook{Name: name, Priority: PriorityHTTP, Fn: shutdownFn}
}

// CloseableHook closes closer.
func CloseableHook(name string, priority int, closer interface{ Close() error }) Hook {
	return Hook{
		Name:     name,
		Priority: priority,
		Fn: func(ctx context.Context) error {
			return closer.Close()
		},
	}
}
