package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// RequestFunc is one pending fetch. Each call represents a genuinely new
// operation; results are never cached.
type RequestFunc[T any] func(ctx context.Context) (T, error)

// Factory produces a fresh pending request on every call.
type Factory[T any] interface {
	Produce() RequestFunc[T]
}

// FactoryFunc is a function adapter for Factory.
type FactoryFunc[T any] func() RequestFunc[T]

func (f FactoryFunc[T]) Produce() RequestFunc[T] { return f() }

// Handler receives successful fetch results.
type Handler[T any] interface {
	HandleResult(value T)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc[T any] func(T)

func (f HandlerFunc[T]) HandleResult(v T) { f(v) }

// Config holds task configuration.
type Config struct {
	Interval time.Duration // Tick interval (default: 1s)
	Timeout  time.Duration // Per-fetch timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Second,
		Timeout:  10 * time.Second,
	}
}

// Task periodically produces a request from its factory, awaits the result,
// and hands successes to its handler. Ticks are serialized: a fetch that
// outlasts the interval causes the ticker to drop fires rather than overlap
// requests, so completions always arrive in tick order.
type Task[T any] struct {
	cfg     Config
	id      uuid.UUID
	factory Factory[T]
	handler Handler[T]
	logger  *slog.Logger

	started atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new Task. The task is inert until Start is called.
func New[T any](cfg Config, factory Factory[T], handler Handler[T], logger *slog.Logger) *Task[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Task[T]{
		cfg:     cfg,
		id:      uuid.New(),
		factory: factory,
		handler: handler,
		logger:  logger,
	}
}

// ID returns the task's generation identifier. Owners use it to discriminate
// completions from a task that has since been replaced.
func (t *Task[T]) ID() uuid.UUID {
	return t.id
}

// Start begins the tick loop: one tick immediately, then one per interval.
// Idempotent; a second Start without an intervening Stop is a no-op. A
// stopped task is never restarted.
func (t *Task[T]) Start(ctx context.Context) {
	if !t.started.CompareAndSwap(false, true) {
		return
	}

	t.ctx, t.cancel = context.WithCancel(ctx)

	t.wg.Add(1)
	go t.run()
}

// Stop cancels the tick loop and waits for it to exit, honoring the ctx
// deadline. After Stop returns no completion fires, even for a fetch that
// was still in flight when Stop was called.
func (t *Task[T]) Stop(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the tick loop.
func (t *Task[T]) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	// First tick fires promptly so a fresh task produces data quickly.
	t.tick()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// tick runs one produce-fetch-deliver cycle.
func (t *Task[T]) tick() {
	req := t.factory.Produce()

	ctx, cancel := context.WithTimeout(t.ctx, t.cfg.Timeout)
	defer cancel()

	value, err := req(ctx)
	if err != nil {
		// A failed tick is skipped; the next tick proceeds on schedule.
		t.logger.Debug("tick fetch failed", "task", t.id, "err", err)
		return
	}

	// Liveness check: a result that resolves after cancellation must not
	// reach the handler.
	select {
	case <-t.ctx.Done():
		return
	default:
	}

	if t.handler != nil {
		t.handler.HandleResult(value)
	}
}
