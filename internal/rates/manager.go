package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChiminhTT/currency-list-converter/internal/model"
	"github.com/ChiminhTT/currency-list-converter/internal/poller"
)

// Provider supplies the two fetch operations the manager needs.
type Provider interface {
	// GetCurrencies fetches the static reference table. Called once, at
	// manager construction.
	GetCurrencies(ctx context.Context) (model.CurrencyTable, error)

	// GetLatest fetches the latest rates quoted against base. Called on
	// every poll tick.
	GetLatest(ctx context.Context, base model.Currency) (model.RateTable, error)
}

// Config holds manager configuration.
type Config struct {
	Base         model.Currency // Initial base currency (default: USD)
	PollInterval time.Duration  // Tick interval (default: 1s)
	FetchTimeout time.Duration  // Per-fetch timeout (default: 10s)
	StopTimeout  time.Duration  // Wait for an old task to stop (default: 5s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Base:         "USD",
		PollInterval: time.Second,
		FetchTimeout: 10 * time.Second,
		StopTimeout:  5 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Base == "" {
		c.Base = def.Base
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = def.StopTimeout
	}
}

// Manager owns the poll loop for the current base currency and notifies its
// listener with augmented rates on every successful tick.
type Manager struct {
	cfg      Config
	provider Provider
	logger   *slog.Logger

	table model.CurrencyTable // immutable after construction

	opMu sync.Mutex // serializes StartPolling / SetBase / StopPolling

	mu       sync.Mutex // guards the fields below
	base     model.Currency
	task     *poller.Task[model.RateTable]
	listener Listener
}

// NewManager fetches the currency reference table and returns a ready
// manager. Construction fails if the table cannot be fetched or is empty;
// no partial manager is produced.
func NewManager(ctx context.Context, cfg Config, provider Provider, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()

	table, err := provider.GetCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load currency table: %w", err)
	}
	if len(table) == 0 {
		return nil, errors.New("currency table is empty")
	}

	logger.Info("currency table loaded", "currencies", len(table), "base", cfg.Base)

	return &Manager{
		cfg:      cfg,
		provider: provider,
		logger:   logger,
		table:    table,
		base:     cfg.Base,
	}, nil
}

// StartPolling replaces any active poll task with a fresh one for the
// current base and starts it.
func (m *Manager) StartPolling(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	base := m.base
	old := m.task
	m.mu.Unlock()

	if old != nil {
		m.stopTask(old)
	}
	m.startTask(ctx, base)
}

// SetBase switches the base currency. The old poll task is stopped before
// the new one starts; a fetch still in flight for the old base is never
// delivered after SetBase returns. If polling has not started yet, the new
// base is recorded and picked up by the next StartPolling.
func (m *Manager) SetBase(ctx context.Context, base model.Currency) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	m.base = base
	old := m.task
	m.mu.Unlock()

	if old == nil {
		return
	}
	m.stopTask(old)
	m.startTask(ctx, base)
}

// StopPolling stops the active poll task, if any.
func (m *Manager) StopPolling() {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	old := m.task
	m.task = nil
	m.mu.Unlock()

	if old != nil {
		m.stopTask(old)
	}
}

// SetListener registers the single notification listener, replacing any
// previous one. The manager holds the listener non-owning; pass nil to
// clear, after which notifications are dropped silently.
func (m *Manager) SetListener(l Listener) {
	m.mu.Lock()
	m.listener = l
	m.mu.Unlock()
}

// Base returns the current base currency.
func (m *Manager) Base() model.Currency {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.base
}

// Currencies returns the reference table loaded at construction. The table
// is shared; callers must treat it as read-only.
func (m *Manager) Currencies() model.CurrencyTable {
	return m.table
}

// CurrentIdentityEntry returns the identity entry for the current base, or
// ok=false when the base is not in the reference table. Pure query.
func (m *Manager) CurrentIdentityEntry() (model.EnrichedRate, bool) {
	m.mu.Lock()
	base := m.base
	m.mu.Unlock()
	return IdentityEntry(base, m.table)
}

// startTask builds a factory over a snapshot of base, so a later SetBase
// cannot leak into requests already produced for this task.
func (m *Manager) startTask(ctx context.Context, base model.Currency) {
	factory := poller.FactoryFunc[model.RateTable](func() poller.RequestFunc[model.RateTable] {
		return func(ctx context.Context) (model.RateTable, error) {
			return m.provider.GetLatest(ctx, base)
		}
	})

	var task *poller.Task[model.RateTable]
	handler := poller.HandlerFunc[model.RateTable](func(rates model.RateTable) {
		m.deliver(task.ID(), base, rates)
	})

	task = poller.New[model.RateTable](
		poller.Config{Interval: m.cfg.PollInterval, Timeout: m.cfg.FetchTimeout},
		factory,
		handler,
		m.logger,
	)

	m.mu.Lock()
	m.task = task
	m.mu.Unlock()

	task.Start(ctx)

	m.logger.Info("polling started",
		"base", base,
		"interval", m.cfg.PollInterval,
		"task", task.ID(),
	)
}

func (m *Manager) stopTask(task *poller.Task[model.RateTable]) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.StopTimeout)
	defer cancel()

	if err := task.Stop(ctx); err != nil {
		m.logger.Warn("poll task did not stop in time", "task", task.ID(), "err", err)
		return
	}
	m.logger.Debug("poll task stopped", "task", task.ID())
}

// deliver runs on the poll task's goroutine. Results from a task that is
// no longer current are dropped: they belong to a base that was replaced
// while the fetch was in flight.
func (m *Manager) deliver(taskID uuid.UUID, base model.Currency, rates model.RateTable) {
	m.mu.Lock()
	current := m.task != nil && m.task.ID() == taskID
	listener := m.listener
	m.mu.Unlock()

	if !current || listener == nil {
		return
	}

	payload := make([]model.EnrichedRate, 0, len(rates)+1)
	if identity, ok := IdentityEntry(base, m.table); ok {
		payload = append(payload, identity)
	}
	payload = append(payload, Augment(rates, m.table)...)

	listener.Notify(payload)
}
