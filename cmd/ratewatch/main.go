// ratewatch polls the exchange-rates provider for the configured base
// currency and prints one augmented quote list per tick.
// Usage: go run ./cmd/ratewatch --config configs/watcher.yaml
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ChiminhTT/currency-list-converter/internal/config"
	"github.com/ChiminhTT/currency-list-converter/internal/model"
	"github.com/ChiminhTT/currency-list-converter/internal/rates"
	"github.com/ChiminhTT/currency-list-converter/internal/ratesapi"
	"github.com/ChiminhTT/currency-list-converter/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/watcher.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ratewatch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"base", cfg.Base,
		"api_url", cfg.API.BaseURL,
		"interval", cfg.Poll.Interval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	client := ratesapi.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		ratesapi.WithLogger(logger),
		ratesapi.WithTimeout(cfg.API.Timeout),
		ratesapi.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		ratesapi.WithRateLimit(cfg.API.RateLimit),
	)

	manager, err := rates.NewManager(ctx, rates.Config{
		Base:         model.Currency(cfg.Base),
		PollInterval: cfg.Poll.Interval,
		FetchTimeout: cfg.Poll.Timeout,
	}, client, logger)
	if err != nil {
		logger.Error("failed to create rate manager", "error", err)
		os.Exit(1)
	}

	manager.SetListener(newQuotePrinter(os.Stdout))
	manager.StartPolling(ctx)
	defer manager.StopPolling()

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(manager),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	logger.Info("ratewatch running",
		"base", cfg.Base,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	if err := g.Wait(); err != nil {
		logger.Error("ratewatch exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("ratewatch stopped")
}

// quotePrinter writes one line per enriched rate, with locale-aware
// number formatting. It implements rates.Listener.
type quotePrinter struct {
	p   *message.Printer
	out *os.File
}

func newQuotePrinter(out *os.File) *quotePrinter {
	return &quotePrinter{
		p:   message.NewPrinter(language.English),
		out: out,
	}
}

func (q *quotePrinter) Notify(quotes []model.EnrichedRate) {
	for _, e := range quotes {
		q.p.Fprintf(q.out, "%s  %12.4f  %s\n", e.Code, e.Rate, e.Info.Name)
	}
	fmt.Fprintln(q.out)
}

// createHealthHandler reports the watcher's current base and table size.
func createHealthHandler(manager *rates.Manager) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := struct {
			Status     string `json:"status"`
			Base       string `json:"base"`
			Currencies int    `json:"currencies"`
		}{
			Status:     "healthy",
			Base:       string(manager.Base()),
			Currencies: len(manager.Currencies()),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
