// ratecheck performs a single fetch-and-augment cycle and prints the
// result, for verifying provider connectivity without starting the watcher.
// Usage: go run ./cmd/ratecheck --base USD
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ChiminhTT/currency-list-converter/internal/config"
	"github.com/ChiminhTT/currency-list-converter/internal/model"
	"github.com/ChiminhTT/currency-list-converter/internal/rates"
	"github.com/ChiminhTT/currency-list-converter/internal/ratesapi"
)

func main() {
	base := flag.String("base", config.DefaultBase, "base currency code")
	baseURL := flag.String("url", config.DefaultAPIBaseURL, "rates API base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := ratesapi.NewClient(*baseURL, os.Getenv("RATES_API_KEY"), ratesapi.WithLogger(logger))

	table, err := client.GetCurrencies(ctx)
	if err != nil {
		logger.Error("failed to fetch currency table", "error", err)
		os.Exit(1)
	}

	raw, err := client.GetLatest(ctx, model.Currency(*base))
	if err != nil {
		logger.Error("failed to fetch latest rates", "base", *base, "error", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)

	if identity, ok := rates.IdentityEntry(model.Currency(*base), table); ok {
		p.Printf("%s  %12.4f  %s\n", identity.Code, identity.Rate, identity.Info.Name)
	}
	for _, e := range rates.Augment(raw, table) {
		p.Printf("%s  %12.4f  %s\n", e.Code, e.Rate, e.Info.Name)
	}

	fmt.Fprintf(os.Stderr, "%d currencies, %d rates for %s\n", len(table), len(raw), *base)
}
