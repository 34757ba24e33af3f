package ratesapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ChiminhTT/currency-list-converter/internal/model"
)

// GetCurrencies fetches the full currency reference table.
func (c *Client) GetCurrencies(ctx context.Context) (model.CurrencyTable, error) {
	var resp CurrenciesResponse
	if err := c.get(ctx, "/currencies", nil, &resp); err != nil {
		return nil, fmt.Errorf("get currencies: %w", err)
	}

	table := make(model.CurrencyTable, len(resp))
	for code, name := range resp {
		cur := model.Currency(code)
		table[cur] = model.CurrencyInfo{Code: cur, Name: name}
	}

	return table, nil
}

// GetLatest fetches the latest rates quoted against base.
func (c *Client) GetLatest(ctx context.Context, base model.Currency) (model.RateTable, error) {
	query := url.Values{}
	query.Set("base", string(base))

	var resp LatestResponse
	if err := c.get(ctx, "/latest", query, &resp); err != nil {
		return nil, fmt.Errorf("get latest %s: %w", base, err)
	}

	rates := make(model.RateTable, len(resp.Rates))
	for code, r := range resp.Rates {
		rates[model.Currency(code)] = r
	}

	return rates, nil
}
