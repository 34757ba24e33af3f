package rates

import (
	"sort"

	"github.com/ChiminhTT/currency-list-converter/internal/model"
)

// Augment joins each fetched rate with its reference entry. Currencies
// absent from the table are dropped, not reported. Output is sorted by
// currency code: RateTable is a Go map, so an order has to be imposed for
// a given input to always augment to the same sequence.
func Augment(rates model.RateTable, table model.CurrencyTable) []model.EnrichedRate {
	enriched := make([]model.EnrichedRate, 0, len(rates))
	for code, r := range rates {
		info, ok := table[code]
		if !ok {
			continue
		}
		enriched = append(enriched, model.EnrichedRate{Code: code, Rate: r, Info: info})
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].Code < enriched[j].Code
	})

	return enriched
}

// IdentityEntry derives the base currency's own entry: rate exactly 1,
// reference data from the table. ok is false when the base is not in the
// table.
func IdentityEntry(base model.Currency, table model.CurrencyTable) (model.EnrichedRate, bool) {
	info, ok := table[base]
	if !ok {
		return model.EnrichedRate{}, false
	}
	return model.EnrichedRate{Code: base, Rate: 1, Info: info}, true
}
