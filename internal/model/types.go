package model

// Currency is an ISO 4217 currency code (e.g., "USD").
type Currency string

// CurrencyInfo describes one currency from the static reference table.
type CurrencyInfo struct {
	Code Currency // ISO 4217 code (primary key)
	Name string   // Display name (e.g., "US Dollar")
}

// CurrencyTable is the reference table: code -> descriptive record.
// It is built once, at startup, and shared read-only afterward.
type CurrencyTable map[Currency]CurrencyInfo

// RateTable is one raw fetch result: rate per currency, quoted against the
// base currency the fetch was issued for.
type RateTable map[Currency]float64

// EnrichedRate joins one fetched rate with its static reference data.
type EnrichedRate struct {
	Code Currency
	Rate float64
	Info CurrencyInfo
}
