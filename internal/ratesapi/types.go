package ratesapi

// CurrenciesResponse from GET /currencies: code -> display name.
type CurrenciesResponse map[string]string

// LatestResponse from GET /latest.
type LatestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}
