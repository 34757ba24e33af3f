// Package ratesapi provides the REST client for the exchange-rates provider.
//
// Endpoints (Frankfurter-compatible):
//   - GET /currencies       code -> display name (reference table)
//   - GET /latest?base=USD  latest rates quoted against base
//
// Default host: https://api.frankfurter.dev/v1
package ratesapi
