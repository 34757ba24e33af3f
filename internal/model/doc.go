// Package model defines shared data types used across the rate watcher.
//
// Conventions:
//   - Currency codes: upper-case ISO 4217 strings (model.Currency)
//   - Rates: float64, quoted relative to a base currency (the base itself = 1)
//   - The currency reference table is loaded once and never mutated
package model
