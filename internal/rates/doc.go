// Package rates implements the rate-watching orchestrator.
//
// The Manager:
//   - Loads the currency reference table once, at construction
//   - Owns one poll task at a time, parameterized by the base currency
//   - Augments every raw rate table with the reference data
//   - Delivers one ordered payload per successful tick to a single listener
package rates
