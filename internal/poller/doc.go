// Package poller implements the recurring poll task.
//
// A Task:
//   - Fires immediately on Start, then on a fixed interval
//   - Produces a fresh request from its factory on every tick
//   - Delivers successful results to its handler, in tick order
//   - Drops failed ticks silently and keeps the cadence
//   - Never delivers a result after Stop has returned
package poller
