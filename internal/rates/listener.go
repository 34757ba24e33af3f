package rates

import "github.com/ChiminhTT/currency-list-converter/internal/model"

// Listener receives one ordered payload per successful poll tick: the base
// currency's identity entry first (when derivable), then the augmented
// rates. Notification is fire-and-forget; implementations must not block.
type Listener interface {
	Notify(quotes []model.EnrichedRate)
}

// ListenerFunc is a function adapter for Listener.
type ListenerFunc func([]model.EnrichedRate)

func (f ListenerFunc) Notify(quotes []model.EnrichedRate) { f(quotes) }
