// Package fusion implements the channel collector and fusion engine:
// on each W30s tick it pulls features from every registered provider
// and assembles an HSV. The consent/capability gate is applied inside
// each provider, at the provider boundary; this package never
// consults it.
package fusion

import (
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// BiosignalProvider is consulted by the collector for biosignal-
// derived features. ok=false means the gate denied access or no
// sample has been observed for the window; the collector treats that
// exactly like "provider did not respond."
type BiosignalProvider interface {
	Features(w hsimodel.WindowType) (hsimodel.ProcessedBiosignals, bool)
}

// BehaviorProvider is consulted for behavioral-window features.
type BehaviorProvider interface {
	Features(w hsimodel.WindowType) (hsimodel.BehaviorWindowFeatures, bool)
}

// ContextProvider is consulted for contextual derived indices.
type ContextProvider interface {
	Features(w hsimodel.WindowType) (hsimodel.ContextDerived, bool)
}
