package capability

import "github.com/synheart-ai/synheart-core/internal/hsimodel"

// ApplyBehaviorDecision enforces the gate's decision on a computed
// BehaviorWindowFeatures value. DecisionDenied is handled by the
// caller (the provider itself returns no features); this only covers
// the coarse/full split.
func ApplyBehaviorDecision(d Decision, f hsimodel.BehaviorWindowFeatures) hsimodel.BehaviorWindowFeatures {
	if d != DecisionCoarse {
		return f
	}
	f.Burstiness = 0
	f.SessionFragmentation = 0
	f.NotificationLoad = 0
	return f
}
