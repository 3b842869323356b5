package extract

import (
	"time"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// Contextual computes ContextDerived from a single context sample's
// conversational signals. Context signals are not windowed by the
// aggregator (only behavioral events are, per §4.1); the extractor
// works directly off the latest observed sample's accumulated lists.
// A nil input yields the zero value (no conversation observed).
// Overload/frustration/engagement remain hardcoded to 0 per the open
// question in spec.md §9 — no formula has been specified upstream.
func Contextual(cs *hsimodel.ConversationSignals) hsimodel.ContextDerived {
	if cs == nil {
		return hsimodel.ContextDerived{}
	}

	avgDelay := meanOf(cs.ReplyDelaysS)

	burstGaps := gapsBetween(cs.MessageBursts)
	burstiness := clamp(varianceOf(burstGaps)/(meanOf(burstGaps)+1e-3), 0, 1)

	interruptRate := float64(len(cs.Interrupts)) / 60

	return hsimodel.ContextDerived{
		AvgReplyDelayS: avgDelay,
		Burstiness:     burstiness,
		InterruptRate:  interruptRate,
	}
}

func gapsBetween(ts []time.Time) []float64 {
	if len(ts) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		gaps = append(gaps, ts[i].Sub(ts[i-1]).Seconds())
	}
	return gaps
}
