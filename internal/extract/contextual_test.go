package extract

import (
	"testing"
	"time"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

func TestContextualNilReturnsZeroValue(t *testing.T) {
	got := Contextual(nil)
	if got != (hsimodel.ContextDerived{}) {
		t.Errorf("Contextual(nil) = %+v, want zero value", got)
	}
}

func TestContextualAvgReplyDelay(t *testing.T) {
	got := Contextual(&hsimodel.ConversationSignals{
		ReplyDelaysS: []float64{2, 4, 6},
	})
	if got.AvgReplyDelayS != 4 {
		t.Errorf("avg_reply_delay_s = %v, want 4", got.AvgReplyDelayS)
	}
}

func TestContextualReservedScalarsAreZero(t *testing.T) {
	got := Contextual(&hsimodel.ConversationSignals{ReplyDelaysS: []float64{1}})
	if got.Overload != 0 || got.Frustration != 0 || got.Engagement != 0 {
		t.Errorf("reserved scalars = {%v,%v,%v}, want all 0", got.Overload, got.Frustration, got.Engagement)
	}
}

func TestContextualInterruptRateMatchesSpecFormula(t *testing.T) {
	base := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	got := Contextual(&hsimodel.ConversationSignals{
		Interrupts: []time.Time{base, base.Add(30 * time.Second), base.Add(90 * time.Second)},
	})
	if got.InterruptRate != 0.05 {
		t.Errorf("interrupt_rate = %v, want 0.05 (3/60)", got.InterruptRate)
	}
}
