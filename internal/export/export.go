// Package export converts an HSV into the canonical, signable HSI 1.0
// wire payload, per §4.7.
package export

import (
	"fmt"
	"time"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// readingConfidence is the confidence value attached to every
// reading and embedding entry. The spec requires confidence in (0,1]
// but defines no formula for deriving one from the underlying
// features, so a fixed maximal confidence is used: every reading here
// is a direct, not probabilistic, computation.
const readingConfidence = 1.0

// Exporter converts HSVs produced by the fusion engine into
// HSI10Payloads ready for signing and upload.
type Exporter struct {
	Producer hsimodel.HSIProducer
	SDK      string
	Platform string
	Now      func() time.Time
}

// NewExporter constructs an Exporter. now defaults to time.Now.
func NewExporter(producer hsimodel.HSIProducer, sdk, platform string, now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{Producer: producer, SDK: sdk, Platform: platform, Now: now}
}

// Export converts a single HSV to an HSI10Payload.
func (x *Exporter) Export(hsv hsimodel.HSV) hsimodel.HSI10Payload {
	w := hsv.Meta.Embedding.WindowType

	observedAt := time.UnixMilli(hsv.TimestampMs).UTC()
	computedAt := x.Now().UTC()
	if computedAt.Before(observedAt) {
		computedAt = observedAt
	}

	windowID := fmt.Sprintf("%s:%s", w, observedAt.Format(time.RFC3339))

	windows := map[string]hsimodel.HSIWindowSpan{
		windowID: {
			Start: observedAt.Add(-w.Duration()).Format(time.RFC3339),
			End:   observedAt.Format(time.RFC3339),
			Label: w.Label(),
		},
	}

	axes := hsimodel.HSIAxes{}
	if affect := affectReadings(hsv.Meta.Axes, windowID); len(affect) > 0 {
		axes.Affect = &hsimodel.HSIAxisGroup{Readings: affect}
	}
	if behavior := behaviorReadings(hsv.Meta.Axes, windowID); len(behavior) > 0 {
		axes.Behavior = &hsimodel.HSIAxisGroup{Readings: behavior}
	}

	embeddings := []hsimodel.HSIEmbedding{
		{
			Vector:     append([]float64(nil), hsv.Meta.Embedding.Vector[:]...),
			Dimension:  hsimodel.EmbeddingDim,
			Encoding:   "float64",
			Model:      "hsi-fusion-v1",
			Confidence: readingConfidence,
			WindowID:   windowID,
		},
	}

	return hsimodel.HSI10Payload{
		HSIVersion:    hsimodel.HSIVersion,
		ObservedAtUTC: observedAt.Format(time.RFC3339),
		ComputedAtUTC: computedAt.Format(time.RFC3339),
		Producer:      x.Producer,
		WindowIDs:     []string{windowID},
		Windows:       windows,
		Axes:          axes,
		Embeddings:    embeddings,
		Privacy:       hsimodel.FixedPrivacyBlock(),
		Meta: hsimodel.HSIMeta{
			SDK:            x.SDK,
			Platform:       x.Platform,
			SamplingRateHz: hsv.Meta.SamplingRateHz,
		},
	}
}

func affectReadings(axes hsimodel.HSVAxes, windowID string) []hsimodel.HSIReading {
	var out []hsimodel.HSIReading
	if v := axes.Affect.ArousalIndex; v != nil {
		out = append(out, reading("arousal_index", *v, windowID))
	}
	if v := axes.Affect.ValenceStability; v != nil {
		out = append(out, reading("valence_stability", *v, windowID))
	}
	return out
}

func behaviorReadings(axes hsimodel.HSVAxes, windowID string) []hsimodel.HSIReading {
	var out []hsimodel.HSIReading
	if v := axes.Engagement.EngagementStability; v != nil {
		out = append(out, reading("engagement_stability", *v, windowID))
	}
	if v := axes.Engagement.InteractionCadence; v != nil {
		out = append(out, reading("interaction_cadence", *v, windowID))
	}
	if v := axes.Activity.MotionIndex; v != nil {
		out = append(out, reading("motion", *v, windowID))
	}
	if v := axes.Activity.PostureStability; v != nil {
		out = append(out, reading("posture_stability", *v, windowID))
	}
	if v := axes.Context.ScreenActiveRatio; v != nil {
		out = append(out, reading("screen_active_ratio", *v, windowID))
	}
	if v := axes.Context.SessionFragmentation; v != nil {
		out = append(out, reading("session_fragmentation", *v, windowID))
	}
	return out
}

func reading(axis string, score float64, windowID string) hsimodel.HSIReading {
	return hsimodel.HSIReading{
		Axis:       axis,
		Score:      score,
		Confidence: readingConfidence,
		WindowID:   windowID,
		Direction:  "higher_is_more",
	}
}
