// Package diffhsi compares two exported HSI 1.0 snapshots and
// highlights what changed between them. It is a debugging and
// regression aid for host apps validating that a build or config
// change didn't silently shift fusion output; it never makes a
// network call and is not part of the wire protocol.
package diffhsi

import (
	"math"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// significantDeltaPct is the threshold, in percent of the baseline
// value, below which a reading change is considered noise rather
// than a real shift in fusion output.
const significantDeltaPct = 5.0

// ReadingChange is a single axis reading's difference between two
// snapshots.
type ReadingChange struct {
	Axis         string  `json:"axis"`
	OldScore     float64 `json:"old_score"`
	NewScore     float64 `json:"new_score"`
	Delta        float64 `json:"delta"`
	DeltaPct     float64 `json:"delta_pct"`
	Direction    string  `json:"direction"` // "increase", "decrease", "unchanged"
	Significance string  `json:"significance"`
}

// Report is the result of comparing two HSI 1.0 snapshots.
type Report struct {
	BaselineObservedAtUTC string          `json:"baseline_observed_at_utc"`
	CurrentObservedAtUTC  string          `json:"current_observed_at_utc"`
	Changes               []ReadingChange `json:"changes"`
	Appeared              []string        `json:"appeared"`   // axes present only in current
	Disappeared           []string        `json:"disappeared"` // axes present only in baseline
	EmbeddingDistance     *float64        `json:"embedding_distance,omitempty"`
}

// Compare reports the differences between a baseline and a current
// HSI 1.0 snapshot: per-axis score deltas, readings that appeared or
// disappeared, and the cosine distance between their primary
// embeddings (when both carry at least one).
func Compare(baseline, current *hsimodel.HSI10Payload) Report {
	report := Report{
		BaselineObservedAtUTC: baseline.ObservedAtUTC,
		CurrentObservedAtUTC:  current.ObservedAtUTC,
	}

	oldReadings := flattenReadings(baseline)
	newReadings := flattenReadings(current)

	for axis, newReading := range newReadings {
		oldReading, ok := oldReadings[axis]
		if !ok {
			report.Appeared = append(report.Appeared, axis)
			continue
		}
		report.Changes = append(report.Changes, buildChange(axis, oldReading.Score, newReading.Score))
	}
	for axis := range oldReadings {
		if _, ok := newReadings[axis]; !ok {
			report.Disappeared = append(report.Disappeared, axis)
		}
	}

	if dist, ok := embeddingDistance(baseline, current); ok {
		report.EmbeddingDistance = &dist
	}

	return report
}

func flattenReadings(p *hsimodel.HSI10Payload) map[string]hsimodel.HSIReading {
	out := make(map[string]hsimodel.HSIReading)
	if p.Axes.Affect != nil {
		for _, r := range p.Axes.Affect.Readings {
			out[r.Axis] = r
		}
	}
	if p.Axes.Behavior != nil {
		for _, r := range p.Axes.Behavior.Readings {
			out[r.Axis] = r
		}
	}
	return out
}

func buildChange(axis string, oldScore, newScore float64) ReadingChange {
	delta := newScore - oldScore
	deltaPct := 0.0
	if oldScore != 0 {
		deltaPct = (delta / math.Abs(oldScore)) * 100
	} else if newScore != 0 {
		deltaPct = 100
	}

	direction := "unchanged"
	if deltaPct > significantDeltaPct {
		direction = "increase"
	} else if deltaPct < -significantDeltaPct {
		direction = "decrease"
	}

	significance := "low"
	absPct := math.Abs(deltaPct)
	switch {
	case absPct >= 50:
		significance = "high"
	case absPct >= 20:
		significance = "medium"
	}

	return ReadingChange{
		Axis:         axis,
		OldScore:     oldScore,
		NewScore:     newScore,
		Delta:        delta,
		DeltaPct:     deltaPct,
		Direction:    direction,
		Significance: significance,
	}
}

// embeddingDistance returns 1 - cosine_similarity between the first
// embedding of each snapshot, when both carry at least one embedding
// and the first ones share a dimension. Returns false otherwise
// (nothing comparable).
func embeddingDistance(baseline, current *hsimodel.HSI10Payload) (float64, bool) {
	if len(baseline.Embeddings) == 0 || len(current.Embeddings) == 0 {
		return 0, false
	}
	a := baseline.Embeddings[0].Vector
	b := current.Embeddings[0].Vector
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0, false
	}

	cosineSimilarity := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	return 1 - cosineSimilarity, true
}
