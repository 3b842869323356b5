package export

import (
	"testing"
	"time"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

func sampleHSV() hsimodel.HSV {
	arousal := 0.4
	focus := 0.8
	ts := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	return hsimodel.HSV{
		Version:     hsimodel.HSIVersion,
		TimestampMs: ts.UnixMilli(),
		Meta: hsimodel.MetaState{
			SessionID:      "sess-1",
			Device:         "phone",
			SamplingRateHz: 1.0,
			Embedding: hsimodel.StateEmbedding{
				WindowType:  hsimodel.Window30s,
				TimestampMs: ts.UnixMilli(),
			},
			Axes: hsimodel.HSVAxes{
				Affect: hsimodel.AffectAxes{ArousalIndex: &arousal},
				Engagement: hsimodel.EngagementAxes{
					EngagementStability: &focus,
				},
			},
		},
	}
}

func TestExportComputedAfterObserved(t *testing.T) {
	later := time.Date(2026, 7, 31, 12, 0, 1, 0, time.UTC)
	x := NewExporter(hsimodel.HSIProducer{Name: "synheart-core"}, "1.0.0", "flutter", func() time.Time { return later })

	p := x.Export(sampleHSV())

	if p.ComputedAtUTC < p.ObservedAtUTC {
		t.Errorf("computed_at_utc %q < observed_at_utc %q", p.ComputedAtUTC, p.ObservedAtUTC)
	}
}

func TestExportClockSkewKeepsComputedEqualToObserved(t *testing.T) {
	earlier := time.Date(2026, 7, 31, 11, 59, 0, 0, time.UTC)
	x := NewExporter(hsimodel.HSIProducer{}, "1.0.0", "flutter", func() time.Time { return earlier })

	p := x.Export(sampleHSV())

	if p.ComputedAtUTC != p.ObservedAtUTC {
		t.Errorf("computed_at_utc = %q, observed_at_utc = %q, want equal when now() precedes observed", p.ComputedAtUTC, p.ObservedAtUTC)
	}
}

func TestExportWindowIDsPermuteWindowsKeys(t *testing.T) {
	x := NewExporter(hsimodel.HSIProducer{}, "1.0.0", "flutter", nil)
	p := x.Export(sampleHSV())

	if len(p.WindowIDs) == 0 {
		t.Fatal("window_ids must be non-empty")
	}
	for _, id := range p.WindowIDs {
		if _, ok := p.Windows[id]; !ok {
			t.Errorf("window_id %q not a key of windows map", id)
		}
	}
	if len(p.WindowIDs) != len(p.Windows) {
		t.Errorf("window_ids count %d != windows map size %d", len(p.WindowIDs), len(p.Windows))
	}
}

func TestExportReadingsReferenceValidWindowID(t *testing.T) {
	x := NewExporter(hsimodel.HSIProducer{}, "1.0.0", "flutter", nil)
	p := x.Export(sampleHSV())

	idSet := make(map[string]bool)
	for _, id := range p.WindowIDs {
		idSet[id] = true
	}
	if p.Axes.Affect == nil || len(p.Axes.Affect.Readings) == 0 {
		t.Fatal("expected at least one affect reading from a populated arousal_index axis")
	}
	for _, r := range p.Axes.Affect.Readings {
		if !idSet[r.WindowID] {
			t.Errorf("reading window_id %q not in window_ids", r.WindowID)
		}
	}
	if p.Axes.Behavior == nil || len(p.Axes.Behavior.Readings) == 0 {
		t.Fatal("expected at least one behavior reading from a populated engagement_stability axis")
	}
}

func TestExportEmbeddingIsSingleFixedDimensionEntry(t *testing.T) {
	x := NewExporter(hsimodel.HSIProducer{}, "1.0.0", "flutter", nil)
	p := x.Export(sampleHSV())

	if len(p.Embeddings) != 1 {
		t.Fatalf("embeddings count = %d, want 1", len(p.Embeddings))
	}
	e := p.Embeddings[0]
	if e.Dimension != hsimodel.EmbeddingDim || len(e.Vector) != hsimodel.EmbeddingDim {
		t.Errorf("embedding dimension/vector length = %d/%d, want %d", e.Dimension, len(e.Vector), hsimodel.EmbeddingDim)
	}
	if e.Encoding != "float64" || e.Model != "hsi-fusion-v1" {
		t.Errorf("embedding encoding/model = %q/%q, want float64/hsi-fusion-v1", e.Encoding, e.Model)
	}
	if e.Confidence <= 0 || e.Confidence > 1 {
		t.Errorf("embedding confidence = %v, want in (0,1]", e.Confidence)
	}
}

func TestExportPrivacyBlockIsFixed(t *testing.T) {
	x := NewExporter(hsimodel.HSIProducer{}, "1.0.0", "flutter", nil)
	p := x.Export(sampleHSV())

	want := hsimodel.HSIPrivacy{ContainsPII: false, RawBiosignalsAllowed: false, DerivedMetricsAllowed: true}
	if p.Privacy != want {
		t.Errorf("privacy = %+v, want %+v", p.Privacy, want)
	}
}
