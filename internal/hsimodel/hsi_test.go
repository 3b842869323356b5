package hsimodel

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func examplePayload() HSI10Payload {
	return HSI10Payload{
		HSIVersion:    HSIVersion,
		ObservedAtUTC: "2026-07-31T00:00:00Z",
		ComputedAtUTC: "2026-07-31T00:00:01Z",
		Producer: HSIProducer{
			Name:       "synheart-core",
			Version:    "0.1.0",
			InstanceID: "inst-1",
		},
		WindowIDs: []string{"30s:2026-07-31T00:00:00Z"},
		Windows: map[string]HSIWindowSpan{
			"30s:2026-07-31T00:00:00Z": {
				Start: "2026-07-31T00:00:00Z",
				End:   "2026-07-31T00:00:30Z",
				Label: Window30s.Label(),
			},
		},
		Axes: HSIAxes{
			Affect: &HSIAxisGroup{Readings: []HSIReading{
				{Axis: "arousal_index", Score: 0.4, Confidence: 1, WindowID: "30s:2026-07-31T00:00:00Z", Direction: "higher_is_more"},
			}},
		},
		Embeddings: []HSIEmbedding{
			{Vector: make([]float64, EmbeddingDim), Dimension: EmbeddingDim, Encoding: "float64", Model: "hsi-fusion-v1", Confidence: 0.5, WindowID: "30s:2026-07-31T00:00:00Z"},
		},
		Privacy: FixedPrivacyBlock(),
		Meta:    HSIMeta{SDK: "1.0.0", Platform: "flutter", SamplingRateHz: 1.0},
	}
}

func TestHSI10PayloadJSONRoundTrip(t *testing.T) {
	p := examplePayload()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded HSI10Payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.HSIVersion != "1.0" {
		t.Errorf("hsi_version = %q, want 1.0", decoded.HSIVersion)
	}
	if decoded.Producer.InstanceID != "inst-1" {
		t.Errorf("producer.instance_id = %q, want inst-1", decoded.Producer.InstanceID)
	}
	if len(decoded.WindowIDs) != 1 {
		t.Errorf("window_ids count = %d, want 1", len(decoded.WindowIDs))
	}
	if len(decoded.Embeddings) != 1 || decoded.Embeddings[0].Dimension != EmbeddingDim {
		t.Errorf("embeddings = %+v, want one entry of dimension %d", decoded.Embeddings, EmbeddingDim)
	}
	if decoded.Privacy != (HSIPrivacy{ContainsPII: false, RawBiosignalsAllowed: false, DerivedMetricsAllowed: true}) {
		t.Errorf("privacy = %+v, want fixed block", decoded.Privacy)
	}
	if diff := cmp.Diff(p, decoded); diff != "" {
		t.Errorf("round trip changed the payload (-want +got):\n%s", diff)
	}

	for _, field := range []string{
		"hsi_version", "observed_at_utc", "computed_at_utc", "producer",
		"window_ids", "windows", "axes", "embeddings", "privacy", "meta",
	} {
		if !hasJSONKey(data, field) {
			t.Errorf("JSON missing top-level field: %s", field)
		}
	}
}

func TestHSI10PayloadInvariants(t *testing.T) {
	p := examplePayload()

	if p.ComputedAtUTC < p.ObservedAtUTC {
		t.Errorf("computed_at_utc %q < observed_at_utc %q", p.ComputedAtUTC, p.ObservedAtUTC)
	}

	windowKeys := make([]string, 0, len(p.Windows))
	for k := range p.Windows {
		windowKeys = append(windowKeys, k)
	}
	sort.Strings(windowKeys)
	ids := append([]string(nil), p.WindowIDs...)
	sort.Strings(ids)
	if len(ids) == 0 {
		t.Fatal("window_ids must be non-empty")
	}
	if !equalStrings(ids, windowKeys) {
		t.Errorf("window_ids %v is not a permutation of windows keys %v", p.WindowIDs, windowKeys)
	}

	idSet := make(map[string]bool, len(p.WindowIDs))
	for _, id := range p.WindowIDs {
		idSet[id] = true
	}
	if p.Axes.Affect != nil {
		for _, r := range p.Axes.Affect.Readings {
			if !idSet[r.WindowID] {
				t.Errorf("affect reading window_id %q not in window_ids", r.WindowID)
			}
		}
	}
	if p.Axes.Behavior != nil {
		for _, r := range p.Axes.Behavior.Readings {
			if !idSet[r.WindowID] {
				t.Errorf("behavior reading window_id %q not in window_ids", r.WindowID)
			}
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasJSONKey(data []byte, key string) bool {
	target := []byte(`"` + key + `"`)
	return indexOf(data, target) >= 0
}

func indexOf(s, sub []byte) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
