package hsimodel

// HSIVersion is the wire schema version emitted in every snapshot.
const HSIVersion = "1.0"

// HSIProducer identifies the core instance that produced a snapshot.
type HSIProducer struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	InstanceID string `json:"instance_id"`
}

// HSIReading is a single named scalar reading on the wire.
type HSIReading struct {
	Axis       string  `json:"axis"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	WindowID   string  `json:"window_id"`
	Direction  string  `json:"direction"`
}

// HSIAxisGroup is a named list of readings; affect and behavior are
// both optional on the wire (absent when the core never populated any
// reading in that group).
type HSIAxisGroup struct {
	Readings []HSIReading `json:"readings"`
}

// HSIAxes splits readings into the affect and behavior groups.
// Engagement/activity/context scalars are flattened into Behavior per
// the exporter's flattening rule (§4.7).
type HSIAxes struct {
	Affect   *HSIAxisGroup `json:"affect,omitempty"`
	Behavior *HSIAxisGroup `json:"behavior,omitempty"`
}

// HSIWindowSpan is one entry in the windows map: the window's
// trailing interval and display label.
type HSIWindowSpan struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// HSIEmbedding is a single named vector entry in the snapshot's
// embeddings list.
type HSIEmbedding struct {
	Vector     []float64 `json:"vector"`
	Dimension  int       `json:"dimension"`
	Encoding   string    `json:"encoding"`
	Model      string    `json:"model"`
	Confidence float64   `json:"confidence"`
	WindowID   string    `json:"window_id"`
}

// HSIPrivacy is the fixed privacy declaration block carried on every
// snapshot, per §4.7: the core never emits raw samples.
type HSIPrivacy struct {
	ContainsPII           bool `json:"contains_pii"`
	RawBiosignalsAllowed  bool `json:"raw_biosignals_allowed"`
	DerivedMetricsAllowed bool `json:"derived_metrics_allowed"`
}

// HSIMeta carries snapshot-level descriptive metadata. Deliberately
// free of user-identifying content (§1 non-goals) — no session id or
// device string travels on the wire, only SDK/platform/rate context.
type HSIMeta struct {
	SDK            string  `json:"sdk"`
	Platform       string  `json:"platform"`
	SamplingRateHz float64 `json:"sampling_rate_hz"`
}

// HSI10Payload is the canonical, signed HSI 1.0 snapshot shape
// produced by the exporter and sent by the upload client. It never
// carries raw samples, only derived, windowed state.
type HSI10Payload struct {
	HSIVersion    string                   `json:"hsi_version"`
	ObservedAtUTC string                   `json:"observed_at_utc"`
	ComputedAtUTC string                   `json:"computed_at_utc"`
	Producer      HSIProducer              `json:"producer"`
	WindowIDs     []string                 `json:"window_ids"`
	Windows       map[string]HSIWindowSpan `json:"windows"`
	Axes          HSIAxes                  `json:"axes"`
	Embeddings    []HSIEmbedding           `json:"embeddings"`
	Privacy       HSIPrivacy               `json:"privacy"`
	Meta          HSIMeta                  `json:"meta"`
}

// FixedPrivacyBlock returns the one privacy declaration the exporter
// ever emits: the core is derived-state-only, by construction.
func FixedPrivacyBlock() HSIPrivacy {
	return HSIPrivacy{
		ContainsPII:           false,
		RawBiosignalsAllowed:  false,
		DerivedMetricsAllowed: true,
	}
}
