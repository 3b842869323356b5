// Package hsimodel defines the value types that flow through the HSI
// core: raw samples from the three signal channels, window features,
// state axes, and the exported HSV/HSI 1.0 shapes. Schema version: 1.0.
package hsimodel

import "time"

// Biosignals is a single heterogeneous biosignal sample. All numeric
// fields are nullable; the zero value of a pointer means "not present"
// rather than zero, per the explicit-optional design note in §9.
type Biosignals struct {
	Timestamp         time.Time
	HeartRate         *float64
	HRV               *float64
	RRIntervals       []float64
	Motion            *Motion
	SleepStage        *string
	RespirationRate   *float64
}

// Motion is accelerometer-derived motion data.
type Motion struct {
	X, Y, Z float64
	Energy  *float64
}

// BehavioralEventType is the closed set of behavioral event kinds.
type BehavioralEventType string

const (
	EventTap            BehavioralEventType = "tap"
	EventScroll         BehavioralEventType = "scroll"
	EventKeyDown        BehavioralEventType = "key_down"
	EventKeyUp          BehavioralEventType = "key_up"
	EventAppSwitch      BehavioralEventType = "app_switch"
	EventNotifReceived  BehavioralEventType = "notif_received"
	EventNotifOpened    BehavioralEventType = "notif_opened"
)

// BehavioralEvent is a single atomic user-interaction event.
type BehavioralEvent struct {
	Type      BehavioralEventType
	Timestamp time.Time
	Metadata  map[string]any
}

// ScrollDelta extracts a numeric scroll delta from Metadata["delta"],
// defaulting to 0 when absent or not numeric.
func (e BehavioralEvent) ScrollDelta() float64 {
	if e.Metadata == nil {
		return 0
	}
	switch v := e.Metadata["delta"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// ConversationSignals describes conversational timing patterns.
type ConversationSignals struct {
	ReplyDelaysS  []float64
	MessageBursts []time.Time
	Interrupts    []time.Time
}

// DeviceState describes coarse device/OS state.
type DeviceState struct {
	Foreground bool
	ScreenOn   bool
	FocusMode  *string
}

// UserPatterns holds slow-moving behavioral baselines.
type UserPatterns struct {
	MorningFocusBias       *float64
	AvgSessionMinutes      *float64
	BaselineTypingCadence  *float64
}

// ContextSignals is a single context-channel sample.
type ContextSignals struct {
	Timestamp    time.Time
	Conversation *ConversationSignals
	Device       *DeviceState
	Patterns     *UserPatterns
}

// SignalData is the combined fan-in output: the latest sample from
// each of the three channels at the moment of emission. Per §4.1 this
// is only published once Biosignals is present.
type SignalData struct {
	Biosignals Biosignals
	Behavioral *BehavioralEvent
	Context    *ContextSignals
}
