package hsimodel

// EmbeddingDim is the fixed dimension of the state embedding, per the
// documented deterministic-projection placeholder contract (§9).
const EmbeddingDim = 64

// StateEmbedding is a fixed-dimension float projection of the fused
// state, tagged with the window it was derived from.
type StateEmbedding struct {
	Vector     [EmbeddingDim]float64
	WindowType WindowType
	TimestampMs int64
}

// AffectAxes holds affect-domain scalar readings, each in [0,1] or
// absent (nil).
type AffectAxes struct {
	ArousalIndex     *float64
	ValenceStability *float64
}

// EngagementAxes holds engagement-domain scalar readings.
type EngagementAxes struct {
	EngagementStability *float64
	InteractionCadence  *float64
}

// ActivityAxes holds activity-domain scalar readings.
type ActivityAxes struct {
	MotionIndex      *float64
	PostureStability *float64
}

// ContextAxes holds context-domain scalar readings.
type ContextAxes struct {
	ScreenActiveRatio    *float64
	SessionFragmentation *float64
}

// HSVAxes bundles the four orthogonal axis groups.
type HSVAxes struct {
	Affect     AffectAxes
	Engagement EngagementAxes
	Activity   ActivityAxes
	Context    ContextAxes
}

// BehaviorState carries the behavior-derived fields of an HSV.
type BehaviorState struct {
	TapRateNorm          float64
	KeystrokeRateNorm    float64
	ScrollVelocityNorm   float64
	IdleRatio            float64
	SwitchRateNorm       float64
	Burstiness           float64
	SessionFragmentation float64
	NotificationLoad     float64
	DistractionScore     float64
	FocusHint            float64
}

// ContextState carries the context-derived fields of an HSV.
type ContextState struct {
	AvgReplyDelayS float64
	Burstiness     float64
	InterruptRate  float64
	Overload       float64
	Frustration    float64
	Engagement     float64
}

// MetaState carries run-identifying metadata plus the embedding and axes.
type MetaState struct {
	SessionID      string
	Device         string
	SamplingRateHz float64
	Embedding      StateEmbedding
	Axes           HSVAxes
}

// EmotionState and FocusState are intentionally empty at the core:
// interpretation of raw axes into emotion/focus labels is a downstream
// responsibility, not the fusion engine's (§4.6).
type EmotionState struct{}
type FocusState struct{}

// HSV is the Human State Vector produced once per successful scheduler
// tick and published on the broadcast stream.
type HSV struct {
	Version     string
	TimestampMs int64
	Behavior    BehaviorState
	Context     ContextState
	Meta        MetaState
	Emotion     EmotionState
	Focus       FocusState
}
