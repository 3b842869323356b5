package fusion

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// PrimaryWindow is the window the collector drives fusion from; other
// windows remain available to downstream consumers via the window
// aggregator directly.
const PrimaryWindow = hsimodel.Window30s

// Engine is the channel collector + fusion engine. It holds the three
// (optional) feature providers and publishes an HSV on a latest-value
// broadcast stream once per successful tick.
type Engine struct {
	Biosignal BiosignalProvider
	Behavior  BehaviorProvider
	Context   ContextProvider

	SessionID      string
	Device         string
	SamplingRateHz float64

	mu       sync.Mutex
	latest   *hsimodel.HSV
	subs     []chan hsimodel.HSV
}

// NewEngine constructs an Engine. Any of the three providers may be
// nil, meaning that channel never contributes (equivalent to always
// returning ok=false).
func NewEngine(bio BiosignalProvider, behav BehaviorProvider, ctxp ContextProvider, sessionID, device string, samplingRateHz float64) *Engine {
	return &Engine{
		Biosignal:      bio,
		Behavior:       behav,
		Context:        ctxp,
		SessionID:      sessionID,
		Device:         device,
		SamplingRateHz: samplingRateHz,
	}
}

// Subscribe returns a channel that receives every future HSV
// publication. If an HSV has already been produced, the latest value
// is delivered immediately to the new subscriber (late-subscriber
// semantics, per §4.6).
func (e *Engine) Subscribe() <-chan hsimodel.HSV {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan hsimodel.HSV, 1)
	e.subs = append(e.subs, ch)
	if e.latest != nil {
		ch <- *e.latest
	}
	return ch
}

// Latest returns the most recently published HSV, or false if none
// has been produced yet.
func (e *Engine) Latest() (hsimodel.HSV, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.latest == nil {
		return hsimodel.HSV{}, false
	}
	return *e.latest, true
}

// Tick pulls features from every provider for w. If w is not the
// primary fusion window, or no provider responded, the tick is
// dropped. On success it constructs and publishes exactly one HSV.
func (e *Engine) Tick(w hsimodel.WindowType, timestampMs int64) {
	if w != PrimaryWindow {
		return
	}

	bio, bioOK := e.biosignalFeatures(w)
	behav, behavOK := e.behaviorFeatures(w)
	ctxd, ctxOK := e.contextFeatures(w)

	if !bioOK && !behavOK && !ctxOK {
		log.Info().Str("window_type", string(w)).Msg("no feature provider responded, dropping tick")
		return
	}

	hsv := build(bio, bioOK, behav, behavOK, ctxd, ctxOK, w, timestampMs, e.SessionID, e.Device, e.SamplingRateHz)
	e.publish(hsv)
}

func (e *Engine) biosignalFeatures(w hsimodel.WindowType) (hsimodel.ProcessedBiosignals, bool) {
	if e.Biosignal == nil {
		return hsimodel.ProcessedBiosignals{}, false
	}
	return e.Biosignal.Features(w)
}

func (e *Engine) behaviorFeatures(w hsimodel.WindowType) (hsimodel.BehaviorWindowFeatures, bool) {
	if e.Behavior == nil {
		return hsimodel.BehaviorWindowFeatures{}, false
	}
	return e.Behavior.Features(w)
}

func (e *Engine) contextFeatures(w hsimodel.WindowType) (hsimodel.ContextDerived, bool) {
	if e.Context == nil {
		return hsimodel.ContextDerived{}, false
	}
	return e.Context.Features(w)
}

func (e *Engine) publish(hsv hsimodel.HSV) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latest = &hsv
	for _, sub := range e.subs {
		select {
		case sub <- hsv:
		default:
			// Slow subscriber: drop. Latest-value semantics mean a
			// late reader only ever needs the most recent HSV, not
			// every intermediate tick.
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- hsv:
			default:
			}
		}
	}
}
