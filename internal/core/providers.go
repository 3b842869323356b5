package core

import (
	"github.com/synheart-ai/synheart-core/internal/capability"
	"github.com/synheart-ai/synheart-core/internal/extract"
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
	"github.com/synheart-ai/synheart-core/internal/window"
)

// biosignalProvider adapts the fan-in's latest biosignal cache,
// gated by consent/capability, into a fusion.BiosignalProvider.
type biosignalProvider struct {
	core *Core
}

func (p *biosignalProvider) Features(w hsimodel.WindowType) (hsimodel.ProcessedBiosignals, bool) {
	if p.core.gate.Check(capability.ModuleBiosignal) == capability.DecisionDenied {
		return hsimodel.ProcessedBiosignals{}, false
	}

	p.core.mu.Lock()
	latest := p.core.latestBio
	p.core.mu.Unlock()
	if latest == nil {
		return hsimodel.ProcessedBiosignals{}, false
	}
	return extract.Biosignal(*latest), true
}

// behaviorProvider adapts the window aggregator's per-window event
// buffer, gated and coarsened per §4.4, into a fusion.BehaviorProvider.
type behaviorProvider struct {
	core *Core
	agg  *window.Aggregator
}

func (p *behaviorProvider) Features(w hsimodel.WindowType) (hsimodel.BehaviorWindowFeatures, bool) {
	decision := p.core.gate.Check(capability.ModuleBehavior)
	if decision == capability.DecisionDenied {
		return hsimodel.BehaviorWindowFeatures{}, false
	}

	events := p.agg.GetEvents(w)
	features := extract.Behavioral(events)
	features = capability.ApplyBehaviorDecision(decision, features)
	return features, true
}

// contextProvider adapts the fan-in's latest context-signal cache
// into a fusion.ContextProvider. The aggregator never buffers context
// signals (only behavioral events are windowed, per §4.2), so this
// always reflects the single most recent observation.
type contextProvider struct {
	core *Core
}

func (p *contextProvider) Features(w hsimodel.WindowType) (hsimodel.ContextDerived, bool) {
	if p.core.gate.Check(capability.ModuleContext) == capability.DecisionDenied {
		return hsimodel.ContextDerived{}, false
	}

	p.core.mu.Lock()
	latest := p.core.latestCtx
	p.core.mu.Unlock()
	if latest == nil {
		return hsimodel.ContextDerived{}, false
	}
	return extract.Contextual(latest.Conversation), true
}
