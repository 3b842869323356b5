// Package capability implements the consent/capability gate that
// filters feature-provider output before it ever reaches fusion. The
// gate consults two external oracles (neither implemented here, both
// narrow interfaces the core consumes) and applies §4.4's tiering.
package capability

// Module names the three feature-provider boundaries the gate applies
// to. These match the three ingestion channels.
type Module string

const (
	ModuleBiosignal Module = "biosignal"
	ModuleBehavior  Module = "behavior"
	ModuleContext   Module = "context"
)

// Level is the capability tier granted to a module, independent of
// consent.
type Level string

const (
	LevelNone     Level = "none"
	LevelCore     Level = "core"
	LevelExtended Level = "extended"
	LevelResearch Level = "research"
)

// ConsentOracle answers whether the user has consented to a module's
// data being used at all. Implemented externally (e.g. backed by a
// remote consent service); the core only consults it.
type ConsentOracle interface {
	Consented(module Module) bool
}

// CapabilityOracle answers the declared access tier for a module.
// Implemented externally; the core only consults it.
type CapabilityOracle interface {
	Level(module Module) Level
}

// Gate combines a ConsentOracle and CapabilityOracle into the single
// decision point feature providers consult before returning data.
type Gate struct {
	Consent    ConsentOracle
	Capability CapabilityOracle
}

// NewGate constructs a Gate from the two oracles.
func NewGate(consent ConsentOracle, capability CapabilityOracle) *Gate {
	return &Gate{Consent: consent, Capability: capability}
}

// Decision is the outcome of a gate check for a single module: either
// full access, coarse (core-tier) access, or none.
type Decision int

const (
	DecisionDenied Decision = iota
	DecisionCoarse
	DecisionFull
)

// Check applies §4.4's rule set: consent denial and level=none both
// yield DecisionDenied (feature absent); level=core yields
// DecisionCoarse (caller must zero burstiness/session_fragmentation/
// notification_load); level=extended or research yields DecisionFull.
func (g *Gate) Check(module Module) Decision {
	if g.Consent == nil || !g.Consent.Consented(module) {
		return DecisionDenied
	}
	switch g.Capability.Level(module) {
	case LevelCore:
		return DecisionCoarse
	case LevelExtended, LevelResearch:
		return DecisionFull
	default:
		return DecisionDenied
	}
}

// StaticConsentOracle is a deterministic in-memory ConsentOracle, used
// by tests and by the CLI's default wiring when no remote consent
// service is configured.
type StaticConsentOracle struct {
	Consents map[Module]bool
}

func (s *StaticConsentOracle) Consented(module Module) bool {
	if s == nil || s.Consents == nil {
		return false
	}
	return s.Consents[module]
}

// StaticCapabilityOracle is a deterministic in-memory CapabilityOracle.
type StaticCapabilityOracle struct {
	Levels map[Module]Level
}

func (s *StaticCapabilityOracle) Level(module Module) Level {
	if s == nil || s.Levels == nil {
		return LevelNone
	}
	if lvl, ok := s.Levels[module]; ok {
		return lvl
	}
	return LevelNone
}
