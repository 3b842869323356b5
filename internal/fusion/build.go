package fusion

import "github.com/synheart-ai/synheart-core/internal/hsimodel"

// build assembles an HSV from whichever providers responded, per
// §4.6. Channels that did not respond (consent denied, no capability,
// or simply absent) contribute their zero value to BehaviorState/
// ContextState and leave their axes empty, matching the "consent
// denied => behavior fields default to 0" scenario.
func build(
	bio hsimodel.ProcessedBiosignals, bioOK bool,
	behav hsimodel.BehaviorWindowFeatures, behavOK bool,
	ctxd hsimodel.ContextDerived, ctxOK bool,
	w hsimodel.WindowType, timestampMs int64,
	sessionID, device string, samplingRateHz float64,
) hsimodel.HSV {
	behaviorState := hsimodel.BehaviorState{}
	if behavOK {
		behaviorState = hsimodel.BehaviorState{
			TapRateNorm:          behav.TapRateNorm,
			KeystrokeRateNorm:    behav.KeystrokeRateNorm,
			ScrollVelocityNorm:   behav.ScrollVelocityNorm,
			IdleRatio:            behav.IdleRatio,
			SwitchRateNorm:       behav.SwitchRateNorm,
			Burstiness:           behav.Burstiness,
			SessionFragmentation: behav.SessionFragmentation,
			NotificationLoad:     behav.NotificationLoad,
			DistractionScore:     behav.DistractionScore,
			FocusHint:            behav.FocusHint,
		}
	}

	contextState := hsimodel.ContextState{}
	if ctxOK {
		contextState = hsimodel.ContextState{
			AvgReplyDelayS: ctxd.AvgReplyDelayS,
			Burstiness:     ctxd.Burstiness,
			InterruptRate:  ctxd.InterruptRate,
			Overload:       ctxd.Overload,
			Frustration:    ctxd.Frustration,
			Engagement:     ctxd.Engagement,
		}
	}

	axes := buildAxes(bio, bioOK, behav, behavOK)

	embedding := hsimodel.StateEmbedding{WindowType: w, TimestampMs: timestampMs}
	embedding.Vector[0] = valOr(bioOK, bio.NormalizedHR)
	embedding.Vector[1] = valOr(bioOK, bio.NormalizedHRV)
	embedding.Vector[2] = valOr(behavOK, behav.TapRateNorm)
	embedding.Vector[3] = valOr(behavOK, behav.Burstiness)
	embedding.Vector[4] = valOr(behavOK, behav.ScrollVelocityNorm)
	embedding.Vector[5] = valOr(ctxOK, ctxd.Overload)
	embedding.Vector[6] = valOr(ctxOK, ctxd.Frustration)
	embedding.Vector[7] = valOr(ctxOK, ctxd.Engagement)
	// Remaining dimensions stay 0, per the documented placeholder
	// contract (missing numerics => 0).

	return hsimodel.HSV{
		Version:     hsimodel.HSIVersion,
		TimestampMs: timestampMs,
		Behavior:    behaviorState,
		Context:     contextState,
		Meta: hsimodel.MetaState{
			SessionID:      sessionID,
			Device:         device,
			SamplingRateHz: samplingRateHz,
			Embedding:      embedding,
			Axes:           axes,
		},
	}
}

func valOr(ok bool, v float64) float64 {
	if !ok {
		return 0
	}
	return v
}

func buildAxes(bio hsimodel.ProcessedBiosignals, bioOK bool, behav hsimodel.BehaviorWindowFeatures, behavOK bool) hsimodel.HSVAxes {
	var axes hsimodel.HSVAxes

	if bioOK {
		hr := bio.NormalizedHR
		axes.Affect.ArousalIndex = &hr
		motion := clamp01(bio.MotionEnergy)
		axes.Activity.MotionIndex = &motion
	}
	// valence_stability and posture_stability have no defined formula
	// upstream (spec.md §9 open question) and are left absent here;
	// they are treated as pass-through fields for an upstream axis
	// provider this core does not currently have.

	if behavOK {
		focus := behav.FocusHint
		axes.Engagement.EngagementStability = &focus
		tap := behav.TapRateNorm
		axes.Engagement.InteractionCadence = &tap
		frag := behav.SessionFragmentation
		axes.Context.SessionFragmentation = &frag
	}
	// screen_active_ratio has no contributing provider at this layer;
	// left absent.

	return axes
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
