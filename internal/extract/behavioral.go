package extract

import (
	"math"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

const (
	idleGapThresholdS    = 5.0
	sessionGapThresholdS = 30.0
)

// Behavioral computes BehaviorWindowFeatures over a window's events,
// per §4.3. Events are assumed already ordered by arrival/timestamp
// (the contract WindowBuffer.GetEvents provides). Empty input returns
// the documented neutral vector.
func Behavioral(events []hsimodel.BehavioralEvent) hsimodel.BehaviorWindowFeatures {
	if len(events) == 0 {
		return hsimodel.NeutralBehaviorWindowFeatures()
	}

	duration := 0.0
	if len(events) >= 2 {
		duration = events[len(events)-1].Timestamp.Sub(events[0].Timestamp).Seconds()
	}

	var taps, switches, notifs, keys int
	var scrollAbsSum float64
	for _, e := range events {
		switch e.Type {
		case hsimodel.EventTap:
			taps++
		case hsimodel.EventAppSwitch:
			switches++
		case hsimodel.EventNotifReceived, hsimodel.EventNotifOpened:
			notifs++
		case hsimodel.EventKeyDown, hsimodel.EventKeyUp:
			keys++
		case hsimodel.EventScroll:
			scrollAbsSum += math.Abs(e.ScrollDelta())
		}
	}

	var tapRateNorm, keystrokeRateNorm, switchRateNorm, notificationLoad, scrollVelocityNorm float64
	if duration > 0 {
		tapRateNorm = clamp(float64(taps)/duration, 0, 1)
		keystrokeRateNorm = clamp(float64(keys)/duration/2, 0, 1)
		switchRateNorm = clamp(float64(switches)/duration, 0, 1)
		notificationLoad = clamp(float64(notifs)/duration, 0, 1)
		scrollVelocityNorm = clamp(scrollAbsSum/duration/100, 0, 1)
	}

	gaps := interEventGapsSeconds(events)

	idleRatio := 1.0
	if len(gaps) > 0 {
		over := 0
		for _, g := range gaps {
			if g > idleGapThresholdS {
				over++
			}
		}
		idleRatio = float64(over) / float64(len(gaps))
	}

	burstiness := clamp(varianceOf(gaps)/(meanOf(gaps)+1e-3), 0, 1)

	sessions := 1
	for _, g := range gaps {
		if g > sessionGapThresholdS {
			sessions++
		}
	}
	denom := math.Max(float64(len(events))/10, 1)
	sessionFragmentation := clamp(float64(sessions)/denom, 0, 1)

	distractionScore := distractionFromComponents(switchRateNorm, burstiness, sessionFragmentation, notificationLoad)

	return hsimodel.BehaviorWindowFeatures{
		TapRateNorm:          tapRateNorm,
		KeystrokeRateNorm:    keystrokeRateNorm,
		ScrollVelocityNorm:   scrollVelocityNorm,
		IdleRatio:            idleRatio,
		SwitchRateNorm:       switchRateNorm,
		Burstiness:           burstiness,
		SessionFragmentation: sessionFragmentation,
		NotificationLoad:     notificationLoad,
		DistractionScore:     distractionScore,
		FocusHint:            1 - distractionScore,
	}
}

// distractionFromComponents applies the weighted distraction heuristic
// of §4.3 to the four already-clamped component scores.
func distractionFromComponents(switchRateNorm, burstiness, sessionFragmentation, notificationLoad float64) float64 {
	return clamp(
		0.3*switchRateNorm+0.2*burstiness+0.3*sessionFragmentation+0.2*notificationLoad,
		0, 1,
	)
}

func interEventGapsSeconds(events []hsimodel.BehavioralEvent) []float64 {
	if len(events) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(events)-1)
	for i := 1; i < len(events); i++ {
		gaps = append(gaps, events[i].Timestamp.Sub(events[i-1].Timestamp).Seconds())
	}
	return gaps
}

func meanOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func varianceOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := meanOf(vs)
	var sumSq float64
	for _, v := range vs {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(vs))
}
