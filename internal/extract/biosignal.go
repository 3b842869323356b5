package extract

import (
	"math"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// Biosignal computes ProcessedBiosignals from a single raw sample. Nil
// optional fields contribute 0 to the derived scalars they feed,
// matching the "missing numerics => 0" convention used throughout
// fusion (§4.6).
func Biosignal(s hsimodel.Biosignals) hsimodel.ProcessedBiosignals {
	var hr, hrv float64
	if s.HeartRate != nil {
		hr = *s.HeartRate
	}
	if s.HRV != nil {
		hrv = *s.HRV
	}

	var motionEnergy float64
	if s.Motion != nil && s.Motion.Energy != nil {
		motionEnergy = *s.Motion.Energy
	}

	return hsimodel.ProcessedBiosignals{
		NormalizedHR:  clamp((hr-50)/70, 0, 1),
		NormalizedHRV: clamp((hrv-20)/80, 0, 1),
		RMSSD:         rmssd(s.RRIntervals),
		SDNN:          sdnn(s.RRIntervals),
		MotionEnergy:  motionEnergy,
		RRIntervals:   s.RRIntervals,
	}
}

// rmssd is the root mean square of successive RR-interval differences.
// Requires n >= 2 intervals; returns 0 otherwise.
func rmssd(rr []float64) float64 {
	n := len(rr)
	if n < 2 {
		return 0
	}
	var sumSq float64
	for i := 1; i < n; i++ {
		d := rr[i] - rr[i-1]
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// sdnn is the standard deviation of the RR-interval series.
func sdnn(rr []float64) float64 {
	n := len(rr)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range rr {
		sum += v
	}
	mean := sum / float64(n)

	var sumSq float64
	for _, v := range rr {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}
