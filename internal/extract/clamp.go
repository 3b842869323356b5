// Package extract implements the feature extractors: biosignal HRV
// math, behavioral rate/burstiness/fragmentation/distraction heuristics,
// and contextual derived indices.
package extract

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
