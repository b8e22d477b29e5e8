package blueprint

import "math"

// CostModel prices a template by piece count.
//
// DebugFree forces every cost to zero; it is injected from tuning so builds
// never need a compile-time switch to test placement flows.
type CostModel struct {
	DebugFree bool
}

// Cost is roundToNice(4 * n^1.1): slightly steeper than linear so large
// stamps stay expensive, zero for an empty template.
func (m CostModel) Cost(n int) int {
	if m.DebugFree || n <= 0 {
		return 0
	}
	return roundToNice(4 * math.Pow(float64(n), 1.1))
}

// roundToNice snaps a raw price to a human-friendly step so the UI never
// shows values like 1387.
func roundToNice(v float64) int {
	var step float64
	switch {
	case v < 20:
		step = 1
	case v < 50:
		step = 5
	case v < 100:
		step = 10
	case v < 500:
		step = 50
	case v < 1000:
		step = 100
	case v < 5000:
		step = 500
	default:
		step = 1000
	}
	return int(math.Round(v/step) * step)
}
