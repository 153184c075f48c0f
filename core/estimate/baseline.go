package estimate

import "math"

// baselineMinutes is the closed-form travel-time curve shared by the
// heuristic backend and the regression bootstrap. It grows with distance,
// weight, traffic and bad weather, peaks around commute hours and shrinks
// slightly for expedited priorities.
func baselineMinutes(f Features) float64 {
	perKm := 1.6 + 2.4*f.TrafficLevel + 1.2*f.Weather
	m := 8 + f.DistanceKm*perKm + 0.05*f.WeightKg
	// Rush-hour bump: highest mid-morning and early evening.
	m += 6 * math.Pow(math.Sin(math.Pi*f.TimeOfDay), 2)
	m -= 3 * f.Priority
	if m < 1 {
		m = 1
	}
	return m
}
