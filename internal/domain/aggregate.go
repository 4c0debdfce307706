package domain

import "math"

// AggregateClaims collapses weekly observations into one total per county.
// Non-finite values (the loader's marker for blank or unparseable cells)
// are dropped row-wise, never zero-filled, so a county with only bad rows
// ends up with no total rather than a total of zero. Counties whose summed
// total is zero or negative are filtered out entirely.
//
// Output order is unspecified; the rank builder imposes order later.
func AggregateClaims(observations []RawObservation) []UnitTotal {
	sums := make(map[string]float64)
	for _, obs := range observations {
		if math.IsNaN(obs.Value) || math.IsInf(obs.Value, 0) {
			continue
		}
		sums[obs.UnitKey] += obs.Value
	}

	totals := make([]UnitTotal, 0, len(sums))
	for key, total := range sums {
		if total <= 0 {
			continue
		}
		totals = append(totals, UnitTotal{UnitKey: key, Total: total})
	}
	return totals
}
