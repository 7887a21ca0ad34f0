package timeseries

import (
	"sort"
	"time"
)

// deltaTolerance is the absolute floor below which two inter-observation
// intervals are considered equal. Observation times in practice carry at
// most second resolution, so a millisecond floor absorbs clock noise
// without masking real irregularity.
const deltaTolerance = time.Millisecond

// SamplingDescriptor summarizes the spacing of a series' observations.
type SamplingDescriptor struct {
	Deltas         []time.Duration
	MedianInterval time.Duration
	Equidistant    bool
}

// Sampling derives the sampling descriptor of the series: the set of
// inter-observation deltas, their median, and whether the series is
// equidistant. A series is equidistant iff all deltas equal the first one
// within tolerance. Series with fewer than two observations classify as
// equidistant; the individual tests reject them as degenerate instead.
func (s *Series) Sampling() SamplingDescriptor {
	n := len(s.Timestamps)
	if n < 2 {
		return SamplingDescriptor{Equidistant: true}
	}

	deltas := make([]time.Duration, n-1)
	for i := 1; i < n; i++ {
		deltas[i-1] = s.Timestamps[i].Sub(s.Timestamps[i-1])
	}

	equidistant := true
	for _, d := range deltas[1:] {
		if !durationsEqual(d, deltas[0]) {
			equidistant = false
			break
		}
	}

	return SamplingDescriptor{
		Deltas:         deltas,
		MedianInterval: medianDuration(deltas),
		Equidistant:    equidistant,
	}
}

// IsEquidistant reports whether all inter-observation intervals are equal
// within tolerance.
func (s *Series) IsEquidistant() bool {
	return s.Sampling().Equidistant
}

func durationsEqual(a, b time.Duration) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff <= deltaTolerance {
		return true
	}
	// Relative tolerance for coarse intervals, absorbing sub-ppb rounding
	// only.
	larger := a
	if b > larger {
		larger = b
	}
	return float64(diff) <= 1e-9*float64(larger)
}

func medianDuration(deltas []time.Duration) time.Duration {
	if len(deltas) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(deltas))
	copy(sorted, deltas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
