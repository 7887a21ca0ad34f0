package stats

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/godiag/timeseries"
)

// StofferToloiResult represents the result of a Stoffer-Toloi test.
type StofferToloiResult struct {
	Statistic   float64
	PValue      float64
	Lags        int
	DOF         int
	GridSize    int   // length of the reconstructed regular grid
	Observed    int   // observations present on the grid
	SkippedLags []int // lags with no observed pair, excluded from the sum
}

// StofferToloi performs the Stoffer-Toloi test for autocorrelation, a
// generalization of Ljung-Box that accommodates missing observations on an
// otherwise regular grid. The series is projected onto the grid implied by
// freq; the pair count actually observed at each lag replaces the
// complete-data pair count in the normalization, so gaps reduce the weight
// of the lags they deplete instead of biasing the statistic.
func StofferToloi(series *timeseries.Series, lags, nparam int, freq time.Duration) (*StofferToloiResult, error) {
	if lags < 1 {
		return nil, invalidConfigf("lags must be >= 1, got %d", lags)
	}
	if nparam < 0 {
		return nil, invalidConfigf("nparam must be >= 0, got %d", nparam)
	}
	dof := lags - nparam
	if dof < 1 {
		return nil, invalidConfigf("degrees of freedom %d-%d must be >= 1", lags, nparam)
	}
	if freq <= 0 {
		return nil, invalidConfigf("freq must be positive, got %v", freq)
	}
	if err := finiteValues(series.Values); err != nil {
		return nil, err
	}

	values, observed, err := regularize(series, freq)
	if err != nil {
		return nil, err
	}

	grid := len(values)
	if lags >= grid {
		return nil, invalidInputf("grid of length %d too short for %d lags", grid, lags)
	}

	nObs := 0
	mean := 0.0
	for i, ok := range observed {
		if ok {
			nObs++
			mean += values[i]
		}
	}
	if nObs < 10 {
		return nil, invalidInputf("only %d observations on the grid, need at least 10", nObs)
	}
	mean /= float64(nObs)

	// Demeaned values, zero at the missing slots so unobserved pairs drop
	// out of the lag sums.
	e := make([]float64, grid)
	c0 := 0.0
	for i, ok := range observed {
		if ok {
			e[i] = values[i] - mean
			c0 += e[i] * e[i]
		}
	}
	if c0 == 0 {
		return nil, invalidInputf("series has zero variance")
	}
	c0 /= float64(nObs)

	q := 0.0
	var skipped []int
	for k := 1; k <= lags; k++ {
		pairs := 0
		sum := 0.0
		for t := 0; t+k < grid; t++ {
			if observed[t] && observed[t+k] {
				sum += e[t] * e[t+k]
				pairs++
			}
		}
		if pairs == 0 {
			skipped = append(skipped, k)
			continue
		}
		rk := sum / float64(pairs) / c0
		q += float64(pairs) * rk * rk
	}
	if len(skipped) == lags {
		return nil, invalidInputf("no observed pair at any of the %d lags", lags)
	}
	// Weighting each lag by its own pair count keeps the statistic
	// chi-squared calibrated under gaps and reduces exactly to Ljung-Box
	// when the grid is complete.
	q *= float64(nObs+2) / float64(nObs)

	chi2 := distuv.ChiSquared{K: float64(dof)}

	return &StofferToloiResult{
		Statistic:   q,
		PValue:      chi2.Survival(q),
		Lags:        lags,
		DOF:         dof,
		GridSize:    grid,
		Observed:    nObs,
		SkippedLags: skipped,
	}, nil
}

// regularize projects a series onto the regular grid at freq anchored at
// the first timestamp. A grid slot is observed iff a timestamp lands within
// freq/2 of it; two timestamps claiming the same slot is an error.
func regularize(series *timeseries.Series, freq time.Duration) ([]float64, []bool, error) {
	n := series.Len()
	if n < 2 {
		return nil, nil, invalidInputf("series of length %d too short to regularize", n)
	}

	first := series.Timestamps[0]
	span := series.Timestamps[n-1].Sub(first)
	grid := int(math.Round(float64(span)/float64(freq))) + 1
	if grid < n {
		return nil, nil, invalidInputf("grid at freq %v holds %d slots for %d observations", freq, grid, n)
	}

	values := make([]float64, grid)
	observed := make([]bool, grid)
	for i, ts := range series.Timestamps {
		offset := ts.Sub(first)
		slot := int(math.Round(float64(offset) / float64(freq)))
		if slot < 0 || slot >= grid {
			return nil, nil, invalidInputf("timestamp %v falls outside the grid", ts)
		}
		if observed[slot] {
			return nil, nil, invalidInputf("timestamps %v and %v map to the same grid slot", series.Timestamps[i-1], ts)
		}
		values[slot] = series.Values[i]
		observed[slot] = true
	}

	return values, observed, nil
}
