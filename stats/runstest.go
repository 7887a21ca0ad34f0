package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/godiag/timeseries"
)

// Cutoff selects the reference level used to turn a series into a sign
// sequence for the runs test.
type Cutoff int

const (
	// CutoffMedian splits the series at its median (default).
	CutoffMedian Cutoff = iota
	// CutoffMean splits the series at its mean.
	CutoffMean
)

// RunsResult represents the result of a Wald-Wolfowitz runs test.
type RunsResult struct {
	Statistic float64 // normal z-score of the observed run count
	PValue    float64 // two-tailed
	Runs      int     // observed number of runs
	NPositive int
	NNegative int
}

// Runs performs the runs test for randomness. The series is reduced to a
// sign sequence relative to the cutoff level; values exactly on the cutoff
// are discarded. The test makes no distributional assumption and works for
// any sampling, regular or irregular.
func Runs(series *timeseries.Series, cutoff Cutoff) (*RunsResult, error) {
	if series.Len() < 2 {
		return nil, invalidInputf("series of length %d too short for runs test", series.Len())
	}
	if err := finiteValues(series.Values); err != nil {
		return nil, err
	}

	level := series.Median()
	if cutoff == CutoffMean {
		level = series.Mean()
	}

	var signs []bool
	for _, v := range series.Values {
		if v == level {
			continue
		}
		signs = append(signs, v > level)
	}

	n1, n2 := 0, 0
	runs := 0
	for i, pos := range signs {
		if pos {
			n1++
		} else {
			n2++
		}
		if i == 0 || signs[i] != signs[i-1] {
			runs++
		}
	}
	if n1 == 0 || n2 == 0 {
		return nil, invalidInputf("all values on one side of the cutoff, runs test undefined")
	}

	nn := float64(n1 + n2)
	p := float64(n1) * float64(n2)
	mu := 2*p/nn + 1
	sigma2 := 2 * p * (2*p - nn) / (nn * nn * (nn - 1))
	if sigma2 <= 0 {
		return nil, invalidInputf("degenerate run count variance")
	}

	z := (float64(runs) - mu) / math.Sqrt(sigma2)
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	pValue := 2 * normal.Survival(math.Abs(z))

	return &RunsResult{
		Statistic: z,
		PValue:    pValue,
		Runs:      runs,
		NPositive: n1,
		NNegative: n2,
	}, nil
}
