// Package stats provides statistical tests and functions for residual
// diagnostics of time series models.
package stats

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/godiag/timeseries"
)

// ACF calculates the sample autocorrelation function for an equidistant
// series. Returns ACF values for lags 0 to maxLag; the value at lag 0 is
// exactly 1. The series must be equidistant; use ACFIrregular otherwise.
func ACF(series *timeseries.Series, maxLag int) ([]float64, error) {
	n := series.Len()
	if maxLag < 1 {
		return nil, invalidConfigf("maxLag must be >= 1, got %d", maxLag)
	}
	if maxLag >= n {
		return nil, invalidInputf("series of length %d too short for %d lags", n, maxLag)
	}
	if !series.IsEquidistant() {
		return nil, samplingMismatchf("ACF requires equidistant sampling")
	}
	if err := finiteValues(series.Values); err != nil {
		return nil, err
	}

	e := series.Demeaned()
	ss := 0.0
	for _, v := range e {
		ss += v * v
	}
	if ss == 0 {
		return nil, invalidInputf("series has zero variance")
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += e[i] * e[i-k]
		}
		acf[k] = sum / ss
	}

	return acf, nil
}

// PACF calculates the partial autocorrelation function using the
// Durbin-Levinson recursion. Returns PACF values for lags 0 to maxLag, with
// the value at lag 0 fixed at 1.
func PACF(series *timeseries.Series, maxLag int) ([]float64, error) {
	acf, err := ACF(series, maxLag)
	if err != nil {
		return nil, err
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1.0

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}

	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}

		if den == 0 {
			pacf[k] = 0
			continue
		}

		phi[k][k] = num / den
		pacf[k] = phi[k][k]

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}

	return pacf, nil
}

// ACFPoint is the autocorrelation estimate at a single lag.
type ACFPoint struct {
	Lag       time.Duration // time separation of the lag (bin center)
	Step      int           // integer lag offset or bin index
	Value     float64       // autocorrelation, NaN when Defined is false
	ConfBound float64       // ±bound of the alpha confidence band
	Pairs     int           // observation pairs contributing to this lag
	Defined   bool          // false for empty bins and zero-variance input
}

// ACFResult holds the estimated autocorrelation function.
type ACFResult struct {
	Points []ACFPoint
	Alpha  float64
}

// ACFWithConfidence calculates the equidistant ACF with per-lag confidence
// bounds. The bound at lag k is z(1-alpha/2)/sqrt(n-k), widening as fewer
// pairs contribute.
func ACFWithConfidence(series *timeseries.Series, maxLag int, alpha float64) (*ACFResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	acf, err := ACF(series, maxLag)
	if err != nil {
		return nil, err
	}

	n := series.Len()
	step := series.Sampling().MedianInterval
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)

	points := make([]ACFPoint, len(acf))
	for k, v := range acf {
		pairs := n - k
		points[k] = ACFPoint{
			Lag:       time.Duration(k) * step,
			Step:      k,
			Value:     v,
			ConfBound: z / math.Sqrt(float64(pairs)),
			Pairs:     pairs,
			Defined:   true,
		}
	}

	return &ACFResult{Points: points, Alpha: alpha}, nil
}

// ACFIrregular estimates the autocorrelation function of an irregularly
// sampled series by binning pairwise time differences. Every observation
// pair contributes to the bin whose center is closest to its separation;
// the autocorrelation of a bin is the mean of the demeaned pairwise
// products divided by the series variance. Bins that receive no pairs are
// reported as undefined, not as zero.
//
// binWidth defaults to half the median sampling interval when zero. The
// computation is O(n^2) in the series length.
func ACFIrregular(series *timeseries.Series, maxSpan, binWidth time.Duration, alpha float64) (*ACFResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	n := series.Len()
	if n < 2 {
		return nil, invalidInputf("series of length %d too short for autocorrelation", n)
	}
	if maxSpan <= 0 {
		return nil, invalidConfigf("maxSpan must be positive, got %v", maxSpan)
	}
	if binWidth < 0 {
		return nil, invalidConfigf("binWidth must be non-negative, got %v", binWidth)
	}
	if binWidth == 0 {
		binWidth = series.Sampling().MedianInterval / 2
		if binWidth <= 0 {
			return nil, invalidInputf("cannot derive a bin width from the sampling interval")
		}
	}
	if err := finiteValues(series.Values); err != nil {
		return nil, err
	}

	e := series.Demeaned()
	ss := 0.0
	for _, v := range e {
		ss += v * v
	}
	if ss == 0 {
		return nil, invalidInputf("series has zero variance")
	}
	variance := ss / float64(n)

	nbins := int(math.Round(float64(maxSpan) / float64(binWidth)))
	if nbins < 1 {
		return nil, invalidConfigf("maxSpan %v shorter than bin width %v", maxSpan, binWidth)
	}

	sums := make([]float64, nbins+1)
	counts := make([]int, nbins+1)

	// Lag 0 is the series with itself.
	sums[0] = ss
	counts[0] = n

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dt := series.Timestamps[j].Sub(series.Timestamps[i])
			bin := int(math.Round(float64(dt) / float64(binWidth)))
			if bin < 1 || bin > nbins {
				continue
			}
			sums[bin] += e[i] * e[j]
			counts[bin]++
		}
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)

	points := make([]ACFPoint, nbins+1)
	for b := 0; b <= nbins; b++ {
		p := ACFPoint{
			Lag:   time.Duration(b) * binWidth,
			Step:  b,
			Pairs: counts[b],
		}
		if counts[b] == 0 {
			p.Value = math.NaN()
			p.ConfBound = math.NaN()
		} else {
			p.Value = sums[b] / float64(counts[b]) / variance
			p.ConfBound = z / math.Sqrt(float64(counts[b]))
			p.Defined = true
		}
		points[b] = p
	}

	return &ACFResult{Points: points, Alpha: alpha}, nil
}

// SignificantLags returns the steps of the defined lags whose
// autocorrelation exceeds its confidence bound, skipping lag 0.
func SignificantLags(result *ACFResult) []int {
	var significant []int
	for _, p := range result.Points[1:] {
		if p.Defined && math.Abs(p.Value) > p.ConfBound {
			significant = append(significant, p.Step)
		}
	}
	return significant
}
