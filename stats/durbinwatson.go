package stats

import (
	"github.com/sartorproj/godiag/timeseries"
)

// DurbinWatsonResult represents the result of a Durbin-Watson test.
//
// The statistic tests lag-1 autocorrelation only and has no closed-form
// p-value: d near 2 indicates no autocorrelation, d toward 0 positive
// autocorrelation, d toward 4 negative autocorrelation. The diagnostics
// report carries a NaN p-value for this test.
type DurbinWatsonResult struct {
	Statistic float64
}

// DurbinWatson calculates the Durbin-Watson statistic for first-order
// autocorrelation in a residual series. The series must be equidistant.
func DurbinWatson(series *timeseries.Series) (*DurbinWatsonResult, error) {
	n := series.Len()
	if n < 2 {
		return nil, invalidInputf("series of length %d too short for Durbin-Watson", n)
	}
	if !series.IsEquidistant() {
		return nil, samplingMismatchf("Durbin-Watson requires equidistant sampling")
	}
	if err := finiteValues(series.Values); err != nil {
		return nil, err
	}

	numerator := 0.0
	denominator := 0.0

	for i := 1; i < n; i++ {
		diff := series.Values[i] - series.Values[i-1]
		numerator += diff * diff
	}
	for _, r := range series.Values {
		denominator += r * r
	}

	if denominator == 0 {
		return nil, invalidInputf("series is identically zero")
	}

	return &DurbinWatsonResult{
		Statistic: numerator / denominator,
	}, nil
}
