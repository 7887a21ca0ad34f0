// Package stats provides statistical tests and analysis functions for
// residual time series.
//
// This package includes autocorrelation estimators for both equidistant and
// irregularly sampled series, portmanteau tests for residual
// autocorrelation, a distribution-free randomness test, and normality
// tests. Each test is a stateless function from a series (or raw values)
// and its parameters to a dedicated result struct; errors distinguish
// invalid input, invalid configuration, and sampling mismatches via
// errors.Is.
//
// # Autocorrelation
//
// Estimate the autocorrelation function:
//
//	// Equidistant series
//	acf, err := stats.ACF(series, 20)
//	res, err := stats.ACFWithConfidence(series, 20, 0.05)
//
//	// Irregularly sampled series, lags binned by time separation
//	res, err := stats.ACFIrregular(series, 365*24*time.Hour, 0, 0.05)
//
//	// Lags exceeding their confidence bound
//	significant := stats.SignificantLags(res)
//
// # Autocorrelation Tests
//
// Test residuals for remaining autocorrelation:
//
//	// Ljung-Box, with nparam fitted noise parameters
//	lb, err := stats.LjungBox(series, 15, nparam)
//	if err == nil && lb.PValue < 0.05 {
//	    // evidence of autocorrelation
//	}
//
//	// Box-Pierce, the simpler variant
//	bp, err := stats.BoxPierce(series, 15, nparam)
//
//	// Durbin-Watson (statistic only, no p-value)
//	dw, err := stats.DurbinWatson(series)
//
//	// Stoffer-Toloi for series with missing observations
//	st, err := stats.StofferToloi(series, 15, nparam, 24*time.Hour)
//
//	// Runs test, distribution free, any sampling
//	rt, err := stats.Runs(series, stats.CutoffMedian)
//
// # Normality Tests
//
// Test the residual values for normality, ignoring time order:
//
//	sw, err := stats.ShapiroWilk(series.Values)
//	dp, err := stats.DAgostinoPearson(series.Values)
//
// Distributional tail probabilities are delegated to
// gonum.org/v1/gonum/stat/distuv.
package stats
