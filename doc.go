// Package godiag provides residual diagnostics for time series models.
//
// GoDiag is a Go library for checking whether the residual (noise) series of
// a fitted time series model behaves like white noise: independent, normally
// distributed, and homoscedastic. It supports both equidistant series and
// irregularly sampled series with gaps, which are common in environmental
// monitoring data such as groundwater head observations.
//
// # Features
//
//   - Autocorrelation estimation for regular and irregularly sampled series
//   - Ljung-Box and Box-Pierce tests for residual autocorrelation
//   - Stoffer-Toloi test for series with missing observations
//   - Durbin-Watson statistic for first-order autocorrelation
//   - Runs test for randomness (distribution free)
//   - Shapiro-Wilk and D'Agostino-Pearson normality tests
//   - A diagnostics runner that selects the applicable tests for a series
//     and aggregates the results into a single report
//
// # Quick Start
//
// Run the full diagnostic battery on a residual series:
//
//	series := timeseries.New(residuals)
//	runner := diagnostics.NewRunner(diagnostics.DefaultOptions(), nil)
//	report, _ := runner.Run(series)
//	fmt.Println(report)
//
// Or call an individual test directly:
//
//	result, err := stats.LjungBox(series, 15, 2)
//	if err == nil && result.PValue < 0.05 {
//	    // evidence of residual autocorrelation
//	}
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: time series data structure and sampling classification
//   - stats: individual statistical tests and autocorrelation estimators
//   - diagnostics: test selection, dispatch, and report assembly
//
// # References
//
//   - Ljung, G.M., & Box, G.E.P. (1978). On a measure of lack of fit in
//     time series models. Biometrika 65(2).
//   - Stoffer, D.S., & Toloi, C.M.C. (1992). A note on the Ljung-Box-Pierce
//     portmanteau statistic with missing data. Statistics & Probability
//     Letters 13(5).
//   - Royston, P. (1995). Remark AS R94: A remark on algorithm AS 181: The
//     W-test for normality. Applied Statistics 44(4).
//   - D'Agostino, R., & Pearson, E.S. (1973). Tests for departure from
//     normality. Biometrika 60(3).
package godiag
