// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing residual time
// series, along with sampling classification used by the diagnostics
// runner to decide which tests apply.
//
// # Creating a Series
//
// Create a series from a slice of residuals (synthetic daily grid):
//
//	values := []float64{0.1, -0.2, 0.05, 0.3, -0.1}
//	series := timeseries.New(values)
//
// Or with explicit observation times:
//
//	series, err := timeseries.NewWithTimestamps(timestamps, values)
//
// NewWithTimestamps validates that timestamps are strictly increasing and
// that all values are finite.
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	mean := series.Mean()
//	std := series.Std()
//	median := series.Median()
//
// # Sampling Classification
//
// Determine whether the series is equidistant:
//
//	desc := series.Sampling()
//	if desc.Equidistant {
//	    // Ljung-Box and Durbin-Watson apply directly
//	} else {
//	    // use Stoffer-Toloi and the runs test instead
//	}
//
// The descriptor also exposes the inter-observation deltas and their
// median, which the irregular-lag autocorrelation estimator uses as its
// default bin width.
package timeseries
