package stats

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds returned by the diagnostic tests. Callers branch on them with
// errors.Is; the diagnostics runner converts them into undefined report rows
// instead of aborting the batch.
var (
	// ErrInvalidInput marks degenerate series: too short for the requested
	// lags, zero variance, all values on one side of the cutoff, or
	// non-finite values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration marks unusable parameters: non-positive lag
	// counts, alpha outside (0,1), or degrees of freedom exhausted by the
	// nparam adjustment.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSamplingMismatch marks a test that requires equidistant sampling
	// invoked on an irregular series.
	ErrSamplingMismatch = errors.New("sampling mismatch")
)

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func samplingMismatchf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSamplingMismatch, fmt.Sprintf(format, args...))
}

// validateAlpha checks a significance level.
func validateAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 {
		return invalidConfigf("alpha must be in (0,1), got %v", alpha)
	}
	return nil
}

// finiteValues rejects series carrying NaN or infinite observations. Every
// series-based test guards with this so a poisoned series surfaces as
// InvalidInput instead of propagating NaN into statistics.
func finiteValues(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidInputf("non-finite value %v at index %d", v, i)
		}
	}
	return nil
}
