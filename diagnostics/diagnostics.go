// Package diagnostics selects and runs the residual diagnostic tests
// applicable to a series and aggregates their results into a single report.
package diagnostics

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/godiag/stats"
	"github.com/sartorproj/godiag/timeseries"
)

// Check enumerates the diagnostic tests the runner knows about. Dispatch
// over checks is a single switch in evaluate; a check with no branch there
// produces an explicit unknown row, never a silent skip.
type Check int

const (
	CheckLjungBox Check = iota
	CheckBoxPierce
	CheckStofferToloi
	CheckDurbinWatson
	CheckRuns
	CheckShapiroWilk
	CheckDAgostino
)

// allChecks fixes the report order.
var allChecks = []Check{
	CheckLjungBox,
	CheckBoxPierce,
	CheckStofferToloi,
	CheckDurbinWatson,
	CheckRuns,
	CheckShapiroWilk,
	CheckDAgostino,
}

// String returns the display name of the check.
func (c Check) String() string {
	switch c {
	case CheckLjungBox:
		return "Ljung-Box"
	case CheckBoxPierce:
		return "Box-Pierce"
	case CheckStofferToloi:
		return "Stoffer-Toloi"
	case CheckDurbinWatson:
		return "Durbin-Watson"
	case CheckRuns:
		return "Runs test"
	case CheckShapiroWilk:
		return "Shapiro-Wilk"
	case CheckDAgostino:
		return "D'Agostino"
	default:
		return "unknown"
	}
}

// requiresEquidistant reports whether the check is only valid on
// equidistant series.
func (c Check) requiresEquidistant() bool {
	switch c {
	case CheckLjungBox, CheckBoxPierce, CheckDurbinWatson:
		return true
	default:
		return false
	}
}

// Options configures a diagnostics run.
type Options struct {
	// Alpha is the significance level for rejecting H0. Default 0.05.
	Alpha float64
	// Lags is the lag count for the portmanteau tests. Default 15.
	Lags int
	// Nparam is the number of parameters the noise model already
	// estimated; it reduces the portmanteau degrees of freedom. Default 0.
	Nparam int
	// Freq is the expected regular grid frequency for Stoffer-Toloi.
	// When zero, the median sampling interval of the series is used.
	Freq time.Duration
	// Cutoff selects the reference level of the runs test.
	Cutoff stats.Cutoff
}

// DefaultOptions returns the options used when callers have no opinion.
func DefaultOptions() Options {
	return Options{
		Alpha: 0.05,
		Lags:  15,
	}
}

func (o Options) validate() error {
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return invalidConfig("alpha must be in (0,1)")
	}
	if o.Lags < 1 {
		return invalidConfig("lags must be >= 1")
	}
	if o.Nparam < 0 {
		return invalidConfig("nparam must be >= 0")
	}
	if o.Lags-o.Nparam < 1 {
		return invalidConfig("nparam leaves no degrees of freedom")
	}
	if o.Freq < 0 {
		return invalidConfig("freq must be non-negative")
	}
	return nil
}

// invalidConfig wraps stats.ErrInvalidConfiguration so callers can branch
// on the same error kind for direct and orchestrated invocations.
func invalidConfig(msg string) error {
	return fmt.Errorf("%w: %s", stats.ErrInvalidConfiguration, msg)
}

// Runner executes the diagnostic battery. The zero Runner is not usable;
// construct one with NewRunner.
type Runner struct {
	opts   Options
	logger *zap.Logger
}

// NewRunner creates a runner. A nil logger keeps the runner silent.
func NewRunner(opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{opts: opts, logger: logger}
}

// Run executes every applicable check on the series and assembles the
// report. Individual check failures never abort the run: they appear as
// undefined rows with a reason. Only unusable options or an invalid series
// return an error.
//
// Checks are independent and read-only, so they execute concurrently; the
// report keeps the fixed check order regardless of completion order.
func (r *Runner) Run(series *timeseries.Series) (*Report, error) {
	if err := r.opts.validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", stats.ErrInvalidInput, err)
	}

	sampling := series.Sampling()
	freq := r.opts.Freq
	if freq == 0 {
		freq = sampling.MedianInterval
	}

	r.logger.Debug("classified series",
		zap.Int("n", series.Len()),
		zap.Bool("equidistant", sampling.Equidistant),
		zap.Duration("freq", freq),
	)

	results := make([]TestResult, len(allChecks))

	var g errgroup.Group
	for i, check := range allChecks {
		g.Go(func() error {
			results[i] = r.evaluate(check, series, sampling.Equidistant, freq)
			return nil
		})
	}
	_ = g.Wait() // evaluate never returns an error

	for _, res := range results {
		if !res.Defined {
			r.logger.Warn("check not evaluated",
				zap.Stringer("check", res.Check),
				zap.String("reason", res.Reason),
			)
		}
	}

	return &Report{
		Results:     results,
		N:           series.Len(),
		Equidistant: sampling.Equidistant,
		Alpha:       r.opts.Alpha,
		Lags:        r.opts.Lags,
		Nparam:      r.opts.Nparam,
		Freq:        freq,
	}, nil
}

// evaluate runs a single check and converts any failure into an undefined
// row. The switch over checks is exhaustive.
func (r *Runner) evaluate(check Check, series *timeseries.Series, equidistant bool, freq time.Duration) TestResult {
	if check.requiresEquidistant() && !equidistant {
		return undefinedResult(check, "not applicable: requires equidistant sampling")
	}

	switch check {
	case CheckLjungBox:
		result, err := stats.LjungBox(series, r.opts.Lags, r.opts.Nparam)
		if err != nil {
			return undefinedResult(check, err.Error())
		}
		return r.row(check, result.Statistic, result.PValue, "")

	case CheckBoxPierce:
		result, err := stats.BoxPierce(series, r.opts.Lags, r.opts.Nparam)
		if err != nil {
			return undefinedResult(check, err.Error())
		}
		return r.row(check, result.Statistic, result.PValue, "")

	case CheckStofferToloi:
		result, err := stats.StofferToloi(series, r.opts.Lags, r.opts.Nparam, freq)
		if err != nil {
			return undefinedResult(check, err.Error())
		}
		reason := ""
		if len(result.SkippedLags) > 0 {
			reason = "some lags had no observed pair"
		}
		return r.row(check, result.Statistic, result.PValue, reason)

	case CheckDurbinWatson:
		result, err := stats.DurbinWatson(series)
		if err != nil {
			return undefinedResult(check, err.Error())
		}
		// No p-value exists for this statistic; the row stays defined
		// with a NaN p-value and never rejects on its own.
		return r.row(check, result.Statistic, math.NaN(), "d near 2 indicates no lag-1 autocorrelation")

	case CheckRuns:
		result, err := stats.Runs(series, r.opts.Cutoff)
		if err != nil {
			return undefinedResult(check, err.Error())
		}
		return r.row(check, result.Statistic, result.PValue, "")

	case CheckShapiroWilk:
		result, err := stats.ShapiroWilk(series.Values)
		if err != nil {
			return undefinedResult(check, err.Error())
		}
		reason := ""
		if result.LargeSample {
			reason = "p-value approximation degrades for n > 5000"
			r.logger.Warn("Shapiro-Wilk on a large sample",
				zap.Int("n", result.N),
			)
		}
		return r.row(check, result.Statistic, result.PValue, reason)

	case CheckDAgostino:
		result, err := stats.DAgostinoPearson(series.Values)
		if err != nil {
			return undefinedResult(check, err.Error())
		}
		return r.row(check, result.Statistic, result.PValue, "")
	}

	return undefinedResult(check, "unknown check")
}

func (r *Runner) row(check Check, statistic, pValue float64, reason string) TestResult {
	return TestResult{
		Check:      check,
		Name:       check.String(),
		Statistic:  statistic,
		PValue:     pValue,
		RejectNull: !math.IsNaN(pValue) && pValue < r.opts.Alpha,
		Defined:    true,
		Reason:     reason,
	}
}

func undefinedResult(check Check, reason string) TestResult {
	return TestResult{
		Check:     check,
		Name:      check.String(),
		Statistic: math.NaN(),
		PValue:    math.NaN(),
		Reason:    reason,
	}
}
