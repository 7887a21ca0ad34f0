package stats

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/godiag/timeseries"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // degrees of freedom after the nparam adjustment
}

// LjungBox performs the Ljung-Box portmanteau test for autocorrelation in a
// residual series. The null hypothesis is that there is no autocorrelation
// up to the requested lag. nparam is the number of parameters already
// estimated by the noise model; it reduces the degrees of freedom of the
// chi-squared reference distribution.
//
// The series must be equidistant; use StofferToloi for series with missing
// observations. The test is known to be unreliable when the series is short
// relative to the lag count; a minimum of 10 observations is enforced, but
// callers should prefer n well above the lag count.
func LjungBox(series *timeseries.Series, lags, nparam int) (*LjungBoxResult, error) {
	n := series.Len()
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
	if n < 10 || lags >= n {
		return nil, invalidInputf("series of length %d too short for %d lags", n, lags)
	}

	acf, err := ACF(series, lags)
	if err != nil {
		return nil, err
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	chi2 := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi2.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// BoxPierceResult represents the result of a Box-Pierce test.
type BoxPierceResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// BoxPierce performs the Box-Pierce test for autocorrelation. It is the
// simpler predecessor of Ljung-Box (Q = n * sum of squared
// autocorrelations) and shares its preconditions.
func BoxPierce(series *timeseries.Series, lags, nparam int) (*BoxPierceResult, error) {
	n := series.Len()
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
	if n < 10 || lags >= n {
		return nil, invalidInputf("series of length %d too short for %d lags", n, lags)
	}

	acf, err := ACF(series, lags)
	if err != nil {
		return nil, err
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k]
	}
	q *= float64(n)

	chi2 := distuv.ChiSquared{K: float64(dof)}

	return &BoxPierceResult{
		Statistic: q,
		PValue:    chi2.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}
