package stats

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sartorproj/godiag/timeseries"
)

// whiteNoise generates a seeded standard normal series on a daily grid.
func whiteNoise(seed uint64, n int) *timeseries.Series {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.NormFloat64()
	}
	return timeseries.New(values)
}

// ar1 generates a seeded AR(1) series with coefficient phi.
func ar1(seed uint64, n int, phi float64) *timeseries.Series {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + rng.NormFloat64()
	}
	return timeseries.New(values)
}

// gappy removes roughly the given fraction of observations from a daily
// white noise series, deterministically.
func gappy(seed uint64, n int, fraction float64) *timeseries.Series {
	full := whiteNoise(seed, n)
	var ts []time.Time
	var values []float64
	for i := 0; i < n; i++ {
		if float64((i*7919)%1000)/1000 < fraction {
			continue
		}
		ts = append(ts, full.Timestamps[i])
		values = append(values, full.Values[i])
	}
	s, err := timeseries.NewWithTimestamps(ts, values)
	if err != nil {
		panic(err)
	}
	return s
}

func TestACFLagZero(t *testing.T) {
	series := whiteNoise(42, 200)
	acf, err := ACF(series, 20)
	require.NoError(t, err)
	require.Len(t, acf, 21)
	require.Equal(t, 1.0, acf[0])
}

func TestACFAR1Decay(t *testing.T) {
	series := ar1(7, 2000, 0.8)
	acf, err := ACF(series, 5)
	require.NoError(t, err)

	// Lag-1 autocorrelation of AR(1) should be near phi.
	require.InDelta(t, 0.8, acf[1], 0.1)
	// And the ACF should decay geometrically.
	require.Greater(t, math.Abs(acf[1]), math.Abs(acf[3]))
}

func TestACFErrors(t *testing.T) {
	t.Run("zero variance", func(t *testing.T) {
		series := timeseries.New([]float64{3, 3, 3, 3, 3, 3, 3, 3, 3, 3})
		_, err := ACF(series, 3)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad lag count", func(t *testing.T) {
		_, err := ACF(whiteNoise(1, 50), 0)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ACF(whiteNoise(1, 10), 10)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("irregular sampling", func(t *testing.T) {
		series := gappy(1, 100, 0.3)
		_, err := ACF(series, 10)
		require.ErrorIs(t, err, ErrSamplingMismatch)
	})
}

func TestACFIdempotent(t *testing.T) {
	series := whiteNoise(99, 300)
	first, err := ACF(series, 15)
	require.NoError(t, err)
	second, err := ACF(series, 15)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPACFAR1(t *testing.T) {
	series := ar1(11, 2000, 0.7)
	pacf, err := PACF(series, 10)
	require.NoError(t, err)

	require.Equal(t, 1.0, pacf[0])
	// For AR(1) only lag 1 should carry structure.
	require.InDelta(t, 0.7, pacf[1], 0.1)
	for k := 2; k <= 10; k++ {
		require.Less(t, math.Abs(pacf[k]), 0.1, "pacf lag %d", k)
	}
}

func TestACFWithConfidence(t *testing.T) {
	n := 100
	series := whiteNoise(5, n)
	result, err := ACFWithConfidence(series, 20, 0.05)
	require.NoError(t, err)
	require.Len(t, result.Points, 21)

	// Per-lag bound is z/sqrt(n-k) and therefore widens with the lag.
	z := 1.959963984540054
	require.InDelta(t, z/math.Sqrt(float64(n)), result.Points[0].ConfBound, 1e-9)
	require.InDelta(t, z/math.Sqrt(float64(n-20)), result.Points[20].ConfBound, 1e-9)
	require.Greater(t, result.Points[20].ConfBound, result.Points[1].ConfBound)

	require.Equal(t, n, result.Points[0].Pairs)
	require.Equal(t, n-20, result.Points[20].Pairs)
}

func TestACFWithConfidenceBadAlpha(t *testing.T) {
	_, err := ACFWithConfidence(whiteNoise(5, 100), 10, 1.5)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestACFIrregular(t *testing.T) {
	series := gappy(3, 400, 0.3)
	day := 24 * time.Hour

	result, err := ACFIrregular(series, 30*day, day, 0.05)
	require.NoError(t, err)

	// Lag 0 is exactly 1 with all observations contributing.
	require.True(t, result.Points[0].Defined)
	require.Equal(t, 1.0, result.Points[0].Value)
	require.Equal(t, series.Len(), result.Points[0].Pairs)

	for _, p := range result.Points[1:] {
		if !p.Defined {
			continue
		}
		require.False(t, math.IsNaN(p.Value), "lag %v", p.Lag)
		require.Greater(t, p.ConfBound, 0.0)
		require.Greater(t, p.Pairs, 0)
	}
}

func TestACFIrregularEmptyBins(t *testing.T) {
	// Observations every second day: odd-day bins receive no pairs.
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 50
	ts := make([]time.Time, n)
	values := make([]float64, n)
	rng := rand.New(rand.NewPCG(17, 18))
	for i := range ts {
		ts[i] = base.AddDate(0, 0, 2*i)
		values[i] = rng.NormFloat64()
	}
	series, err := timeseries.NewWithTimestamps(ts, values)
	require.NoError(t, err)

	day := 24 * time.Hour
	result, err := ACFIrregular(series, 6*day, day, 0.05)
	require.NoError(t, err)
	require.Len(t, result.Points, 7)

	for _, p := range result.Points {
		if p.Step%2 == 1 {
			require.False(t, p.Defined, "odd lag %d must be undefined", p.Step)
			require.True(t, math.IsNaN(p.Value))
			require.Zero(t, p.Pairs)
		} else {
			require.True(t, p.Defined, "even lag %d must be defined", p.Step)
		}
	}
}

func TestACFIrregularDefaultBinWidth(t *testing.T) {
	series := gappy(9, 200, 0.2)
	day := 24 * time.Hour

	// binWidth 0 defaults to half the median sampling interval (12h for a
	// mostly daily series), doubling the bin count over explicit 1-day bins.
	result, err := ACFIrregular(series, 10*day, 0, 0.05)
	require.NoError(t, err)
	require.Len(t, result.Points, 21)
}

func TestACFIrregularErrors(t *testing.T) {
	series := gappy(9, 100, 0.2)
	day := 24 * time.Hour

	t.Run("bad span", func(t *testing.T) {
		_, err := ACFIrregular(series, 0, day, 0.05)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("bad alpha", func(t *testing.T) {
		_, err := ACFIrregular(series, 10*day, day, 0)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("zero variance", func(t *testing.T) {
		flat := timeseries.New(make([]float64, 20))
		_, err := ACFIrregular(flat, 10*day, day, 0.05)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSignificantLags(t *testing.T) {
	// A strongly autocorrelated series must flag lag 1.
	series := ar1(21, 1000, 0.9)
	result, err := ACFWithConfidence(series, 10, 0.05)
	require.NoError(t, err)

	significant := SignificantLags(result)
	require.Contains(t, significant, 1)
}
