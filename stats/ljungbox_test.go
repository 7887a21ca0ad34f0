package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLjungBoxWhiteNoiseRejectionRate(t *testing.T) {
	// On true white noise the test should reject H0 at roughly the alpha
	// rate. Aggregated over many seeds so a single unlucky draw cannot
	// fail the test.
	trials := 200
	rejections := 0
	for seed := uint64(0); seed < uint64(trials); seed++ {
		result, err := LjungBox(whiteNoise(seed, 250), 15, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, result.PValue, 0.0)
		require.LessOrEqual(t, result.PValue, 1.0)
		if result.PValue < 0.05 {
			rejections++
		}
	}
	rate := float64(rejections) / float64(trials)
	require.Less(t, rate, 0.15, "rejection rate %v far above alpha", rate)
}

func TestLjungBoxDetectsAutocorrelation(t *testing.T) {
	result, err := LjungBox(ar1(4, 500, 0.9), 15, 0)
	require.NoError(t, err)
	require.Less(t, result.PValue, 0.001)
}

func TestLjungBoxDegreesOfFreedom(t *testing.T) {
	series := whiteNoise(8, 300)

	result, err := LjungBox(series, 15, 3)
	require.NoError(t, err)
	require.Equal(t, 12, result.DOF)
	require.Equal(t, 15, result.Lags)

	_, err = LjungBox(series, 15, 15)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = LjungBox(series, 15, 20)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLjungBoxErrors(t *testing.T) {
	t.Run("lags below one", func(t *testing.T) {
		_, err := LjungBox(whiteNoise(1, 100), 0, 0)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("negative nparam", func(t *testing.T) {
		_, err := LjungBox(whiteNoise(1, 100), 10, -1)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := LjungBox(whiteNoise(1, 8), 3, 0)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("irregular sampling", func(t *testing.T) {
		_, err := LjungBox(gappy(2, 200, 0.3), 10, 0)
		require.ErrorIs(t, err, ErrSamplingMismatch)
	})
}

func TestLjungBoxIdempotent(t *testing.T) {
	series := whiteNoise(33, 400)
	first, err := LjungBox(series, 12, 2)
	require.NoError(t, err)
	second, err := LjungBox(series, 12, 2)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBoxPierce(t *testing.T) {
	series := whiteNoise(14, 300)

	result, err := BoxPierce(series, 10, 2)
	require.NoError(t, err)
	require.Equal(t, 8, result.DOF)
	require.GreaterOrEqual(t, result.PValue, 0.0)
	require.LessOrEqual(t, result.PValue, 1.0)

	// Box-Pierce Q is bounded above by Ljung-Box Q on the same input.
	lb, err := LjungBox(series, 10, 2)
	require.NoError(t, err)
	require.Less(t, result.Statistic, lb.Statistic)
}

func TestBoxPierceDetectsAutocorrelation(t *testing.T) {
	result, err := BoxPierce(ar1(6, 500, 0.9), 10, 0)
	require.NoError(t, err)
	require.Less(t, result.PValue, 0.001)
}
