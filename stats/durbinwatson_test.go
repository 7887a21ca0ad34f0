package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sartorproj/godiag/timeseries"
)

func TestDurbinWatsonWhiteNoise(t *testing.T) {
	// On white noise d concentrates around 2; with n=2000 the standard
	// deviation is about 0.045, so [1.8, 2.2] is a very safe band.
	result, err := DurbinWatson(whiteNoise(12, 2000))
	require.NoError(t, err)
	require.Greater(t, result.Statistic, 1.8)
	require.Less(t, result.Statistic, 2.2)
}

func TestDurbinWatsonPatterns(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		check  func(t *testing.T, d float64)
	}{
		{
			name:   "alternating signs push d toward 4",
			values: []float64{1, -1, 1, -1, 1, -1, 1, -1},
			check: func(t *testing.T, d float64) {
				require.Greater(t, d, 3.0)
			},
		},
		{
			name:   "persistent signs push d toward 0",
			values: []float64{1, 1, 1, 1, -1, -1, -1, -1},
			check: func(t *testing.T, d float64) {
				require.Less(t, d, 1.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DurbinWatson(timeseries.New(tt.values))
			require.NoError(t, err)
			tt.check(t, result.Statistic)
		})
	}
}

func TestDurbinWatsonErrors(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := DurbinWatson(timeseries.New([]float64{1}))
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("identically zero", func(t *testing.T) {
		_, err := DurbinWatson(timeseries.New(make([]float64, 20)))
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("irregular sampling", func(t *testing.T) {
		_, err := DurbinWatson(gappy(5, 100, 0.3))
		require.ErrorIs(t, err, ErrSamplingMismatch)
	})
}
