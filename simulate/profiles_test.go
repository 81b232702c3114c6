package simulate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTophat(t *testing.T) {
	times := []float64{-1.0, 0.0, 0.5, 1.0, 1.5}
	out := Tophat(times, 2.5, 0.0, 1.0)

	require.Equal(t, []float64{0.0, 2.5, 2.5, 2.5, 0.0}, out)
}

func TestNorris(t *testing.T) {
	times := []float64{-1.0, 0.0, 0.1, 1.0, 10.0}

	t.Run("Zero before onset", func(t *testing.T) {
		out := Norris(times, 1.0, 0.0, 0.1, 1.0)
		require.Equal(t, 0.0, out[0])
		require.Equal(t, 0.0, out[1])
		require.Greater(t, out[2], 0.0)
	})

	t.Run("Peaks near the rise timescale", func(t *testing.T) {
		samples := make([]float64, 0, 1000)
		for i := 1; i <= 1000; i++ {
			samples = append(samples, float64(i)*0.01)
		}
		out := Norris(samples, 1.0, 0.0, 0.1, 1.0)

		maxVal := 0.0
		for _, v := range out {
			if v > maxVal {
				maxVal = v
			}
		}
		// The pulse maximum equals the requested amplitude at
		// t = sqrt(rise * decay).
		require.InDelta(t, 1.0, maxVal, 1e-3)
	})

	t.Run("Non-positive decay yields non-finite output", func(t *testing.T) {
		out := Norris([]float64{1.0}, 1.0, 0.0, 0.1, 0.0)
		require.False(t, !math.IsInf(out[0], 0) && !math.IsNaN(out[0]))
	})
}

func TestGaussian(t *testing.T) {
	out := Gaussian([]float64{-1.0, 0.0, 1.0}, 3.0, 0.0, 1.0)

	require.Equal(t, 3.0, out[1])
	require.InDelta(t, 3.0*math.Exp(-0.5), out[0], 1e-12)
	require.Equal(t, out[0], out[2])
}

func TestTriangular(t *testing.T) {
	times := []float64{-0.5, 0.0, 0.5, 1.0, 1.5, 2.0, 2.5}
	out := Triangular(times, 2.0, 0.0, 1.0, 2.0)

	require.Equal(t, []float64{0.0, 0.0, 1.0, 2.0, 1.0, 0.0, 0.0}, out)
}

func TestBackgroundProfiles(t *testing.T) {
	times := []float64{0.0, 1.0, 2.0}

	t.Run("Constant", func(t *testing.T) {
		require.Equal(t, []float64{5.0, 5.0, 5.0}, Constant(times, 5.0))
	})

	t.Run("Linear", func(t *testing.T) {
		require.Equal(t, []float64{1.0, 3.0, 5.0}, Linear(times, 1.0, 2.0))
	})

	t.Run("Quadratic", func(t *testing.T) {
		require.Equal(t, []float64{1.0, 6.0, 17.0}, Quadratic(times, 1.0, 2.0, 3.0))
	})
}
