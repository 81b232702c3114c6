package primitives

import (
	"testing"

	"github.com/spexlab/spex/errs"
	"github.com/stretchr/testify/require"
)

// testHistogram builds the 6-bin, 8-channel histogram used across the
// integration tests. The first three bins overlap the (0, 0.1) window and
// carry a combined exposure of 0.25459924.
func testHistogram(t *testing.T) *TimeEnergyBins {
	t.Helper()

	counts := [][]int64{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{2, 3, 4, 5, 6, 7, 8, 9},
		{3, 4, 5, 6, 7, 8, 9, 10},
		{10, 10, 10, 10, 10, 10, 10, 10},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	tstart := []float64{0.0, 0.0039, 0.064, 0.32, 0.587, 0.854}
	tstop := []float64{0.0039, 0.064, 0.32, 0.587, 0.854, 1.121}
	exposure := []float64{0.0038, 0.0588, 0.19199924, 0.26, 0.26, 0.26}

	bins, err := NewTimeEnergyBins(counts, tstart, tstop, exposure, testLowEdges, testHighEdges)
	require.NoError(t, err)

	return bins
}

func TestNewTimeEnergyBins(t *testing.T) {
	t.Run("Valid histogram", func(t *testing.T) {
		bins := testHistogram(t)
		require.Equal(t, 6, bins.NumTimes())
		require.Equal(t, 8, bins.NumChans())
		require.Equal(t, Range{Lo: 0.0, Hi: 1.121}, bins.TimeRange())
	})

	t.Run("Row length mismatch", func(t *testing.T) {
		_, err := NewTimeEnergyBins(
			[][]int64{{1, 2}},
			[]float64{0}, []float64{1}, []float64{1},
			testLowEdges, testHighEdges)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("Inverted time bin", func(t *testing.T) {
		_, err := NewTimeEnergyBins(
			[][]int64{{1, 2, 3, 4, 5, 6, 7, 8}},
			[]float64{1}, []float64{0}, []float64{1},
			testLowEdges, testHighEdges)
		require.ErrorIs(t, err, errs.ErrInvertedInterval)
	})

	t.Run("Negative exposure", func(t *testing.T) {
		_, err := NewTimeEnergyBins(
			[][]int64{{1, 2, 3, 4, 5, 6, 7, 8}},
			[]float64{0}, []float64{1}, []float64{-1},
			testLowEdges, testHighEdges)
		require.ErrorIs(t, err, errs.ErrNegativeExposure)
	})

	t.Run("Negative counts", func(t *testing.T) {
		_, err := NewTimeEnergyBins(
			[][]int64{{1, 2, 3, 4, 5, 6, 7, -8}},
			[]float64{0}, []float64{1}, []float64{1},
			testLowEdges, testHighEdges)
		require.ErrorIs(t, err, errs.ErrNegativeCounts)
	})
}

func TestTimeEnergyBins_Integrate(t *testing.T) {
	bins := testHistogram(t)

	t.Run("Window sums overlapping rows", func(t *testing.T) {
		spectrum, err := bins.Integrate(Range{Lo: 0.0, Hi: 0.1})
		require.NoError(t, err)
		require.Equal(t, 8, spectrum.NumChans())
		// Rows 0-2 overlap (0, 0.1); row 2 spans (0.064, 0.32).
		require.Equal(t, []int64{6, 9, 12, 15, 18, 21, 24, 27}, spectrum.Counts())
		require.InDelta(t, 0.25459924, spectrum.Exposure(), 1e-12)
	})

	t.Run("No ranges integrates everything", func(t *testing.T) {
		spectrum, err := bins.Integrate()
		require.NoError(t, err)
		require.Equal(t, []int64{17, 20, 23, 26, 29, 32, 35, 38}, spectrum.Counts())
	})

	t.Run("Disjoint ranges accumulate", func(t *testing.T) {
		spectrum, err := bins.Integrate(
			Range{Lo: 0.0, Hi: 0.002},
			Range{Lo: 0.6, Hi: 0.7},
		)
		require.NoError(t, err)
		// Row 0 plus row 4.
		require.Equal(t, []int64{2, 3, 4, 5, 6, 7, 8, 9}, spectrum.Counts())
		require.InDelta(t, 0.0038+0.26, spectrum.Exposure(), 1e-12)
	})

	t.Run("Empty selection", func(t *testing.T) {
		_, err := bins.Integrate(Range{Lo: 50.0, Hi: 60.0})
		require.ErrorIs(t, err, errs.ErrEmptySelection)
	})
}

func TestTimeEnergyBins_ChannelRates(t *testing.T) {
	bins := testHistogram(t)

	rates := bins.ChannelRates(0)
	require.Len(t, rates, 6)
	require.InDelta(t, 1.0/0.0038, rates[0], 1e-9)
	require.InDelta(t, 10.0/0.26, rates[3], 1e-9)
	require.Equal(t, 0.0, rates[5])
}

func TestTimeEnergyBins_BinCenters(t *testing.T) {
	bins := testHistogram(t)

	centers := bins.BinCenters()
	require.Len(t, centers, 6)
	require.InDelta(t, 0.00195, centers[0], 1e-12)
	require.InDelta(t, (0.854+1.121)/2, centers[5], 1e-12)
}
