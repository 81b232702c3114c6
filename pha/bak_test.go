package pha

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/header"
	"github.com/spexlab/spex/primitives"
	"github.com/spexlab/spex/rebin"
	"github.com/stretchr/testify/require"
)

func fixtureBackground(t *testing.T) *primitives.BackgroundSpectrum {
	t.Helper()

	s, err := primitives.NewBackgroundSpectrum(
		[]float64{1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0},
		[]float64{0.1, 0.1, 0.2, 0.2, 0.3, 0.3, 0.4, 0.4},
		fixtureLowEdges, fixtureHighEdges, fixtureExposure)
	require.NoError(t, err)

	return s
}

func fixtureBak(t *testing.T) *Bak {
	t.Helper()

	b, err := BakFromData(fixtureBackground(t),
		WithTriggerTime(fixtureTrigger),
		WithGti(fixtureGti(t)))
	require.NoError(t, err)

	return b
}

func TestBakFromData(t *testing.T) {
	b := fixtureBak(t)

	require.Equal(t, 8, b.NumChans())
	require.Equal(t, []float64{1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0}, b.Rates())
	require.InDelta(t, fixtureExposure, b.Exposure(), 1e-12)
	require.Equal(t, primitives.Range{Lo: fixtureGtiStart, Hi: fixtureGtiStop}, b.TimeRange())

	t.Run("Nil data", func(t *testing.T) {
		_, err := BakFromData(nil)
		require.ErrorIs(t, err, errs.ErrNilSpectrumData)
	})

	t.Run("Short mask", func(t *testing.T) {
		_, err := BakFromData(fixtureBackground(t), WithChannelMask([]bool{true}))
		require.ErrorIs(t, err, errs.ErrChannelMaskLength)
	})
}

func TestBak_RebinEnergy(t *testing.T) {
	b := fixtureBak(t)

	rebinned, err := b.RebinEnergy(rebin.ByFactor(2))
	require.NoError(t, err)

	require.Equal(t, 4, rebinned.NumChans())
	require.Equal(t, []float64{3.5, 5.5, 7.5, 9.5}, rebinned.Rates())

	// Uncertainties combine in quadrature per merged group.
	uncert := rebinned.Uncertainty()
	require.InDelta(t, math.Sqrt(0.1*0.1+0.1*0.1), uncert[0], 1e-12)
	require.InDelta(t, math.Sqrt(0.4*0.4+0.4*0.4), uncert[3], 1e-12)

	require.Equal(t, int64(4), rebinned.Headers().Block(header.BlockSpectrum).Int(header.KeyDetChans))
	require.Equal(t, 8, b.NumChans())
}

func TestBak_SliceEnergy(t *testing.T) {
	b := fixtureBak(t)

	sliced, err := b.SliceEnergy(primitives.Range{Lo: 25.0, Hi: 750.0})
	require.NoError(t, err)

	require.Equal(t, 6, sliced.NumChans())
	require.Equal(t, []float64{2.0, 2.5, 3.0, 3.5, 4.0, 4.5}, sliced.Rates())
	require.Equal(t, primitives.Range{Lo: 11.464164, Hi: 997.2431}, sliced.EnergyRange())
}

func TestBak_WriteOpen(t *testing.T) {
	dir := t.TempDir()
	b := fixtureBak(t)

	t.Run("Unnamed record fails", func(t *testing.T) {
		err := b.Write(dir)
		require.ErrorIs(t, err, errs.ErrRecordUnnamed)
	})

	t.Run("Round trip", func(t *testing.T) {
		require.NoError(t, b.Write(dir, WithFilename("fixture.bak")))

		reopened, err := OpenBak(filepath.Join(dir, "fixture.bak"))
		require.NoError(t, err)

		require.Equal(t, "fixture.bak", reopened.Filename())
		require.Equal(t, b.Rates(), reopened.Rates())
		require.Equal(t, b.Uncertainty(), reopened.Uncertainty())
		require.InDelta(t, fixtureExposure, reopened.Exposure(), 1e-12)

		// Both GTI edges survive the round trip.
		require.NotNil(t, reopened.Gti())
		require.InDelta(t, fixtureGtiStart, reopened.Gti().LowEdges()[0], 1e-4)
		require.InDelta(t, fixtureGtiStop, reopened.Gti().HighEdges()[0], 1e-4)

		trigger, ok := reopened.TriggerTime()
		require.True(t, ok)
		require.Equal(t, fixtureTrigger, trigger)
	})

	t.Run("Wrong kind", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "fixture.bak"))
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})
}
