package rebin

import (
	"testing"

	"github.com/spexlab/spex/errs"
	"github.com/stretchr/testify/require"
)

func TestByFactor(t *testing.T) {
	t.Run("Even split", func(t *testing.T) {
		groups, err := ByFactor(2)(8)
		require.NoError(t, err)
		require.Equal(t, [][2]int{{0, 2}, {2, 4}, {4, 6}, {6, 8}}, groups)
	})

	t.Run("Remainder is dropped", func(t *testing.T) {
		groups, err := ByFactor(3)(8)
		require.NoError(t, err)
		require.Equal(t, [][2]int{{0, 3}, {3, 6}}, groups)
	})

	t.Run("Factor one is identity", func(t *testing.T) {
		groups, err := ByFactor(1)(3)
		require.NoError(t, err)
		require.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}}, groups)
	})

	t.Run("Factor larger than channel count", func(t *testing.T) {
		_, err := ByFactor(10)(8)
		require.ErrorIs(t, err, errs.ErrEmptySelection)
	})

	t.Run("Non-positive factor", func(t *testing.T) {
		_, err := ByFactor(0)(8)
		require.ErrorIs(t, err, errs.ErrInvalidRebinFactor)
		require.ErrorIs(t, err, errs.ErrInvalidValue)

		_, err = ByFactor(-2)(8)
		require.ErrorIs(t, err, errs.ErrInvalidRebinFactor)
	})
}

func TestByEdges(t *testing.T) {
	t.Run("Explicit boundaries", func(t *testing.T) {
		groups, err := ByEdges([]int{0, 2, 5, 8})(8)
		require.NoError(t, err)
		require.Equal(t, [][2]int{{0, 2}, {2, 5}, {5, 8}}, groups)
	})

	t.Run("Too few edges", func(t *testing.T) {
		_, err := ByEdges([]int{3})(8)
		require.ErrorIs(t, err, errs.ErrEmptySelection)
	})

	t.Run("Edge beyond channel count", func(t *testing.T) {
		_, err := ByEdges([]int{0, 10})(8)
		require.ErrorIs(t, err, errs.ErrInvalidValue)
	})

	t.Run("Non-ascending edges", func(t *testing.T) {
		_, err := ByEdges([]int{4, 2})(8)
		require.ErrorIs(t, err, errs.ErrInvalidValue)
	})
}
