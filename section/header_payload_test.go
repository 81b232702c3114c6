package section

import (
	"testing"

	"github.com/spexlab/spex/endian"
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/header"
	"github.com/stretchr/testify/require"
)

func testHeaderSet(t *testing.T) *header.FileHeaders {
	t.Helper()

	primary := header.NewBlock(header.BlockPrimary)
	require.NoError(t, primary.Set(header.KeyTstart, -899.0864419937134, "Observation start time"))
	require.NoError(t, primary.Set(header.KeyTstop, -898.8306360244751, "Observation stop time"))
	require.NoError(t, primary.Set(header.KeyTrigTime, 356223561.133346, "Trigger time"))
	require.NoError(t, primary.Set("TELESCOP", "GLAST", "Name of mission"))
	require.NoError(t, primary.Set("POISSERR", true, ""))

	spectrum := header.NewBlock(header.BlockSpectrum)
	require.NoError(t, spectrum.Set(header.KeyDetChans, int64(8), "Total number of channels"))
	require.NoError(t, spectrum.Set(header.KeyExposure, 0.25459924, ""))

	return header.NewFileHeaders(primary, spectrum)
}

func TestHeaderPayload_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"little endian": endian.GetLittleEndianEngine(),
		"big endian":    endian.GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			original := testHeaderSet(t)

			data, err := EncodeHeaderPayload(original, engine)
			require.NoError(t, err)

			decoded, err := DecodeHeaderPayload(data, engine)
			require.NoError(t, err)

			require.Equal(t, original.Names(), decoded.Names())
			for i := 0; i < original.Len(); i++ {
				require.Equal(t, original.BlockAt(i).Keywords(), decoded.BlockAt(i).Keywords())
			}
		})
	}
}

func TestHeaderPayload_Empty(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	data, err := EncodeHeaderPayload(header.NewFileHeaders(), engine)
	require.NoError(t, err)

	decoded, err := DecodeHeaderPayload(data, engine)
	require.NoError(t, err)
	require.Equal(t, 0, decoded.Len())
}

func TestDecodeHeaderPayload_Malformed(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	original := testHeaderSet(t)

	data, err := EncodeHeaderPayload(original, engine)
	require.NoError(t, err)

	t.Run("Truncated", func(t *testing.T) {
		_, err := DecodeHeaderPayload(data[:len(data)/2], engine)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderPayload)
	})

	t.Run("Trailing garbage", func(t *testing.T) {
		_, err := DecodeHeaderPayload(append(append([]byte{}, data...), 0xFF), engine)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderPayload)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := DecodeHeaderPayload(nil, engine)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderPayload)
	})
}
