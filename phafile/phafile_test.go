package phafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
	"github.com/spexlab/spex/header"
	"github.com/stretchr/testify/require"
)

func testPhaFile(t *testing.T) *File {
	t.Helper()

	headers := header.DefaultHeaders()
	require.NoError(t, headers.Block(header.BlockPrimary).Set("TELESCOP", "GLAST", "Name of mission"))

	return &File{
		Kind:   format.KindPha,
		Counts: []int64{6, 9, 12, 15, 18, 21, 24, 27},
		ChannelMask: []bool{
			true, true, true, true, true, true, true, false,
		},
		EboundsLo: []float64{
			4.323754, 11.464164, 26.22962, 49.60019,
			101.016815, 290.46063, 538.1436, 997.2431,
		},
		EboundsHi: []float64{
			11.464164, 26.22962, 49.60019, 101.016815,
			290.46063, 538.1436, 997.2431, 2000.0,
		},
		GtiStart:       []float64{-899.0864419937134},
		GtiStop:        []float64{-898.8306360244751},
		Exposure:       0.25459924,
		TriggerTime:    356223561.133346,
		HasTriggerTime: true,
		Headers:        headers,
	}
}

func testBakFile(t *testing.T) *File {
	t.Helper()

	f := testPhaFile(t)
	f.Kind = format.KindBak
	f.Counts = nil
	f.Rates = []float64{1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0}
	f.Uncert = []float64{0.1, 0.1, 0.2, 0.2, 0.3, 0.3, 0.4, 0.4}

	return f
}

func requireFilesEqual(t *testing.T, want, got *File) {
	t.Helper()

	require.Equal(t, want.Kind, got.Kind)
	require.Equal(t, want.Counts, got.Counts)
	require.Equal(t, want.Rates, got.Rates)
	require.Equal(t, want.Uncert, got.Uncert)
	require.Equal(t, want.ChannelMask, got.ChannelMask)
	require.Equal(t, want.EboundsLo, got.EboundsLo)
	require.Equal(t, want.EboundsHi, got.EboundsHi)
	require.Equal(t, want.GtiStart, got.GtiStart)
	require.Equal(t, want.GtiStop, got.GtiStop)
	require.Equal(t, want.Exposure, got.Exposure)
	require.Equal(t, want.HasTriggerTime, got.HasTriggerTime)
	require.Equal(t, want.TriggerTime, got.TriggerTime)
	require.Equal(t, want.Headers.Names(), got.Headers.Names())
	for i := 0; i < want.Headers.Len(); i++ {
		require.Equal(t, want.Headers.BlockAt(i).Keywords(), got.Headers.BlockAt(i).Keywords())
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := map[string][]EncoderOption{
		"default":            nil,
		"big endian":         {WithBigEndian()},
		"zstd tables":        {WithTableCompression(format.CompressionZstd)},
		"s2 tables":          {WithTableCompression(format.CompressionS2)},
		"lz4 headers":        {WithHeaderCompression(format.CompressionLZ4)},
		"everything":         {WithBigEndian(), WithTableCompression(format.CompressionLZ4), WithHeaderCompression(format.CompressionZstd)},
		"compressed headers": {WithHeaderCompression(format.CompressionS2)},
	}

	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			enc, err := NewEncoder(opts...)
			require.NoError(t, err)

			for _, original := range []*File{testPhaFile(t), testBakFile(t)} {
				data, err := enc.Encode(original)
				require.NoError(t, err)

				decoded, err := Decode(data)
				require.NoError(t, err)
				requireFilesEqual(t, original, decoded)
			}
		})
	}
}

func TestEncode_Validation(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	t.Run("Mask length mismatch", func(t *testing.T) {
		f := testPhaFile(t)
		f.ChannelMask = f.ChannelMask[:3]
		_, err := enc.Encode(f)
		require.ErrorIs(t, err, errs.ErrChannelMaskLength)
	})

	t.Run("Counts length mismatch", func(t *testing.T) {
		f := testPhaFile(t)
		f.Counts = f.Counts[:3]
		_, err := enc.Encode(f)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("Gti length mismatch", func(t *testing.T) {
		f := testPhaFile(t)
		f.GtiStop = nil
		_, err := enc.Encode(f)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("Negative exposure", func(t *testing.T) {
		f := testPhaFile(t)
		f.Exposure = -1.0
		_, err := enc.Encode(f)
		require.ErrorIs(t, err, errs.ErrNegativeExposure)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		f := testPhaFile(t)
		f.Kind = format.RecordKind(0x7)
		_, err := enc.Encode(f)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})
}

func TestDecode_Corruption(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(testPhaFile(t))
	require.NoError(t, err)

	t.Run("Flipped payload byte", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[len(corrupt)/2] ^= 0xFF
		_, err := Decode(corrupt)
		require.Error(t, err)
	})

	t.Run("Flipped trailer byte", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[len(corrupt)-1] ^= 0xFF
		_, err := Decode(corrupt)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("Truncated input", func(t *testing.T) {
		_, err := Decode(data[:10])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := Decode(nil)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}

func TestWriteFile(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	dir := t.TempDir()
	path := filepath.Join(dir, "burst.pha")

	t.Run("Write and read back", func(t *testing.T) {
		original := testPhaFile(t)
		require.NoError(t, enc.WriteFile(path, original, false))

		decoded, err := ReadFile(path)
		require.NoError(t, err)
		requireFilesEqual(t, original, decoded)
	})

	t.Run("Existing target without overwrite", func(t *testing.T) {
		err := enc.WriteFile(path, testPhaFile(t), false)
		require.ErrorIs(t, err, errs.ErrFileExists)
	})

	t.Run("Existing target with overwrite", func(t *testing.T) {
		require.NoError(t, enc.WriteFile(path, testBakFile(t), true))

		decoded, err := ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, format.KindBak, decoded.Kind)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "missing.pha"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
