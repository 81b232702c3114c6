package section

import (
	"testing"

	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
	"github.com/stretchr/testify/require"
)

func TestNewFileHeader(t *testing.T) {
	t.Run("Source spectrum", func(t *testing.T) {
		h := NewFileHeader(format.KindPha)
		require.Equal(t, uint16(MagicPhaV1Opt), h.Flag.GetMagicNumber())
		require.Equal(t, format.KindPha, h.Flag.RecordKind())
		require.True(t, h.Flag.IsLittleEndian())
		require.False(t, h.Flag.HasTriggerTime())
		require.Equal(t, uint32(HeaderPayloadOffsetStart), h.HeaderPayloadOffset)
	})

	t.Run("Background spectrum", func(t *testing.T) {
		h := NewFileHeader(format.KindBak)
		require.Equal(t, uint16(MagicBakV1Opt), h.Flag.GetMagicNumber())
		require.Equal(t, format.KindBak, h.Flag.RecordKind())
	})
}

func TestFileHeader_Parse(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		original := NewFileHeader(format.KindPha)
		original.Flag.SetHasTriggerTime(true)
		original.Flag.SetTableCompression(format.CompressionZstd)
		original.Flag.SetHeaderCompression(format.CompressionLZ4)
		original.ChannelCount = 8
		original.GtiCount = 2
		original.EboundsOffset = 100
		original.SpectrumOffset = 228
		original.GtiOffset = 300
		original.TriggerTime = 356223561.133346
		original.Exposure = 0.25459924

		parsed := &FileHeader{}
		require.NoError(t, parsed.Parse(original.Bytes()))

		require.Equal(t, original.Flag, parsed.Flag)
		require.Equal(t, original.ChannelCount, parsed.ChannelCount)
		require.Equal(t, original.GtiCount, parsed.GtiCount)
		require.Equal(t, original.EboundsOffset, parsed.EboundsOffset)
		require.Equal(t, original.SpectrumOffset, parsed.SpectrumOffset)
		require.Equal(t, original.GtiOffset, parsed.GtiOffset)
		require.Equal(t, original.TriggerTime, parsed.TriggerTime)
		require.Equal(t, original.Exposure, parsed.Exposure)
	})

	t.Run("Big endian round trip", func(t *testing.T) {
		original := NewFileHeader(format.KindBak)
		original.Flag.WithBigEndian()
		original.ChannelCount = 128
		original.Exposure = 12.5

		parsed := &FileHeader{}
		require.NoError(t, parsed.Parse(original.Bytes()))
		require.True(t, parsed.Flag.IsBigEndian())
		require.Equal(t, uint32(128), parsed.ChannelCount)
		require.Equal(t, 12.5, parsed.Exposure)
	})

	t.Run("Options word layout is endian-independent", func(t *testing.T) {
		// Bytes 0-1 must be identical for both orders so the reader can
		// recover the endianness bit before choosing an engine.
		le := NewFileHeader(format.KindPha)
		be := NewFileHeader(format.KindPha)
		be.Flag.WithBigEndian()

		leBytes := le.Bytes()
		beBytes := be.Bytes()
		require.Equal(t, leBytes[0]|byte(EndiannessMask), beBytes[0])
		require.Equal(t, leBytes[1], beBytes[1])

		parsed := &FileHeader{}
		require.NoError(t, parsed.Parse(beBytes))
		require.Equal(t, uint16(MagicPhaV1Opt), parsed.Flag.GetMagicNumber())
	})

	t.Run("Invalid size", func(t *testing.T) {
		h := &FileHeader{}
		require.ErrorIs(t, h.Parse([]byte{1, 2, 3}), errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid magic number", func(t *testing.T) {
		data := make([]byte, HeaderSize)
		h := &FileHeader{}
		require.ErrorIs(t, h.Parse(data), errs.ErrInvalidMagicNumber)
	})

	t.Run("Reserved flag bits", func(t *testing.T) {
		original := NewFileHeader(format.KindPha)
		data := original.Bytes()
		data[0] |= 0x04 // set a reserved bit

		h := &FileHeader{}
		require.ErrorIs(t, h.Parse(data), errs.ErrInvalidHeaderFlags)
	})

	t.Run("Invalid compression nibble", func(t *testing.T) {
		original := NewFileHeader(format.KindPha)
		data := original.Bytes()
		data[2] = 0x0F

		h := &FileHeader{}
		require.ErrorIs(t, h.Parse(data), errs.ErrInvalidHeaderFlags)
	})
}

func TestFileHeader_ValidateOffsets(t *testing.T) {
	h := NewFileHeader(format.KindPha)
	h.EboundsOffset = 100
	h.SpectrumOffset = 228
	h.GtiOffset = 300

	t.Run("Valid offsets", func(t *testing.T) {
		require.NoError(t, h.ValidateOffsets(332))
	})

	t.Run("Gti offset past payload", func(t *testing.T) {
		require.ErrorIs(t, h.ValidateOffsets(200), errs.ErrInvalidSectionOffset)
	})

	t.Run("Out of order offsets", func(t *testing.T) {
		bad := *h
		bad.SpectrumOffset = 50
		require.ErrorIs(t, bad.ValidateOffsets(332), errs.ErrInvalidSectionOffset)
	})

	t.Run("Header payload offset must follow fixed header", func(t *testing.T) {
		bad := *h
		bad.HeaderPayloadOffset = 0
		require.ErrorIs(t, bad.ValidateOffsets(332), errs.ErrInvalidSectionOffset)
	})
}

func TestFileFlag_Compression(t *testing.T) {
	flag := NewFileFlag(format.KindPha)

	flag.SetTableCompression(format.CompressionS2)
	flag.SetHeaderCompression(format.CompressionZstd)
	require.Equal(t, format.CompressionS2, flag.TableCompression())
	require.Equal(t, format.CompressionZstd, flag.HeaderCompression())

	flag.SetTableCompression(format.CompressionNone)
	require.Equal(t, format.CompressionNone, flag.TableCompression())
	require.Equal(t, format.CompressionZstd, flag.HeaderCompression())
}
