package phafile

import (
	"fmt"
	"os"

	"github.com/spexlab/spex/compress"
	"github.com/spexlab/spex/endian"
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
	"github.com/spexlab/spex/header"
	"github.com/spexlab/spex/internal/hash"
	"github.com/spexlab/spex/internal/options"
	"github.com/spexlab/spex/internal/pool"
	"github.com/spexlab/spex/section"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// Encoder serializes File values into the container byte layout. The zero
// configuration is little-endian with uncompressed sections; an Encoder is
// safe for reuse across files.
type Encoder struct {
	bigEndian         bool
	tableCompression  format.CompressionType
	headerCompression format.CompressionType
}

// NewEncoder creates an Encoder with the given options.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	enc := &Encoder{
		tableCompression:  format.CompressionNone,
		headerCompression: format.CompressionNone,
	}
	if err := options.Apply(enc, opts...); err != nil {
		return nil, err
	}

	return enc, nil
}

// WithLittleEndian selects little-endian byte order. This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.bigEndian = false
	})
}

// WithBigEndian selects big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.bigEndian = true
	})
}

// WithTableCompression selects the codec applied to each table section.
func WithTableCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		e.tableCompression = compression

		return nil
	})
}

// WithHeaderCompression selects the codec applied to the header payload.
func WithHeaderCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		e.headerCompression = compression

		return nil
	})
}

// engine returns the configured endian engine.
func (e *Encoder) engine() endian.EndianEngine {
	if e.bigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Encode serializes the file into a newly allocated byte slice.
func (e *Encoder) Encode(f *File) ([]byte, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	engine := e.engine()

	headerCodec, err := compress.GetCodec(e.headerCompression)
	if err != nil {
		return nil, err
	}
	tableCodec, err := compress.GetCodec(e.tableCompression)
	if err != nil {
		return nil, err
	}

	headers := f.Headers
	if headers == nil {
		headers = header.NewFileHeaders()
	}
	headerPayload, err := section.EncodeHeaderPayload(headers, engine)
	if err != nil {
		return nil, err
	}
	headerPayload, err = headerCodec.Compress(headerPayload)
	if err != nil {
		return nil, fmt.Errorf("compress header payload: %w", err)
	}

	eboundsSec, err := tableCodec.Compress(section.EncodeEboundsTable(f.EboundsLo, f.EboundsHi, engine))
	if err != nil {
		return nil, fmt.Errorf("compress ebounds table: %w", err)
	}

	var spectrumTable []byte
	if f.Kind == format.KindBak {
		spectrumTable = section.EncodeBakTable(f.Rates, f.Uncert, f.ChannelMask, engine)
	} else {
		spectrumTable = section.EncodePhaTable(f.Counts, f.ChannelMask, engine)
	}
	spectrumSec, err := tableCodec.Compress(spectrumTable)
	if err != nil {
		return nil, fmt.Errorf("compress spectrum table: %w", err)
	}

	gtiSec, err := tableCodec.Compress(section.EncodeGtiTable(f.GtiStart, f.GtiStop, engine))
	if err != nil {
		return nil, fmt.Errorf("compress gti table: %w", err)
	}

	hdr := section.NewFileHeader(f.Kind)
	if e.bigEndian {
		hdr.Flag.WithBigEndian()
	}
	hdr.Flag.SetHasTriggerTime(f.HasTriggerTime)
	hdr.Flag.SetTableCompression(e.tableCompression)
	hdr.Flag.SetHeaderCompression(e.headerCompression)
	hdr.ChannelCount = uint32(f.NumChans())
	hdr.GtiCount = uint32(len(f.GtiStart))
	hdr.EboundsOffset = section.HeaderPayloadOffsetStart + uint32(len(headerPayload))
	hdr.SpectrumOffset = hdr.EboundsOffset + uint32(len(eboundsSec))
	hdr.GtiOffset = hdr.SpectrumOffset + uint32(len(spectrumSec))
	hdr.Exposure = f.Exposure
	if f.HasTriggerTime {
		hdr.TriggerTime = f.TriggerTime
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	buf.MustWrite(hdr.Bytes())
	buf.MustWrite(headerPayload)
	buf.MustWrite(eboundsSec)
	buf.MustWrite(spectrumSec)
	buf.MustWrite(gtiSec)

	checksum := hash.Checksum(buf.Bytes())

	out := make([]byte, 0, buf.Len()+section.ChecksumSize)
	out = append(out, buf.Bytes()...)
	out = engine.AppendUint64(out, checksum)

	return out, nil
}

// WriteFile encodes the file and writes it to path. Unless overwrite is
// set, an existing file at path is left untouched and ErrFileExists is
// returned.
func (e *Encoder) WriteFile(path string, f *File, overwrite bool) error {
	data, err := e.Encode(f)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	fp, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", errs.ErrFileExists, path)
		}

		return err
	}

	if _, err := fp.Write(data); err != nil {
		fp.Close()
		return err
	}

	return fp.Close()
}
