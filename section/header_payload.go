package section

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/spexlab/spex/endian"
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/header"
)

// Header payload value type tags.
const (
	valueTypeString = 0x0
	valueTypeInt    = 0x1
	valueTypeFloat  = 0x2
	valueTypeBool   = 0x3
)

// EncodeHeaderPayload serializes a header set into the keyword payload
// section: a uvarint block count, then per block a varstring name, a
// uvarint keyword count, and per keyword a varstring name, a value type
// tag, the value, and a varstring comment. Strings carry a uvarint length
// prefix; numeric values use the file's byte order.
func EncodeHeaderPayload(h *header.FileHeaders, engine endian.EndianEngine) ([]byte, error) {
	buf := binary.AppendUvarint(nil, uint64(h.Len()))
	for i := 0; i < h.Len(); i++ {
		block := h.BlockAt(i)
		buf = appendVarString(buf, block.Name())

		keywords := block.Keywords()
		buf = binary.AppendUvarint(buf, uint64(len(keywords)))
		for _, kw := range keywords {
			buf = appendVarString(buf, kw.Name)
			switch v := kw.Value.(type) {
			case string:
				buf = append(buf, valueTypeString)
				buf = appendVarString(buf, v)
			case int64:
				buf = append(buf, valueTypeInt)
				buf = engine.AppendUint64(buf, uint64(v))
			case float64:
				buf = append(buf, valueTypeFloat)
				buf = engine.AppendUint64(buf, math.Float64bits(v))
			case bool:
				buf = append(buf, valueTypeBool)
				if v {
					buf = append(buf, 1)
				} else {
					buf = append(buf, 0)
				}
			default:
				return nil, fmt.Errorf("%w: keyword %q has unsupported type %T",
					errs.ErrInvalidHeaderPayload, kw.Name, kw.Value)
			}
			buf = appendVarString(buf, kw.Comment)
		}
	}

	return buf, nil
}

// DecodeHeaderPayload parses the keyword payload section back into a
// header set.
func DecodeHeaderPayload(data []byte, engine endian.EndianEngine) (*header.FileHeaders, error) {
	r := payloadReader{data: data}

	blockCount, err := r.uvarint()
	if err != nil {
		return nil, err
	}

	headers := header.NewFileHeaders()
	for b := uint64(0); b < blockCount; b++ {
		name, err := r.varString()
		if err != nil {
			return nil, err
		}
		block := header.NewBlock(name)

		keywordCount, err := r.uvarint()
		if err != nil {
			return nil, err
		}
		for k := uint64(0); k < keywordCount; k++ {
			keyName, err := r.varString()
			if err != nil {
				return nil, err
			}
			tag, err := r.byte()
			if err != nil {
				return nil, err
			}

			var value any
			switch tag {
			case valueTypeString:
				value, err = r.varString()
			case valueTypeInt:
				var bits uint64
				bits, err = r.uint64(engine)
				value = int64(bits)
			case valueTypeFloat:
				var bits uint64
				bits, err = r.uint64(engine)
				value = math.Float64frombits(bits)
			case valueTypeBool:
				var flag byte
				flag, err = r.byte()
				value = flag != 0
			default:
				return nil, fmt.Errorf("%w: keyword %q has unknown value type tag %d",
					errs.ErrInvalidHeaderPayload, keyName, tag)
			}
			if err != nil {
				return nil, err
			}

			comment, err := r.varString()
			if err != nil {
				return nil, err
			}
			if err := block.Set(keyName, value, comment); err != nil {
				return nil, err
			}
		}

		headers.Add(block)
	}

	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidHeaderPayload, len(r.data)-r.pos)
	}

	return headers, nil
}

// appendVarString appends a uvarint length prefix followed by the string bytes.
func appendVarString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// payloadReader is a cursor over the header payload bytes. All reads fail
// with ErrInvalidHeaderPayload on truncation.
type payloadReader struct {
	data []byte
	pos  int
}

func (r *payloadReader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errs.ErrInvalidHeaderPayload
	}
	r.pos += n

	return v, nil
}

func (r *payloadReader) varString() (string, error) {
	length, err := r.uvarint()
	if err != nil {
		return "", err
	}
	if uint64(len(r.data)-r.pos) < length {
		return "", errs.ErrInvalidHeaderPayload
	}
	s := string(r.data[r.pos : r.pos+int(length)])
	r.pos += int(length)

	return s, nil
}

func (r *payloadReader) byte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errs.ErrInvalidHeaderPayload
	}
	b := r.data[r.pos]
	r.pos++

	return b, nil
}

func (r *payloadReader) uint64(engine endian.EndianEngine) (uint64, error) {
	if len(r.data)-r.pos < 8 {
		return 0, errs.ErrInvalidHeaderPayload
	}
	v := engine.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8

	return v, nil
}
