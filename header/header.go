// Package header models the descriptive metadata carried alongside a
// spectrum record: an ordered collection of named blocks, each an ordered
// keyword -> (value, comment) table.
//
// Values are restricted to the four scalar types the container format can
// serialize: string, int64, float64, and bool. A handful of keys are
// derived from the owning record (DETCHANS, EXPOSURE, TSTART, TSTOP,
// TRIGTIME) and are re-projected into the blocks on every construction and
// transformation; see the pha package.
package header

import (
	"fmt"

	"github.com/spexlab/spex/errs"
)

// Standard block names.
const (
	BlockPrimary  = "PRIMARY"
	BlockEbounds  = "EBOUNDS"
	BlockSpectrum = "SPECTRUM"
	BlockGti      = "GTI"
)

// Derived keys, kept consistent with the owning record.
const (
	KeyDetChans = "DETCHANS"
	KeyExposure = "EXPOSURE"
	KeyTstart   = "TSTART"
	KeyTstop    = "TSTOP"
	KeyTrigTime = "TRIGTIME"
)

// Keyword is a single named value with its descriptive comment.
type Keyword struct {
	Name    string
	Value   any
	Comment string
}

// Block is an ordered keyword table under a block name.
type Block struct {
	name  string
	keys  []Keyword
	index map[string]int
}

// NewBlock creates an empty block with the given name.
func NewBlock(name string) *Block {
	return &Block{
		name:  name,
		index: make(map[string]int),
	}
}

// Name returns the block name.
func (b *Block) Name() string {
	return b.name
}

// Len returns the number of keywords in the block.
func (b *Block) Len() int {
	return len(b.keys)
}

// normalizeValue widens Go integer and float literals to the four scalar
// types the container serializes.
func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case string, int64, float64, bool:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case float32:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("%w: header value must be string, int64, float64 or bool, got %T",
			errs.ErrInvalidType, value)
	}
}

// Set inserts or replaces the keyword, preserving insertion order on
// replacement.
func (b *Block) Set(name string, value any, comment string) error {
	v, err := normalizeValue(value)
	if err != nil {
		return err
	}

	if i, ok := b.index[name]; ok {
		b.keys[i].Value = v
		if comment != "" {
			b.keys[i].Comment = comment
		}

		return nil
	}

	b.index[name] = len(b.keys)
	b.keys = append(b.keys, Keyword{Name: name, Value: v, Comment: comment})

	return nil
}

// Value returns the value stored under name.
func (b *Block) Value(name string) (any, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}

	return b.keys[i].Value, true
}

// Has reports whether the block contains the key.
func (b *Block) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Comment returns the comment stored under name.
func (b *Block) Comment(name string) string {
	i, ok := b.index[name]
	if !ok {
		return ""
	}

	return b.keys[i].Comment
}

// Float returns the value under name as a float64, widening an int64.
// Missing or non-numeric keys report zero.
func (b *Block) Float(name string) float64 {
	v, ok := b.Value(name)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	default:
		return 0
	}
}

// Int returns the value under name as an int64. Missing or non-integer
// keys report zero.
func (b *Block) Int(name string) int64 {
	v, ok := b.Value(name)
	if !ok {
		return 0
	}
	if x, ok := v.(int64); ok {
		return x
	}

	return 0
}

// Text returns the value under name as a string. Missing or non-string
// keys report the empty string.
func (b *Block) Text(name string) string {
	v, ok := b.Value(name)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}

// Keywords returns a copy of the block's keywords in insertion order.
func (b *Block) Keywords() []Keyword {
	out := make([]Keyword, len(b.keys))
	copy(out, b.keys)

	return out
}

// clone returns a deep copy of the block.
func (b *Block) clone() *Block {
	c := NewBlock(b.name)
	c.keys = make([]Keyword, len(b.keys))
	copy(c.keys, b.keys)
	for k, v := range b.index {
		c.index[k] = v
	}

	return c
}

// FileHeaders is the ordered, named collection of blocks persisted with a
// record.
type FileHeaders struct {
	blocks []*Block
	index  map[string]int
}

// NewFileHeaders creates a header set holding the given blocks in order.
func NewFileHeaders(blocks ...*Block) *FileHeaders {
	h := &FileHeaders{index: make(map[string]int)}
	for _, b := range blocks {
		h.Add(b)
	}

	return h
}

// DefaultHeaders returns the standard block set for a spectrum record:
// PRIMARY, EBOUNDS, SPECTRUM and GTI, seeded with the derived keys so a
// record constructed without caller-supplied headers still carries the
// full template.
func DefaultHeaders() *FileHeaders {
	primary := NewBlock(BlockPrimary)
	_ = primary.Set(KeyTstart, 0.0, "Observation start time")
	_ = primary.Set(KeyTstop, 0.0, "Observation stop time")
	_ = primary.Set(KeyTrigTime, 0.0, "Trigger time relative to MJDREF")

	ebounds := NewBlock(BlockEbounds)
	_ = ebounds.Set(KeyDetChans, 0, "Total number of channels in each rate")

	spectrum := NewBlock(BlockSpectrum)
	_ = spectrum.Set(KeyDetChans, 0, "Total number of channels in each rate")
	_ = spectrum.Set(KeyExposure, 0.0, "Accumulation time - deadtime")

	gti := NewBlock(BlockGti)

	return NewFileHeaders(primary, ebounds, spectrum, gti)
}

// Add appends a block, or replaces the existing block of the same name in
// place.
func (h *FileHeaders) Add(b *Block) {
	if i, ok := h.index[b.name]; ok {
		h.blocks[i] = b
		return
	}

	h.index[b.name] = len(h.blocks)
	h.blocks = append(h.blocks, b)
}

// Block returns the named block, or nil when absent.
func (h *FileHeaders) Block(name string) *Block {
	i, ok := h.index[name]
	if !ok {
		return nil
	}

	return h.blocks[i]
}

// BlockAt returns the block at position i in insertion order.
func (h *FileHeaders) BlockAt(i int) *Block {
	return h.blocks[i]
}

// Len returns the number of blocks.
func (h *FileHeaders) Len() int {
	return len(h.blocks)
}

// Names returns the block names in insertion order.
func (h *FileHeaders) Names() []string {
	names := make([]string, len(h.blocks))
	for i, b := range h.blocks {
		names[i] = b.name
	}

	return names
}

// Clone returns a deep copy of the header set. Record transformations
// clone before re-projecting derived keys so the source record's headers
// stay untouched.
func (h *FileHeaders) Clone() *FileHeaders {
	blocks := make([]*Block, len(h.blocks))
	for i, b := range h.blocks {
		blocks[i] = b.clone()
	}

	return NewFileHeaders(blocks...)
}
