package buffer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/endian"
	"github.com/arloliu/arco/errs"
)

// FixedBytes is a fixed-width byte string view over a byte buffer.
//
// Each element occupies exactly Size bytes; shorter values are padded with
// trailing NUL bytes. Trailing NUL padding is not significant: reads strip
// it and comparisons ignore it, so a cell holding "male\x00\x00\x00" is
// equal to the value "male".
type FixedBytes struct {
	data []byte
	size int
}

// ViewBytes creates a byte string view of data using the given element type.
//
// Returns:
//   - FixedBytes: Element view over data
//   - error: errs.ErrKindMismatch for non-byte-string kinds,
//     errs.ErrBufferSize when len(data) is not a whole number of elements
func ViewBytes(data []byte, dt dtype.DType) (FixedBytes, error) {
	if dt.Kind() != dtype.KindBytes {
		return FixedBytes{}, fmt.Errorf("%w: byte string view over %s elements", errs.ErrKindMismatch, dt.Kind())
	}

	if len(data)%dt.ItemSize() != 0 {
		return FixedBytes{}, fmt.Errorf("%w: %d bytes with %d-byte elements", errs.ErrBufferSize, len(data), dt.ItemSize())
	}

	return FixedBytes{data: data, size: dt.ItemSize()}, nil
}

// Len returns the number of elements in the view.
func (v FixedBytes) Len() int {
	return len(v.data) / v.size
}

// At returns element i with trailing NUL padding stripped.
// The returned slice aliases the underlying buffer.
func (v FixedBytes) At(i int) []byte {
	return bytes.TrimRight(v.Raw(i), "\x00")
}

// Raw returns the full cell of element i including padding.
// The returned slice aliases the underlying buffer.
func (v FixedBytes) Raw(i int) []byte {
	return v.data[i*v.size : (i+1)*v.size]
}

// Set stores val into element i, truncating to the cell width and padding
// the remainder with NUL bytes.
func (v FixedBytes) Set(i int, val []byte) {
	cell := v.Raw(i)
	n := copy(cell, val)
	clear(cell[n:])
}

// EqualAt reports whether element i equals val, ignoring trailing NUL
// padding on both sides. A val longer than the cell width never matches.
func (v FixedBytes) EqualAt(i int, val []byte) bool {
	return bytes.Equal(v.At(i), bytes.TrimRight(val, "\x00"))
}

// FixedText is a fixed-width text view over a byte buffer.
//
// Each element holds exactly Size characters stored as 4-byte code units in
// the byte order of the element type; shorter values are padded with zero
// code units, which reads strip and comparisons ignore.
type FixedText struct {
	data   []byte
	engine endian.EndianEngine
	size   int
}

// ViewText creates a text view of data using the given element type.
//
// Returns:
//   - FixedText: Element view over data
//   - error: errs.ErrKindMismatch for non-text kinds,
//     errs.ErrBufferSize when len(data) is not a whole number of elements
func ViewText(data []byte, dt dtype.DType) (FixedText, error) {
	if dt.Kind() != dtype.KindText {
		return FixedText{}, fmt.Errorf("%w: text view over %s elements", errs.ErrKindMismatch, dt.Kind())
	}

	if len(data)%dt.ItemSize() != 0 {
		return FixedText{}, fmt.Errorf("%w: %d bytes with %d-byte elements", errs.ErrBufferSize, len(data), dt.ItemSize())
	}

	return FixedText{data: data, engine: dt.Engine(), size: dt.Size()}, nil
}

// Len returns the number of elements in the view.
func (v FixedText) Len() int {
	return len(v.data) / (4 * v.size)
}

func (v FixedText) unit(i, j int) uint32 {
	off := (i*v.size + j) * 4
	return v.engine.Uint32(v.data[off : off+4])
}

func (v FixedText) setUnit(i, j int, cu uint32) {
	off := (i*v.size + j) * 4
	v.engine.PutUint32(v.data[off:off+4], cu)
}

// At returns element i as a string with trailing zero code units stripped.
// Code units outside the valid character range decode as U+FFFD.
func (v FixedText) At(i int) string {
	end := v.size
	for end > 0 && v.unit(i, end-1) == 0 {
		end--
	}

	var sb strings.Builder
	for j := 0; j < end; j++ {
		sb.WriteRune(rune(int32(v.unit(i, j))))
	}

	return sb.String()
}

// Set stores s into element i, truncating to the cell width in characters
// and padding the remainder with zero code units.
func (v FixedText) Set(i int, s string) {
	j := 0
	for _, r := range s {
		if j >= v.size {
			break
		}
		v.setUnit(i, j, uint32(r))
		j++
	}

	for ; j < v.size; j++ {
		v.setUnit(i, j, 0)
	}
}

// EqualAt reports whether element i equals s, ignoring trailing zero code
// units. It allocates nothing. An s with more characters than the cell
// width never matches.
func (v FixedText) EqualAt(i int, s string) bool {
	j := 0
	for _, r := range s {
		if j >= v.size || v.unit(i, j) != uint32(r) {
			return false
		}
		j++
	}

	for ; j < v.size; j++ {
		if v.unit(i, j) != 0 {
			return false
		}
	}

	return true
}
