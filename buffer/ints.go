package buffer

import (
	"fmt"

	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/endian"
	"github.com/arloliu/arco/errs"
)

// Ints is an integer element view over a byte buffer.
//
// It covers the bool, signed and unsigned integer kinds. Elements are read
// and written through the byte order of the element type; stores truncate
// the value to the element width, so writing a value outside the element
// range silently wraps exactly as a fixed-width integer store does.
type Ints struct {
	data   []byte
	engine endian.EndianEngine
	size   int
	signed bool
}

// ViewInts creates an integer view of data using the given element type.
//
// Parameters:
//   - data: Buffer to view; retained, not copied
//   - dt: Element type of kind bool, int or uint
//
// Returns:
//   - Ints: Element view over data
//   - error: errs.ErrKindMismatch for non-integer kinds,
//     errs.ErrBufferSize when len(data) is not a whole number of elements
func ViewInts(data []byte, dt dtype.DType) (Ints, error) {
	switch dt.Kind() {
	case dtype.KindBool, dtype.KindInt, dtype.KindUint:
	default:
		return Ints{}, fmt.Errorf("%w: integer view over %s elements", errs.ErrKindMismatch, dt.Kind())
	}

	if len(data)%dt.ItemSize() != 0 {
		return Ints{}, fmt.Errorf("%w: %d bytes with %d-byte elements", errs.ErrBufferSize, len(data), dt.ItemSize())
	}

	return Ints{
		data:   data,
		engine: dt.Engine(),
		size:   dt.ItemSize(),
		signed: dt.Signed(),
	}, nil
}

// Len returns the number of elements in the view.
func (v Ints) Len() int {
	return len(v.data) / v.size
}

// Signed reports whether elements are interpreted as signed integers.
func (v Ints) Signed() bool {
	return v.signed
}

// Uint returns element i zero-extended to 64 bits.
func (v Ints) Uint(i int) uint64 {
	off := i * v.size
	switch v.size {
	case 1:
		return uint64(v.data[off])
	case 2:
		return uint64(v.engine.Uint16(v.data[off : off+2]))
	case 4:
		return uint64(v.engine.Uint32(v.data[off : off+4]))
	default:
		return v.engine.Uint64(v.data[off : off+8])
	}
}

// Int returns element i extended to 64 bits: sign-extended for signed
// views, zero-extended otherwise.
func (v Ints) Int(i int) int64 {
	u := v.Uint(i)
	if !v.signed {
		return int64(u)
	}

	switch v.size {
	case 1:
		return int64(int8(u))
	case 2:
		return int64(int16(u))
	case 4:
		return int64(int32(u))
	default:
		return int64(u)
	}
}

// SetUint stores x into element i, truncated to the element width.
func (v Ints) SetUint(i int, x uint64) {
	off := i * v.size
	switch v.size {
	case 1:
		v.data[off] = byte(x)
	case 2:
		v.engine.PutUint16(v.data[off:off+2], uint16(x))
	case 4:
		v.engine.PutUint32(v.data[off:off+4], uint32(x))
	default:
		v.engine.PutUint64(v.data[off:off+8], x)
	}
}

// SetInt stores x into element i, truncated to the element width.
func (v Ints) SetInt(i int, x int64) {
	v.SetUint(i, uint64(x))
}
