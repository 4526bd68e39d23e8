package buffer

import (
	"fmt"
	"math"

	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/endian"
	"github.com/arloliu/arco/errs"
)

// Floats is a float element view over a byte buffer.
//
// It covers 32-bit and 64-bit IEEE 754 elements. 32-bit elements are
// widened to float64 on read and narrowed on write.
type Floats struct {
	data   []byte
	engine endian.EndianEngine
	size   int
}

// ViewFloats creates a float view of data using the given element type.
//
// Returns:
//   - Floats: Element view over data
//   - error: errs.ErrKindMismatch for non-float kinds,
//     errs.ErrBufferSize when len(data) is not a whole number of elements
func ViewFloats(data []byte, dt dtype.DType) (Floats, error) {
	if dt.Kind() != dtype.KindFloat {
		return Floats{}, fmt.Errorf("%w: float view over %s elements", errs.ErrKindMismatch, dt.Kind())
	}

	if len(data)%dt.ItemSize() != 0 {
		return Floats{}, fmt.Errorf("%w: %d bytes with %d-byte elements", errs.ErrBufferSize, len(data), dt.ItemSize())
	}

	return Floats{
		data:   data,
		engine: dt.Engine(),
		size:   dt.ItemSize(),
	}, nil
}

// Len returns the number of elements in the view.
func (v Floats) Len() int {
	return len(v.data) / v.size
}

// Float returns element i as a float64.
func (v Floats) Float(i int) float64 {
	off := i * v.size
	if v.size == 4 {
		return float64(math.Float32frombits(v.engine.Uint32(v.data[off : off+4])))
	}

	return math.Float64frombits(v.engine.Uint64(v.data[off : off+8]))
}

// SetFloat stores x into element i, narrowing to float32 for 4-byte elements.
func (v Floats) SetFloat(i int, x float64) {
	off := i * v.size
	if v.size == 4 {
		v.engine.PutUint32(v.data[off:off+4], math.Float32bits(float32(x)))
		return
	}

	v.engine.PutUint64(v.data[off:off+8], math.Float64bits(x))
}
