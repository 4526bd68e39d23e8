// Package buffer provides typed views over raw byte buffers.
//
// Codecs in this module operate on flat []byte payloads whose interpretation
// is fixed by an element type from the dtype package. The views here give
// element-level access to such payloads without copying: an Ints, Floats,
// FixedBytes or FixedText value wraps the buffer and reads or writes
// elements in the byte order the element type declares.
//
// Views never take ownership of the underlying buffer and hold no state
// besides the slice header, so a view value can be copied freely and used
// concurrently for reads. Concurrent writes to the same buffer require
// external synchronization, as with any shared slice.
package buffer

import (
	"fmt"

	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/errs"
)

// Alloc returns a zero-initialized buffer holding n elements of the given
// element type. Zeroed storage decodes as 0 for numeric types and as the
// empty string for byte-string and text types.
func Alloc(n int, dt dtype.DType) []byte {
	return make([]byte, n*dt.ItemSize())
}

// CopyOut delivers src through an optional caller-supplied destination.
//
// A nil dst allocates a fresh copy of src, so the result never aliases a
// buffer the caller does not own. A non-nil dst must have exactly the same
// length as src; its contents are replaced with a copy of src.
//
// Returns:
//   - []byte: The copy; dst when it was supplied
//   - error: errs.ErrInvalidDstSize when dst is non-nil with the wrong length
func CopyOut(dst, src []byte) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, len(src))
	}

	if len(dst) != len(src) {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), len(src))
	}

	copy(dst, src)

	return dst, nil
}
