// Package shuffle implements a filter codec that transposes the bytes of
// fixed-width elements.
//
// Encoding groups the i-th byte of every element together, so a buffer of
// four-byte elements becomes all first bytes, then all second bytes, and so
// on. Values that vary slowly produce long runs of identical bytes in the
// transposed layout, which downstream compressors exploit. Decoding applies
// the inverse transpose and restores the input exactly.
package shuffle

import (
	"fmt"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
)

// ID is the registry identifier of the shuffle codec.
const ID = "shuffle"

func init() {
	codec.Register(ID, fromConfig)
}

// Codec transposes element bytes to improve downstream compressibility.
//
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	elementSize int
}

var _ codec.Codec = (*Codec)(nil)

// New creates a shuffle codec for elements of the given byte width.
//
// Returns:
//   - *Codec: Ready-to-use codec
//   - error: errs.ErrInvalidConfig when elementSize is not positive
func New(elementSize int) (*Codec, error) {
	if elementSize <= 0 {
		return nil, fmt.Errorf("%w: shuffle element size %d", errs.ErrInvalidConfig, elementSize)
	}

	return &Codec{elementSize: elementSize}, nil
}

func fromConfig(cfg codec.Config) (codec.Codec, error) {
	size, ok := cfg.Int("elementsize")
	if !ok {
		return nil, fmt.Errorf("%w: shuffle requires an elementsize", errs.ErrInvalidConfig)
	}

	return New(size)
}

// ID returns the codec identifier "shuffle".
func (c *Codec) ID() string {
	return ID
}

// ElementSize returns the element width in bytes.
func (c *Codec) ElementSize() int {
	return c.elementSize
}

// Encode returns src with element bytes transposed: the output starts with
// the first byte of every element, then the second byte of every element,
// and so on. Single-byte elements copy through unchanged.
//
// Returns:
//   - []byte: Newly allocated buffer of the same length
//   - error: errs.ErrBufferSize when len(src) is not a multiple of the
//     element size
func (c *Codec) Encode(src []byte) ([]byte, error) {
	if len(src)%c.elementSize != 0 {
		return nil, fmt.Errorf("%w: have %d bytes, element size %d", errs.ErrBufferSize, len(src), c.elementSize)
	}

	enc := make([]byte, len(src))
	if c.elementSize == 1 {
		copy(enc, src)

		return enc, nil
	}

	n := len(src) / c.elementSize
	for j := 0; j < c.elementSize; j++ {
		plane := enc[j*n : (j+1)*n]
		for i := 0; i < n; i++ {
			plane[i] = src[i*c.elementSize+j]
		}
	}

	return enc, nil
}

// Decode applies the inverse transpose.
//
// Parameters:
//   - src: Transposed buffer
//   - dst: Optional destination; must hold exactly len(src) bytes
//
// Returns:
//   - []byte: Restored buffer; dst when it was supplied
//   - error: errs.ErrBufferSize when len(src) is not a multiple of the
//     element size, errs.ErrInvalidDstSize when dst has the wrong length
func (c *Codec) Decode(src, dst []byte) ([]byte, error) {
	if len(src)%c.elementSize != 0 {
		return nil, fmt.Errorf("%w: have %d bytes, element size %d", errs.ErrBufferSize, len(src), c.elementSize)
	}

	if dst == nil {
		dst = make([]byte, len(src))
	} else if len(dst) != len(src) {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), len(src))
	}

	if c.elementSize == 1 {
		return buffer.CopyOut(dst, src)
	}

	n := len(src) / c.elementSize
	for j := 0; j < c.elementSize; j++ {
		plane := src[j*n : (j+1)*n]
		for i := 0; i < n; i++ {
			dst[i*c.elementSize+j] = plane[i]
		}
	}

	return dst, nil
}

// Config returns the configuration record of the codec:
//
//	{"id": "shuffle", "elementsize": 4}
func (c *Codec) Config() codec.Config {
	return codec.Config{
		"id":          ID,
		"elementsize": c.elementSize,
	}
}
