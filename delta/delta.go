// Package delta implements a filter codec that stores an array as its first
// element followed by the differences between neighbors.
//
// Slowly varying sequences such as timestamps, counters or sensor readings
// produce small differences that compress far better than the raw values,
// and can often be stored in a narrower element type outright:
//
//	// 64-bit counters whose steps fit in one signed byte
//	c, err := delta.New(dtype.MustParse("<i8"), dtype.MustParse("|i1"))
//
// Differences are computed with the wraparound arithmetic of the decoded
// element type and stored with truncating writes into the encoded type, so
// steps outside the encoded range wrap silently; decoding reverses the
// arithmetic exactly, which restores the original values whenever every
// difference and the first element fit the encoded type.
package delta

import (
	"fmt"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/errs"
)

// ID is the registry identifier of the delta codec.
const ID = "delta"

func init() {
	codec.Register(ID, fromConfig)
}

// Codec applies delta encoding over fixed-width numeric arrays.
//
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	dtype  dtype.DType
	astype dtype.DType
}

var _ codec.Codec = (*Codec)(nil)

// New creates a delta codec for the given decoded and encoded element
// types. Both must be numeric; the encoded type must be a float type
// exactly when the decoded type is. Passing the zero DType as astype
// encodes in the decoded type itself.
//
// Returns:
//   - *Codec: Ready-to-use codec
//   - error: errs.ErrInvalidTypeSpec for non-numeric or mismatched kinds
func New(dt, astype dtype.DType) (*Codec, error) {
	if astype == (dtype.DType{}) {
		astype = dt
	}

	if !dt.IsInteger() && !dt.IsFloat() {
		return nil, fmt.Errorf("%w: delta over %s elements", errs.ErrInvalidTypeSpec, dt.Kind())
	}
	if !astype.IsInteger() && !astype.IsFloat() {
		return nil, fmt.Errorf("%w: delta into %s elements", errs.ErrInvalidTypeSpec, astype.Kind())
	}
	if dt.IsFloat() != astype.IsFloat() {
		return nil, fmt.Errorf("%w: delta between %s and %s elements", errs.ErrInvalidTypeSpec, dt.Kind(), astype.Kind())
	}

	return &Codec{dtype: dt, astype: astype}, nil
}

func fromConfig(cfg codec.Config) (codec.Codec, error) {
	dtSpec, ok := cfg.String("dtype")
	if !ok {
		return nil, fmt.Errorf("%w: delta requires a dtype", errs.ErrInvalidConfig)
	}

	dt, err := dtype.Parse(dtSpec)
	if err != nil {
		return nil, err
	}

	astype := dt
	if atSpec, ok := cfg.String("astype"); ok {
		astype, err = dtype.Parse(atSpec)
		if err != nil {
			return nil, err
		}
	}

	return New(dt, astype)
}

// ID returns the codec identifier "delta".
func (c *Codec) ID() string {
	return ID
}

// DecodedType returns the element type of decoded data.
func (c *Codec) DecodedType() dtype.DType {
	return c.dtype
}

// EncodedType returns the element type differences are stored as.
func (c *Codec) EncodedType() dtype.DType {
	return c.astype
}

// Encode stores the first element of src followed by neighbor differences,
// all in the encoded element type.
//
// Returns:
//   - []byte: Newly allocated difference array with the same element count
//   - error: errs.ErrBufferSize when len(src) is not a whole number of
//     elements
func (c *Codec) Encode(src []byte) ([]byte, error) {
	n, err := c.dtype.Count(len(src))
	if err != nil {
		return nil, err
	}

	enc := buffer.Alloc(n, c.astype)
	if n == 0 {
		return enc, nil
	}

	if c.dtype.IsFloat() {
		in, err := buffer.ViewFloats(src, c.dtype)
		if err != nil {
			return nil, err
		}
		out, err := buffer.ViewFloats(enc, c.astype)
		if err != nil {
			return nil, err
		}

		out.SetFloat(0, in.Float(0))
		for i := 1; i < n; i++ {
			out.SetFloat(i, c.narrow(in.Float(i)-in.Float(i-1)))
		}

		return enc, nil
	}

	in, err := buffer.ViewInts(src, c.dtype)
	if err != nil {
		return nil, err
	}
	out, err := buffer.ViewInts(enc, c.astype)
	if err != nil {
		return nil, err
	}

	out.SetUint(0, c.extend(in.Uint(0)))
	for i := 1; i < n; i++ {
		// Differences wrap at the decoded width before the store truncates
		// them to the encoded width.
		out.SetUint(i, c.extend(in.Uint(i)-in.Uint(i-1)))
	}

	return enc, nil
}

// Decode reverses Encode by accumulating the stored differences in the
// arithmetic of the decoded element type.
//
// Parameters:
//   - src: Encoded difference array
//   - dst: Optional destination; must hold exactly the decoded size
//
// Returns:
//   - []byte: Decoded array; dst when it was supplied
//   - error: errs.ErrBufferSize when len(src) is not a whole number of
//     elements, errs.ErrInvalidDstSize when dst has the wrong length
func (c *Codec) Decode(src, dst []byte) ([]byte, error) {
	n, err := c.astype.Count(len(src))
	if err != nil {
		return nil, err
	}

	size := n * c.dtype.ItemSize()
	if dst == nil {
		dst = buffer.Alloc(n, c.dtype)
	} else if len(dst) != size {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), size)
	}

	if n == 0 {
		return dst, nil
	}

	if c.dtype.IsFloat() {
		in, err := buffer.ViewFloats(src, c.astype)
		if err != nil {
			return nil, err
		}
		out, err := buffer.ViewFloats(dst, c.dtype)
		if err != nil {
			return nil, err
		}

		acc := 0.0
		for i := 0; i < n; i++ {
			acc = c.narrow(acc + in.Float(i))
			out.SetFloat(i, acc)
		}

		return dst, nil
	}

	in, err := buffer.ViewInts(src, c.astype)
	if err != nil {
		return nil, err
	}
	out, err := buffer.ViewInts(dst, c.dtype)
	if err != nil {
		return nil, err
	}

	var acc uint64
	for i := 0; i < n; i++ {
		acc += uint64(in.Int(i))
		out.SetUint(i, acc)
	}

	return dst, nil
}

// Config returns the configuration record of the codec:
//
//	{"id": "delta", "dtype": "<i8", "astype": "|i1"}
func (c *Codec) Config() codec.Config {
	return codec.Config{
		"id":     ID,
		"dtype":  c.dtype.String(),
		"astype": c.astype.String(),
	}
}

// extend reduces a 64-bit value to the decoded width and extends it back,
// so the store into the encoded type truncates the same value the decoded
// arithmetic produced.
func (c *Codec) extend(u uint64) uint64 {
	switch c.dtype.Size() {
	case 1:
		if c.dtype.Signed() {
			return uint64(int64(int8(u)))
		}

		return uint64(uint8(u))
	case 2:
		if c.dtype.Signed() {
			return uint64(int64(int16(u)))
		}

		return uint64(uint16(u))
	case 4:
		if c.dtype.Signed() {
			return uint64(int64(int32(u)))
		}

		return uint64(uint32(u))
	default:
		return u
	}
}

// narrow rounds intermediate float results to the decoded precision.
func (c *Codec) narrow(f float64) float64 {
	if c.dtype.Size() == 4 {
		return float64(float32(f))
	}

	return f
}
