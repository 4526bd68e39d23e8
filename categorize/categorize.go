package categorize

import (
	"fmt"
	"strings"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/errs"
	"github.com/arloliu/arco/internal/options"
)

// ID is the registry identifier of the categorize codec.
const ID = "categorize"

func init() {
	codec.Register(ID, fromConfig)
}

// Codec encodes arrays of categorical fixed-width values as compact integer
// codes. See the package documentation for the encoding rules.
//
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	labels labelSet
	dtype  dtype.DType
	astype dtype.DType
}

var _ codec.Codec = (*Codec)(nil)

var defaultEncodedType = dtype.MustParse("|u1")

// Option configures a Codec during construction.
type Option = options.Option[*Codec]

// WithEncodedType sets the element type codes are stored as. The type must
// be a signed or unsigned integer; the default is |u1.
//
// The encoded width is not validated against the number of labels. With
// more labels than the width can distinguish, stored codes wrap around
// silently and positions whose wrapped code collides with a smaller valid
// code decode as the wrong label. Choose a width with room for the label
// count plus the zero sentinel.
func WithEncodedType(at dtype.DType) Option {
	return options.New(func(c *Codec) error {
		if !at.IsInteger() {
			return fmt.Errorf("%w: encoded type %s is not an integer type", errs.ErrInvalidTypeSpec, at)
		}
		c.astype = at

		return nil
	})
}

// New creates a categorize codec for the given labels and decoded element
// type.
//
// Labels are given as strings regardless of the element kind: byte string
// and text labels are used directly, while bool, integer and float labels
// are parsed from their text form. The position of a label determines its
// code, position i encoding as i+1; code 0 is reserved for values that match
// no label.
//
// Parameters:
//   - labels: Category labels in code order
//   - dt: Element type of the decoded data
//   - opts: Optional settings, e.g. WithEncodedType
//
// Returns:
//   - *Codec: Ready-to-use codec
//   - error: errs.ErrInvalidTypeSpec or errs.ErrInvalidLabel on unusable
//     construction input
func New(labels []string, dt dtype.DType, opts ...Option) (*Codec, error) {
	c := &Codec{dtype: dt, astype: defaultEncodedType}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	ls, err := labelsFromStrings(labels, dt)
	if err != nil {
		return nil, err
	}
	c.labels = ls

	return c, nil
}

// NewRaw creates a categorize codec from labels given as fixed-width
// element images. Every image must be exactly one element of dt, e.g. 7
// bytes for |S7 or 8 bytes for <i8. This avoids text parsing when labels
// already exist in their binary form.
func NewRaw(labels [][]byte, dt dtype.DType, opts ...Option) (*Codec, error) {
	c := &Codec{dtype: dt, astype: defaultEncodedType}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	ls, err := labelsFromRaw(labels, dt)
	if err != nil {
		return nil, err
	}
	c.labels = ls

	return c, nil
}

func fromConfig(cfg codec.Config) (codec.Codec, error) {
	dtSpec, ok := cfg.String("dtype")
	if !ok {
		return nil, fmt.Errorf("%w: categorize requires a dtype", errs.ErrInvalidConfig)
	}

	dt, err := dtype.Parse(dtSpec)
	if err != nil {
		return nil, err
	}

	astype := defaultEncodedType
	if atSpec, ok := cfg.String("astype"); ok {
		astype, err = dtype.Parse(atSpec)
		if err != nil {
			return nil, err
		}
		if !astype.IsInteger() {
			return nil, fmt.Errorf("%w: encoded type %s is not an integer type", errs.ErrInvalidTypeSpec, astype)
		}
	}

	rawLabels, ok := cfg.Slice("labels")
	if !ok {
		return nil, fmt.Errorf("%w: categorize requires labels", errs.ErrInvalidConfig)
	}

	ls, err := labelsFromValues(rawLabels, dt)
	if err != nil {
		return nil, err
	}

	return &Codec{labels: ls, dtype: dt, astype: astype}, nil
}

// ID returns the codec identifier "categorize".
func (c *Codec) ID() string {
	return ID
}

// DecodedType returns the element type of decoded data.
func (c *Codec) DecodedType() dtype.DType {
	return c.dtype
}

// EncodedType returns the element type codes are stored as.
func (c *Codec) EncodedType() dtype.DType {
	return c.astype
}

// NumLabels returns the number of labels, including unmatchable ones.
func (c *Codec) NumLabels() int {
	return c.labels.n
}

// Encode maps src, viewed as an array of the decoded element type, to an
// equally long array of integer codes.
//
// Each element equal to a label receives that label's code; elements equal
// to no label receive 0. When several labels are equal to each other the
// later one wins, because label scans run in order and overwrite earlier
// matches. Codes are stored with truncating writes, so label counts beyond
// the encoded width wrap around silently.
//
// The scan runs in O(len(src) x number of labels).
//
// Returns:
//   - []byte: Newly allocated code array
//   - error: errs.ErrBufferSize when len(src) is not a whole number of
//     elements
func (c *Codec) Encode(src []byte) ([]byte, error) {
	n, err := c.dtype.Count(len(src))
	if err != nil {
		return nil, err
	}

	enc := buffer.Alloc(n, c.astype)
	codes, err := buffer.ViewInts(enc, c.astype)
	if err != nil {
		return nil, err
	}

	switch c.dtype.Kind() {
	case dtype.KindBytes:
		view, err := buffer.ViewBytes(src, c.dtype)
		if err != nil {
			return nil, err
		}
		for li, label := range c.labels.bytes {
			code := uint64(li + 1)
			for i := 0; i < n; i++ {
				if view.EqualAt(i, label) {
					codes.SetUint(i, code)
				}
			}
		}
	case dtype.KindText:
		view, err := buffer.ViewText(src, c.dtype)
		if err != nil {
			return nil, err
		}
		for li, label := range c.labels.texts {
			code := uint64(li + 1)
			for i := 0; i < n; i++ {
				if view.EqualAt(i, label) {
					codes.SetUint(i, code)
				}
			}
		}
	case dtype.KindBool:
		view, err := buffer.ViewInts(src, c.dtype)
		if err != nil {
			return nil, err
		}
		for li, label := range c.labels.uints {
			truth := label != 0
			code := uint64(li + 1)
			for i := 0; i < n; i++ {
				if (view.Uint(i) != 0) == truth {
					codes.SetUint(i, code)
				}
			}
		}
	case dtype.KindInt:
		view, err := buffer.ViewInts(src, c.dtype)
		if err != nil {
			return nil, err
		}
		for li, label := range c.labels.sints {
			if c.labels.isDead(li) {
				continue
			}
			code := uint64(li + 1)
			for i := 0; i < n; i++ {
				if view.Int(i) == label {
					codes.SetUint(i, code)
				}
			}
		}
	case dtype.KindUint:
		view, err := buffer.ViewInts(src, c.dtype)
		if err != nil {
			return nil, err
		}
		for li, label := range c.labels.uints {
			if c.labels.isDead(li) {
				continue
			}
			code := uint64(li + 1)
			for i := 0; i < n; i++ {
				if view.Uint(i) == label {
					codes.SetUint(i, code)
				}
			}
		}
	case dtype.KindFloat:
		view, err := buffer.ViewFloats(src, c.dtype)
		if err != nil {
			return nil, err
		}
		for li, label := range c.labels.floats {
			code := uint64(li + 1)
			for i := 0; i < n; i++ {
				// IEEE equality: NaN labels match nothing.
				if view.Float(i) == label {
					codes.SetUint(i, code)
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported element kind", errs.ErrInvalidTypeSpec)
	}

	return enc, nil
}

// Decode maps src, viewed as an array of integer codes, back to an array of
// the decoded element type.
//
// Code i+1 materializes label i; code 0 and codes beyond the label count
// leave the zero value, which reads as 0 for numeric elements and as the
// empty string for byte string and text elements. Decoding into a supplied
// dst produces exactly the same bytes as the allocating path.
//
// Parameters:
//   - src: Encoded code array
//   - dst: Optional destination; must hold exactly the decoded size
//
// Returns:
//   - []byte: Decoded array; dst when it was supplied
//   - error: errs.ErrBufferSize when len(src) is not a whole number of
//     codes, errs.ErrInvalidDstSize when dst has the wrong length
func (c *Codec) Decode(src, dst []byte) ([]byte, error) {
	n, err := c.astype.Count(len(src))
	if err != nil {
		return nil, err
	}

	codes, err := buffer.ViewInts(src, c.astype)
	if err != nil {
		return nil, err
	}

	size := n * c.dtype.ItemSize()
	if dst == nil {
		dst = buffer.Alloc(n, c.dtype)
	} else {
		if len(dst) != size {
			return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), size)
		}
		// Unmatched positions must decode to the zero value here too.
		clear(dst)
	}

	switch c.dtype.Kind() {
	case dtype.KindBytes:
		out, err := buffer.ViewBytes(dst, c.dtype)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if li, ok := c.labelIndex(codes, i); ok {
				out.Set(i, c.labels.bytes[li])
			}
		}
	case dtype.KindText:
		out, err := buffer.ViewText(dst, c.dtype)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if li, ok := c.labelIndex(codes, i); ok {
				out.Set(i, c.labels.texts[li])
			}
		}
	case dtype.KindBool, dtype.KindUint:
		out, err := buffer.ViewInts(dst, c.dtype)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if li, ok := c.labelIndex(codes, i); ok {
				out.SetUint(i, c.labels.uints[li])
			}
		}
	case dtype.KindInt:
		out, err := buffer.ViewInts(dst, c.dtype)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if li, ok := c.labelIndex(codes, i); ok {
				out.SetInt(i, c.labels.sints[li])
			}
		}
	case dtype.KindFloat:
		out, err := buffer.ViewFloats(dst, c.dtype)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if li, ok := c.labelIndex(codes, i); ok {
				out.SetFloat(i, c.labels.floats[li])
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported element kind", errs.ErrInvalidTypeSpec)
	}

	return dst, nil
}

// labelIndex resolves the code at position i to a label position.
// Signed code types are compared sign-extended, so wrapped negative codes
// resolve to no label rather than aliasing a large valid code.
func (c *Codec) labelIndex(codes buffer.Ints, i int) (int, bool) {
	if codes.Signed() {
		v := codes.Int(i)
		if v >= 1 && v <= int64(c.labels.n) {
			return int(v - 1), true
		}

		return 0, false
	}

	u := codes.Uint(i)
	if u >= 1 && u <= uint64(c.labels.n) {
		return int(u - 1), true
	}

	return 0, false
}

// Config returns the configuration record of the codec.
//
// Byte string labels are exported as text, so records built from arbitrary
// binary labels require them to be valid UTF-8 to round-trip. The record
// reconstructs an identically behaving codec through codec.FromConfig.
func (c *Codec) Config() codec.Config {
	return codec.Config{
		"id":     ID,
		"labels": c.exportLabels(),
		"dtype":  c.dtype.String(),
		"astype": c.astype.String(),
	}
}

func (c *Codec) exportLabels() []any {
	labels := make([]any, c.labels.n)

	switch c.dtype.Kind() {
	case dtype.KindBytes:
		for i, b := range c.labels.bytes {
			labels[i] = string(b)
		}
	case dtype.KindText:
		for i, s := range c.labels.texts {
			labels[i] = s
		}
	case dtype.KindBool:
		for i, u := range c.labels.uints {
			labels[i] = u != 0
		}
	case dtype.KindInt:
		for i, v := range c.labels.sints {
			labels[i] = v
		}
	case dtype.KindUint:
		for i, u := range c.labels.uints {
			labels[i] = u
		}
	case dtype.KindFloat:
		for i, f := range c.labels.floats {
			labels[i] = f
		}
	}

	return labels
}

// String returns a short description with at most three labels shown.
func (c *Codec) String() string {
	labels := c.exportLabels()
	shown := labels
	if len(shown) > 3 {
		shown = shown[:3]
	}

	parts := make([]string, 0, len(shown)+1)
	for _, l := range shown {
		parts = append(parts, fmt.Sprintf("%v", l))
	}
	if len(labels) > 3 {
		parts = append(parts, "...")
	}

	return fmt.Sprintf("Categorize(dtype=%s, astype=%s, labels=[%s])", c.dtype, c.astype, strings.Join(parts, ", "))
}
