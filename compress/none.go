package compress

import (
	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
)

// NoneID is the registry identifier of the pass-through codec.
const NoneID = "none"

func init() {
	codec.Register(NoneID, func(cfg codec.Config) (codec.Codec, error) {
		return NewNone(), nil
	})
}

// None is the pass-through codec. It is useful as an explicit "no
// compression" stage in pipeline configurations, for baseline measurements,
// and for payloads that are already compressed or incompressible.
//
// The zero value is ready to use and safe for concurrent use.
type None struct{}

var _ codec.Codec = (*None)(nil)

// NewNone creates a pass-through codec.
func NewNone() *None {
	return &None{}
}

// ID returns the codec identifier "none".
func (c *None) ID() string {
	return NoneID
}

// Encode returns src unchanged, without copying. The result shares memory
// with the input, so callers that mutate src afterwards must copy first.
func (c *None) Encode(src []byte) ([]byte, error) {
	return src, nil
}

// Decode returns the bytes of src, copied into dst when one is supplied.
//
// Returns:
//   - []byte: The payload; dst when it was supplied
//   - error: errs.ErrInvalidDstSize when dst has the wrong length
func (c *None) Decode(src, dst []byte) ([]byte, error) {
	return buffer.CopyOut(dst, src)
}

// Config returns the configuration record of the codec:
//
//	{"id": "none"}
func (c *None) Config() codec.Config {
	return codec.Config{"id": NoneID}
}
