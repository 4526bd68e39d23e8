package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
)

// S2ID is the registry identifier of the S2 codec.
const S2ID = "s2"

func init() {
	codec.Register(S2ID, func(cfg codec.Config) (codec.Codec, error) {
		return NewS2(), nil
	})
}

// S2 compresses payloads in the S2 block format, a Snappy-compatible
// format tuned for throughput. It takes no parameters.
//
// The zero value is ready to use and safe for concurrent use.
type S2 struct{}

var _ codec.Codec = (*S2)(nil)

// NewS2 creates an S2 codec.
func NewS2() *S2 {
	return &S2{}
}

// ID returns the codec identifier "s2".
func (c *S2) ID() string {
	return S2ID
}

// Encode returns src as an S2 block.
func (c *S2) Encode(src []byte) ([]byte, error) {
	return s2.Encode(nil, src), nil
}

// Decode decompresses an S2 block. The block format carries the decoded
// length, so a supplied dst is checked against it before decompression
// starts.
//
// Parameters:
//   - src: S2 block produced by Encode
//   - dst: Optional destination; must hold exactly the decoded length
//
// Returns:
//   - []byte: Decompressed payload; dst when it was supplied
//   - error: A wrapped library error for corrupt blocks,
//     errs.ErrInvalidDstSize when dst has the wrong length
func (c *S2) Decode(src, dst []byte) ([]byte, error) {
	size, err := s2.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	if dst != nil && len(dst) != size {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), size)
	}

	out, err := s2.Decode(dst, src)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// Config returns the configuration record of the codec:
//
//	{"id": "s2"}
func (c *S2) Config() codec.Config {
	return codec.Config{"id": S2ID}
}
