package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
)

// LZ4ID is the registry identifier of the LZ4 codec.
const LZ4ID = "lz4"

// DefaultLZ4Acceleration is the acceleration factor recorded when none is
// configured.
const DefaultLZ4Acceleration = 1

// lz4HeaderSize is the size of the original-length prefix in bytes.
const lz4HeaderSize = 4

// lz4MaxDecodedSize caps the decoded allocation a header can request.
// Rejecting larger claims keeps a corrupt or hostile prefix from exhausting
// memory.
const lz4MaxDecodedSize = 128 * 1024 * 1024

func init() {
	codec.Register(LZ4ID, func(cfg codec.Config) (codec.Codec, error) {
		acceleration := DefaultLZ4Acceleration
		if a, ok := cfg.Int("acceleration"); ok {
			acceleration = a
		}

		return NewLZ4(acceleration)
	})
}

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 compresses payloads as a single LZ4 block behind a 4-byte
// little-endian prefix holding the original length, so decoding can size
// its buffer exactly.
type LZ4 struct {
	acceleration int
}

var _ codec.Codec = (*LZ4)(nil)

// NewLZ4 creates an LZ4 codec.
//
// The acceleration factor is carried in the configuration record for
// compatibility with producers that honor it; the block compressor here
// always runs at its default speed.
//
// Returns:
//   - *LZ4: Ready-to-use codec
//   - error: errs.ErrInvalidConfig when acceleration is not positive
func NewLZ4(acceleration int) (*LZ4, error) {
	if acceleration < 1 {
		return nil, fmt.Errorf("%w: lz4 acceleration %d", errs.ErrInvalidConfig, acceleration)
	}

	return &LZ4{acceleration: acceleration}, nil
}

// ID returns the codec identifier "lz4".
func (c *LZ4) ID() string {
	return LZ4ID
}

// Acceleration returns the configured acceleration factor.
func (c *LZ4) Acceleration() int {
	return c.acceleration
}

// Encode returns the length of src as a 4-byte little-endian prefix
// followed by src compressed as one LZ4 block.
//
// Uses a pooled lz4.Compressor for better performance.
func (c *LZ4) Encode(src []byte) ([]byte, error) {
	if len(src) > lz4MaxDecodedSize {
		return nil, fmt.Errorf("lz4 compression failed: input %d bytes exceeds the %d limit", len(src), lz4MaxDecodedSize)
	}

	enc := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(src)))
	binary.LittleEndian.PutUint32(enc, uint32(len(src)))

	if len(src) == 0 {
		return enc[:lz4HeaderSize], nil
	}

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, enc[lz4HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return enc[:lz4HeaderSize+n], nil
}

// Decode reads the original length from the prefix of src and decompresses
// the block behind it into a buffer of exactly that size.
//
// Parameters:
//   - src: Prefixed block produced by Encode
//   - dst: Optional destination; must hold exactly the original length
//
// Returns:
//   - []byte: Decompressed payload; dst when it was supplied
//   - error: errs.ErrShortPayload when src is shorter than the prefix, a
//     wrapped library error for corrupt blocks, errs.ErrInvalidDstSize when
//     dst has the wrong length
func (c *LZ4) Decode(src, dst []byte) ([]byte, error) {
	if len(src) < lz4HeaderSize {
		return nil, fmt.Errorf("%w: have %d bytes, lz4 header takes %d", errs.ErrShortPayload, len(src), lz4HeaderSize)
	}

	claimed := binary.LittleEndian.Uint32(src)
	if uint64(claimed) > lz4MaxDecodedSize {
		return nil, fmt.Errorf("lz4 decompression failed: header claims %d bytes, limit is %d", claimed, lz4MaxDecodedSize)
	}
	size := int(claimed)

	if size == 0 {
		return buffer.CopyOut(dst, nil)
	}

	if dst == nil {
		dst = make([]byte, size)
	} else if len(dst) != size {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), size)
	}

	n, err := lz4.UncompressBlock(src[lz4HeaderSize:], dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4 decompression failed: decoded %d bytes, header claims %d", n, size)
	}

	return dst, nil
}

// Config returns the configuration record of the codec:
//
//	{"id": "lz4", "acceleration": 1}
func (c *LZ4) Config() codec.Config {
	return codec.Config{
		"id":           LZ4ID,
		"acceleration": c.acceleration,
	}
}
