package compress

import (
	"fmt"

	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
)

// ZstdID is the registry identifier of the Zstandard codec.
const ZstdID = "zstd"

// DefaultZstdLevel is the compression level used when none is configured.
const DefaultZstdLevel = 3

func init() {
	codec.Register(ZstdID, func(cfg codec.Config) (codec.Codec, error) {
		level := DefaultZstdLevel
		if l, ok := cfg.Int("level"); ok {
			level = l
		}

		return NewZstd(level)
	})
}

// Zstd compresses payloads with Zstandard.
//
// Two implementations back this codec: cgo builds bind the reference C
// library through valyala/gozstd, pure Go builds use pooled
// klauspost/compress encoders and decoders. Both produce standard zstd
// frames, so data written by one build decodes under the other.
type Zstd struct {
	level int
}

var _ codec.Codec = (*Zstd)(nil)

// NewZstd creates a Zstandard codec with the given compression level.
//
// Returns:
//   - *Zstd: Ready-to-use codec
//   - error: errs.ErrInvalidConfig when level is outside [1, 22]
func NewZstd(level int) (*Zstd, error) {
	if level < 1 || level > 22 {
		return nil, fmt.Errorf("%w: zstd level %d outside [1, 22]", errs.ErrInvalidConfig, level)
	}

	return &Zstd{level: level}, nil
}

// ID returns the codec identifier "zstd".
func (c *Zstd) ID() string {
	return ZstdID
}

// Level returns the configured compression level.
func (c *Zstd) Level() int {
	return c.level
}

// Encode returns src as a Zstandard frame.
func (c *Zstd) Encode(src []byte) ([]byte, error) {
	return zstdCompress(src, c.level)
}

// Decode decompresses a Zstandard frame.
//
// Parameters:
//   - src: Zstandard frame produced by Encode
//   - dst: Optional destination; must hold exactly the decompressed size
//
// Returns:
//   - []byte: Decompressed payload; dst when it was supplied
//   - error: A wrapped library error for corrupt frames,
//     errs.ErrInvalidDstSize when dst has the wrong length
func (c *Zstd) Decode(src, dst []byte) ([]byte, error) {
	return zstdDecompress(src, dst)
}

// Config returns the configuration record of the codec:
//
//	{"id": "zstd", "level": 3}
func (c *Zstd) Config() codec.Config {
	return codec.Config{
		"id":    ZstdID,
		"level": c.level,
	}
}
