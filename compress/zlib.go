package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
	"github.com/arloliu/arco/internal/pool"
)

// ZlibID is the registry identifier of the zlib codec.
const ZlibID = "zlib"

// DefaultZlibLevel is the compression level used when none is configured.
const DefaultZlibLevel = 6

func init() {
	codec.Register(ZlibID, func(cfg codec.Config) (codec.Codec, error) {
		level := DefaultZlibLevel
		if l, ok := cfg.Int("level"); ok {
			level = l
		}

		return NewZlib(level)
	})
}

// zlibWriterPools pools zlib writers per compression level.
var zlibWriterPools [zlib.BestCompression + 1]sync.Pool

// zlibReaderPool pools zlib readers, rebound to new input through the
// zlib.Resetter every implementation of zlib.NewReader satisfies.
var zlibReaderPool sync.Pool

func init() {
	for i := range zlibWriterPools {
		level := i
		zlibWriterPools[i].New = func() any {
			w, err := zlib.NewWriterLevel(nil, level)
			if err != nil {
				// This should never happen with valid options
				panic(fmt.Sprintf("failed to create zlib writer for pool: %v", err))
			}
			return w
		}
	}
}

// Zlib compresses payloads as a zlib stream, the DEFLATE format wrapped
// with the RFC 1950 header and Adler-32 trailer.
type Zlib struct {
	level int
}

var _ codec.Codec = (*Zlib)(nil)

// NewZlib creates a zlib codec with the given compression level.
//
// Returns:
//   - *Zlib: Ready-to-use codec
//   - error: errs.ErrInvalidConfig when level is outside [0, 9]
func NewZlib(level int) (*Zlib, error) {
	if level < zlib.NoCompression || level > zlib.BestCompression {
		return nil, fmt.Errorf("%w: zlib level %d outside [0, 9]", errs.ErrInvalidConfig, level)
	}

	return &Zlib{level: level}, nil
}

// ID returns the codec identifier "zlib".
func (c *Zlib) ID() string {
	return ZlibID
}

// Level returns the configured compression level.
func (c *Zlib) Level() int {
	return c.level
}

// Encode returns src as a zlib stream, using a pooled writer for the
// configured level.
func (c *Zlib) Encode(src []byte) ([]byte, error) {
	staging := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(staging)

	zw, _ := zlibWriterPools[c.level].Get().(*zlib.Writer)
	defer zlibWriterPools[c.level].Put(zw)

	zw.Reset(staging)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}

	return append([]byte(nil), staging.Bytes()...), nil
}

// Decode decompresses a zlib stream produced by Encode.
//
// Parameters:
//   - src: Zlib stream
//   - dst: Optional destination; must hold exactly the decompressed size
//
// Returns:
//   - []byte: Decompressed payload; dst when it was supplied
//   - error: A wrapped library error for corrupt streams,
//     errs.ErrInvalidDstSize when dst has the wrong length
func (c *Zlib) Decode(src, dst []byte) ([]byte, error) {
	if len(src) == 0 {
		return buffer.CopyOut(dst, nil)
	}

	var zr io.ReadCloser
	if pooled, _ := zlibReaderPool.Get().(io.ReadCloser); pooled != nil {
		zr = pooled
		if err := zr.(zlib.Resetter).Reset(bytes.NewReader(src), nil); err != nil {
			return nil, fmt.Errorf("zlib decompression failed: %w", err)
		}
	} else {
		var err error
		zr, err = zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("zlib decompression failed: %w", err)
		}
	}
	defer zlibReaderPool.Put(zr)

	staging := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(staging)

	if _, err := io.Copy(staging, zr); err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	return buffer.CopyOut(dst, staging.Bytes())
}

// Config returns the configuration record of the codec:
//
//	{"id": "zlib", "level": 6}
func (c *Zlib) Config() codec.Config {
	return codec.Config{
		"id":    ZlibID,
		"level": c.level,
	}
}
