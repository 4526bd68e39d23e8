package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
	"github.com/arloliu/arco/internal/pool"
)

// GzipID is the registry identifier of the gzip codec.
const GzipID = "gzip"

// DefaultGzipLevel is the compression level used when none is configured.
const DefaultGzipLevel = 6

func init() {
	codec.Register(GzipID, func(cfg codec.Config) (codec.Codec, error) {
		level := DefaultGzipLevel
		if l, ok := cfg.Int("level"); ok {
			level = l
		}

		return NewGzip(level)
	})
}

// gzipWriterPools pools gzip writers per compression level. Writers carry
// sizable internal state, so reuse matters more than for readers.
var gzipWriterPools [gzip.BestCompression + 1]sync.Pool

// gzipReaderPool pools gzip readers; Reset rebinds one to new input.
var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

func init() {
	for i := range gzipWriterPools {
		level := i
		gzipWriterPools[i].New = func() any {
			w, err := gzip.NewWriterLevel(nil, level)
			if err != nil {
				// This should never happen with valid options
				panic(fmt.Sprintf("failed to create gzip writer for pool: %v", err))
			}
			return w
		}
	}
}

// Gzip compresses payloads as a single-member gzip stream.
type Gzip struct {
	level int
}

var _ codec.Codec = (*Gzip)(nil)

// NewGzip creates a gzip codec with the given compression level.
//
// Returns:
//   - *Gzip: Ready-to-use codec
//   - error: errs.ErrInvalidConfig when level is outside [0, 9]
func NewGzip(level int) (*Gzip, error) {
	if level < gzip.NoCompression || level > gzip.BestCompression {
		return nil, fmt.Errorf("%w: gzip level %d outside [0, 9]", errs.ErrInvalidConfig, level)
	}

	return &Gzip{level: level}, nil
}

// ID returns the codec identifier "gzip".
func (c *Gzip) ID() string {
	return GzipID
}

// Level returns the configured compression level.
func (c *Gzip) Level() int {
	return c.level
}

// Encode returns src as a gzip stream, using a pooled writer for the
// configured level.
func (c *Gzip) Encode(src []byte) ([]byte, error) {
	staging := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(staging)

	zw, _ := gzipWriterPools[c.level].Get().(*gzip.Writer)
	defer gzipWriterPools[c.level].Put(zw)

	zw.Reset(staging)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return append([]byte(nil), staging.Bytes()...), nil
}

// Decode decompresses a gzip stream produced by Encode.
//
// Parameters:
//   - src: Gzip stream
//   - dst: Optional destination; must hold exactly the decompressed size
//
// Returns:
//   - []byte: Decompressed payload; dst when it was supplied
//   - error: A wrapped library error for corrupt streams,
//     errs.ErrInvalidDstSize when dst has the wrong length
func (c *Gzip) Decode(src, dst []byte) ([]byte, error) {
	if len(src) == 0 {
		return buffer.CopyOut(dst, nil)
	}

	zr, _ := gzipReaderPool.Get().(*gzip.Reader)
	defer gzipReaderPool.Put(zr)

	if err := zr.Reset(bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	staging := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(staging)

	if _, err := io.Copy(staging, zr); err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	return buffer.CopyOut(dst, staging.Bytes())
}

// Config returns the configuration record of the codec:
//
//	{"id": "gzip", "level": 6}
func (c *Gzip) Config() codec.Config {
	return codec.Config{
		"id":    GzipID,
		"level": c.level,
	}
}
