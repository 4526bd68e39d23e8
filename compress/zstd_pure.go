//go:build !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/errs"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation
// overhead. The klauspost/compress/zstd library is explicitly designed for
// decoder reuse: "The decoder has been designed to operate without
// allocations after a warmup."
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1), // Single-threaded for predictable performance
			zstd.WithDecoderLowmem(false),  // Use more memory for better performance
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdEncoderPools pools zstd encoders per speed tier. Configured levels
// 1-22 collapse onto the library's four tiers, so encoders stay reusable
// across codecs that map to the same tier.
var zstdEncoderPools [zstd.SpeedBestCompression + 1]sync.Pool

func init() {
	for i := range zstdEncoderPools {
		level := zstd.EncoderLevel(i)
		zstdEncoderPools[i].New = func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderCRC(false), // Frame checksums are the checksum codec's job
			)
			if err != nil {
				// This should never happen with valid options
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}
			return encoder
		}
	}
}

func zstdCompress(src []byte, level int) ([]byte, error) {
	pool := &zstdEncoderPools[zstd.EncoderLevelFromZstd(level)]
	encoder, _ := pool.Get().(*zstd.Encoder)
	defer pool.Put(encoder)

	// EncodeAll is stateless, safe to use with a pooled encoder.
	return encoder.EncodeAll(src, nil), nil
}

func zstdDecompress(src, dst []byte) ([]byte, error) {
	if len(src) == 0 {
		return buffer.CopyOut(dst, nil)
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// DecodeAll is stateless and the decoder stays reusable even after a
	// failed call.
	if dst == nil {
		decompressed, err := decoder.DecodeAll(src, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompression failed: %w", err)
		}

		return decompressed, nil
	}

	out, err := decoder.DecodeAll(src, dst[:0])
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) != len(dst) {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), len(out))
	}

	return dst, nil
}
