//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/errs"
)

func zstdCompress(src []byte, level int) ([]byte, error) {
	return gozstd.CompressLevel(nil, src, level), nil
}

func zstdDecompress(src, dst []byte) ([]byte, error) {
	if len(src) == 0 {
		return buffer.CopyOut(dst, nil)
	}

	if dst == nil {
		decompressed, err := gozstd.Decompress(nil, src)
		if err != nil {
			return nil, fmt.Errorf("zstd decompression failed: %w", err)
		}

		return decompressed, nil
	}

	out, err := gozstd.Decompress(dst[:0], src)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) != len(dst) {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", errs.ErrInvalidDstSize, len(dst), len(out))
	}

	return dst, nil
}
