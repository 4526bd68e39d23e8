// Package checksum implements a codec that guards a payload with an XXH64
// digest.
//
// Encoding prefixes the payload with its 8-byte little-endian XXH64 hash;
// decoding recomputes the hash, rejects the buffer on mismatch and strips
// the prefix. Placed last in a pipeline it detects corruption of the stored
// form before any upstream stage sees the damaged bytes.
package checksum

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
)

// ID is the registry identifier of the XXH64 checksum codec.
const ID = "xxh64"

// DigestSize is the size of the checksum prefix in bytes.
const DigestSize = 8

func init() {
	codec.Register(ID, func(cfg codec.Config) (codec.Codec, error) {
		return New(), nil
	})
}

// Codec prefixes payloads with their XXH64 digest.
//
// The zero value is ready to use and safe for concurrent use.
type Codec struct{}

var _ codec.Codec = (*Codec)(nil)

// New creates an XXH64 checksum codec.
func New() *Codec {
	return &Codec{}
}

// ID returns the codec identifier "xxh64".
func (c *Codec) ID() string {
	return ID
}

// Encode returns the XXH64 digest of src in little-endian order followed by
// src itself.
func (c *Codec) Encode(src []byte) ([]byte, error) {
	enc := make([]byte, DigestSize+len(src))
	binary.LittleEndian.PutUint64(enc, xxhash.Sum64(src))
	copy(enc[DigestSize:], src)

	return enc, nil
}

// Decode verifies the digest prefix of src and returns the payload behind
// it.
//
// Parameters:
//   - src: Digest-prefixed buffer produced by Encode
//   - dst: Optional destination; must hold exactly the payload size
//
// Returns:
//   - []byte: Verified payload; dst when it was supplied
//   - error: errs.ErrShortPayload when src is shorter than the digest,
//     errs.ErrChecksumMismatch when the payload does not hash to the
//     stored digest, errs.ErrInvalidDstSize when dst has the wrong length
func (c *Codec) Decode(src, dst []byte) ([]byte, error) {
	if len(src) < DigestSize {
		return nil, fmt.Errorf("%w: have %d bytes, checksum takes %d", errs.ErrShortPayload, len(src), DigestSize)
	}

	want := binary.LittleEndian.Uint64(src)
	payload := src[DigestSize:]
	if got := xxhash.Sum64(payload); got != want {
		return nil, fmt.Errorf("%w: stored %#016x, computed %#016x", errs.ErrChecksumMismatch, want, got)
	}

	return buffer.CopyOut(dst, payload)
}

// Config returns the configuration record of the codec:
//
//	{"id": "xxh64"}
func (c *Codec) Config() codec.Config {
	return codec.Config{"id": ID}
}
