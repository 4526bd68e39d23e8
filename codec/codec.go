// Package codec defines the buffer-to-buffer codec abstraction shared by
// every filter and compressor stage in this module, together with the
// configuration records and the registry that reconstructs codecs from them.
//
// A codec transforms a flat byte buffer into another byte buffer and back.
// Filter codecs reshape typed array data to make it more compressible;
// compressor codecs shrink arbitrary bytes. Both sides of the transform are
// driven entirely by the codec's configuration, so persisting the
// configuration record next to encoded data is sufficient to decode it
// later:
//
//	c, err := codec.FromConfig(codec.Config{
//		"id":     "categorize",
//		"labels": []any{"female", "male"},
//		"dtype":  "|S7",
//		"astype": "|u1",
//	})
package codec

// Codec is a reversible buffer-to-buffer transform.
//
// Implementations are immutable after construction: Encode and Decode are
// pure functions of their inputs and the configuration, and are safe for
// concurrent use as long as callers pass disjoint buffers.
type Codec interface {
	// ID returns the registry identifier of the codec, e.g. "categorize".
	ID() string

	// Encode transforms src and returns the encoded result.
	//
	// Memory management:
	//   - The returned slice is newly allocated and owned by the caller,
	//     except for pass-through codecs which may return src itself
	//   - src is not modified
	Encode(src []byte) ([]byte, error)

	// Decode reverses Encode.
	//
	// When dst is nil the result is newly allocated. A non-nil dst must have
	// exactly the decoded size; the decoded bytes are then delivered through
	// it and it is returned. Implementations reject a wrong-sized dst with
	// errs.ErrInvalidDstSize.
	Decode(src, dst []byte) ([]byte, error)

	// Config returns the configuration record that reconstructs this codec
	// through FromConfig. The record always carries the "id" key.
	Config() Config
}
