// Package arco provides reversible buffer-to-buffer codecs for array data
// and a pipeline layer that chains them into self-describing containers.
//
// Arco targets columnar and array workloads where values share one fixed
// element type (8-byte strings, 64-bit integers, doubles) and transform
// well: categorical values shrink to small integer codes, smooth series
// shrink to deltas, and byte shuffling groups similar bytes ahead of
// general-purpose compression.
//
// # Core Features
//
//   - Categorical encoding to compact integer codes with a reserved zero sentinel
//   - Delta, shuffle and checksum filters for numeric and raw byte buffers
//   - Zstd, LZ4, S2, gzip and zlib compression behind one codec interface
//   - JSON configuration records that reconstruct any codec via a registry
//   - Sealed containers bundling pipeline configuration, checksum and payload
//   - NumPy-style type specs ("<i4", "|S8") describing element layout
//
// # Basic Usage
//
// Encoding categorical data:
//
//	import "github.com/arloliu/arco"
//
//	// Fixed-width 8-byte string elements, one of three known categories.
//	c, _ := arco.NewCategorize([]string{"compute", "storage", "network"}, "|S8")
//
//	// src holds len/8 elements; enc holds one code byte per element.
//	enc, _ := c.Encode(src)
//
//	// Decoding restores the original fixed-width elements. Values that
//	// matched no label come back as zero bytes.
//	dec, _ := c.Decode(enc, nil)
//
// Chaining codecs and sealing the result into a container:
//
//	c, _ := arco.NewCategorize(labels, "|S8")
//	z, _ := compress.NewZstd(compress.DefaultZstdLevel)
//
//	sealed, _ := arco.Seal(src, c, z)
//
//	// Later, possibly in another process: the container alone is enough.
//	restored, _ := arco.Unseal(sealed)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec,
// categorize and pipeline packages, simplifying the most common use cases.
// For fine-grained control, e.g. custom encoded types, caller-supplied
// decode buffers or pipeline introspection, use those packages directly.
//
// Importing this package registers every built-in codec, so configuration
// records produced elsewhere can be reconstructed with FromConfig or
// FromJSON without further imports.
package arco

import (
	"github.com/arloliu/arco/categorize"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/pipeline"

	// Register the remaining built-in codecs with the shared registry.
	_ "github.com/arloliu/arco/checksum"
	_ "github.com/arloliu/arco/compress"
	_ "github.com/arloliu/arco/delta"
	_ "github.com/arloliu/arco/shuffle"
)

// NewCategorize creates a categorize codec from labels and a type spec
// string.
//
// The spec uses NumPy notation: a byte-order character ('<' little endian,
// '>' big endian, '|' not applicable), a kind character ('b' bool, 'i'
// signed, 'u' unsigned, 'f' float, 'S' byte string, 'U' text) and a size.
// "|S8" describes 8-byte strings, "<i4" little-endian 32-bit integers.
//
// Labels are given in code order: the value equal to labels[0] encodes as
// 1, labels[1] as 2, and so on. Code 0 is reserved for values that match
// no label. Codes are stored as single unsigned bytes unless
// categorize.WithEncodedType selects a wider integer type.
//
// Parameters:
//   - labels: Category labels in code order
//   - dtypeSpec: Element type of the decoded data, e.g. "|S8"
//   - opts: Optional settings (see categorize.Option)
//
// Returns:
//   - *categorize.Codec: The created codec.
//   - error: An error if the type spec or a label is invalid.
//
// Example:
//
//	c, err := arco.NewCategorize([]string{"red", "green", "blue"}, "|S5",
//	    categorize.WithEncodedType(dtype.MustParse("<u2")),
//	)
func NewCategorize(labels []string, dtypeSpec string, opts ...categorize.Option) (*categorize.Codec, error) {
	dt, err := dtype.Parse(dtypeSpec)
	if err != nil {
		return nil, err
	}

	return categorize.New(labels, dt, opts...)
}

// FromConfig reconstructs a codec from its configuration record.
//
// The record's "id" field selects the implementation; the remaining fields
// are interpreted by that codec. Records typically come from Config() on a
// live codec or from a sealed container.
//
// Parameters:
//   - cfg: Configuration record with at least an "id" field
//
// Returns:
//   - codec.Codec: The reconstructed codec.
//   - error: errs.ErrUnknownCodec for an unregistered id, or the codec's
//     own validation error.
func FromConfig(cfg codec.Config) (codec.Codec, error) {
	return codec.FromConfig(cfg)
}

// FromJSON reconstructs a codec from a JSON configuration object.
//
// This is the JSON counterpart of FromConfig, accepting output of
// marshaling a codec's Config().
//
// Example:
//
//	c, err := arco.FromJSON([]byte(`{"id": "zstd", "level": 7}`))
func FromJSON(data []byte) (codec.Codec, error) {
	return codec.FromJSON(data)
}

// CodecIDs returns the sorted identifiers of all registered codecs.
//
// With this package imported the list covers every built-in codec:
// categorize, delta, shuffle, xxh64, zstd, lz4, s2, gzip, zlib and none.
func CodecIDs() []string {
	return codec.IDs()
}

// NewPipeline creates a pipeline that applies stages in order on encode
// and in reverse order on decode.
//
// Stage order follows the data: filters that expose structure (categorize,
// delta, shuffle) come first, compression next, and a checksum stage last
// if the encoded bytes should carry their own integrity check.
//
// Parameters:
//   - stages: Codecs in encode order; at least one is required
//
// Returns:
//   - *pipeline.Pipeline: The created pipeline.
//   - error: An error if no stage or a nil stage is given.
//
// Example:
//
//	p, err := arco.NewPipeline(categorizeCodec, shuffleCodec, zstdCodec)
func NewPipeline(stages ...codec.Codec) (*pipeline.Pipeline, error) {
	return pipeline.New(stages...)
}

// Seal encodes src through the given stages and wraps the result in a
// self-describing container.
//
// The container stores the pipeline configuration and a checksum of the
// encoded payload, so Unseal can restore the original bytes with no out of
// band knowledge. See the pipeline package for the container layout.
//
// Parameters:
//   - src: Raw input bytes
//   - stages: Codecs in encode order; at least one is required
//
// Returns:
//   - []byte: The sealed container.
//   - error: An error if the pipeline is invalid or a stage fails.
//
// Example:
//
//	sealed, err := arco.Seal(data, categorizeCodec, zstdCodec)
func Seal(src []byte, stages ...codec.Codec) ([]byte, error) {
	p, err := pipeline.New(stages...)
	if err != nil {
		return nil, err
	}

	return p.Seal(src)
}

// Open parses a sealed container and reconstructs its pipeline without
// decoding the payload.
//
// Use this to inspect a container's stages, or to decode its payload later
// with a caller-supplied destination buffer. The returned payload slice
// aliases data.
//
// Returns:
//   - *pipeline.Pipeline: The reconstructed pipeline.
//   - []byte: The still-encoded payload.
//   - error: An error if the container is malformed or references an
//     unregistered codec.
func Open(data []byte) (*pipeline.Pipeline, []byte, error) {
	return pipeline.Open(data)
}

// Unseal restores the original bytes from a sealed container.
//
// The container is validated (header fields, payload checksum, stage
// configuration) before any stage runs. For decoding into a caller-supplied
// buffer use pipeline.Unseal directly.
//
// Example:
//
//	restored, err := arco.Unseal(sealed)
func Unseal(data []byte) ([]byte, error) {
	return pipeline.Unseal(data, nil)
}
