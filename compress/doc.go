// Package compress provides the general-purpose compressor codecs of this
// module.
//
// Filter codecs such as categorize, delta and shuffle reshape typed array
// data into a more regular form; the codecs here shrink the reshaped bytes
// with standard compression algorithms. Every codec registers itself with
// the codec registry, so compressor stages reconstruct from configuration
// records exactly like filter stages:
//
//	c, err := codec.FromConfig(codec.Config{"id": "zstd", "level": 3})
//
// # Supported Algorithms
//
// **Zstandard** ("zstd")
//
//	c, err := compress.NewZstd(3)
//
// Best compression ratio of the set at moderate speed. Levels 1-22. Builds
// with cgo enabled bind the reference C library through valyala/gozstd;
// pure Go builds use pooled klauspost/compress encoders. Both emit standard
// frames that either build decodes.
//
// **LZ4** ("lz4")
//
//	c, err := compress.NewLZ4(1)
//
// Very fast decompression with moderate ratio. Payloads are stored as one
// LZ4 block behind a 4-byte little-endian prefix holding the original
// length, so decoding allocates exactly once with no retry loop.
//
// **S2** ("s2")
//
//	c := compress.NewS2()
//
// Snappy-compatible block format tuned for throughput. No parameters.
//
// **Gzip / Zlib** ("gzip", "zlib")
//
//	c, err := compress.NewGzip(6)
//	c, err := compress.NewZlib(6)
//
// DEFLATE-based formats for interoperability with external tooling that
// expects them. Levels 0-9, backed by pooled klauspost/compress writers.
//
// **None** ("none")
//
//	c := compress.NewNone()
//
// Pass-through stage for incompressible payloads and baseline comparisons.
//
// # Algorithm Selection Guide
//
// | Priority                  | Recommended | Reason                        |
// |---------------------------|-------------|-------------------------------|
// | Storage / bandwidth       | zstd        | Best compression ratio        |
// | Decode latency            | lz4         | Fastest decompression         |
// | Encode throughput         | s2          | Fastest compression           |
// | External interoperability | gzip, zlib  | Ubiquitous formats            |
// | Already-compressed data   | none        | No CPU spent for no gain      |
//
// Ratios depend heavily on what the filter stages upstream produce: the
// small integer codes from categorize and the byte planes from shuffle
// compress far better than the raw arrays they replace.
//
// # Memory Management
//
// Encoders, decoders and staging buffers are pooled per algorithm (and per
// level where the level shapes internal state), so steady-state encode and
// decode paths allocate only their results. Decode accepts an optional
// destination buffer and delivers through it when the decompressed size is
// known up front.
//
// # Thread Safety
//
// All codecs in this package are immutable after construction and safe for
// concurrent use; the pools behind them are synchronized.
package compress
