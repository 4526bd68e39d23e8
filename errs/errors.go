// Package errs defines sentinel errors shared across arco packages.
//
// All errors are exported package-level values so callers can match them
// with errors.Is after they have been wrapped with additional context.
package errs

import "errors"

// Element type and buffer errors.
var (
	// ErrInvalidTypeSpec indicates an element type string that cannot be parsed,
	// or a kind/width/order combination that is not supported.
	ErrInvalidTypeSpec = errors.New("invalid element type spec")

	// ErrKindMismatch indicates a typed view or codec was given an element type
	// of the wrong kind, e.g. a float view over a byte-string type.
	ErrKindMismatch = errors.New("element kind mismatch")

	// ErrBufferSize indicates a buffer whose length is not a whole number of
	// elements for the given element type.
	ErrBufferSize = errors.New("buffer size is not a multiple of element size")

	// ErrInvalidDstSize indicates a caller-supplied destination buffer whose
	// length does not match the required decoded size.
	ErrInvalidDstSize = errors.New("invalid destination buffer size")
)

// Codec configuration and registry errors.
var (
	// ErrUnknownCodec indicates a codec id with no registered constructor.
	ErrUnknownCodec = errors.New("unknown codec id")

	// ErrInvalidConfig indicates a configuration record that is missing required
	// keys or holds values of the wrong type.
	ErrInvalidConfig = errors.New("invalid codec configuration")

	// ErrInvalidLabel indicates a category label that cannot be represented in
	// the configured element type.
	ErrInvalidLabel = errors.New("invalid category label")
)

// Container and integrity errors.
var (
	// ErrInvalidHeaderSize indicates a container too small to hold its header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates a container whose header magic number does
	// not identify a known format version.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderFlags indicates header flag bits that violate the format,
	// such as reserved bits being set.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidConfigSize indicates a header configuration length that exceeds
	// the available data.
	ErrInvalidConfigSize = errors.New("invalid configuration size")

	// ErrStageCountMismatch indicates a header stage count that disagrees with
	// the embedded configuration.
	ErrStageCountMismatch = errors.New("stage count mismatch")

	// ErrChecksumMismatch indicates payload bytes that do not match their
	// recorded checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrShortPayload indicates a payload smaller than its framing requires.
	ErrShortPayload = errors.New("payload shorter than framing requires")

	// ErrEmptyPipeline indicates a pipeline constructed with no stages.
	ErrEmptyPipeline = errors.New("pipeline has no stages")
)
