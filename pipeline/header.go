package pipeline

import (
	"fmt"

	"github.com/arloliu/arco/endian"
	"github.com/arloliu/arco/errs"
)

const (
	// FlagsMask selects the format flag bits (bits 0-3) of the Options field.
	FlagsMask = 0x000F
	// MagicNumberMask selects the container magic number (bits 4-15).
	MagicNumberMask = 0xFFF0

	// MagicV1Opt is the Options value of a version 1 container: the magic
	// number with all flag bits clear.
	MagicV1Opt = 0xAC10

	// HeaderSize is the fixed container header size in bytes.
	HeaderSize = 16
)

// Header is the fixed-size section at the start of a sealed container.
// All fields are stored little-endian regardless of the element types the
// stages inside operate on.
type Header struct {
	// Options packs the magic number over the format flag bits.
	Options uint16 // byte offset 0-1
	// StageCount is the number of codec stages in the sealed chain.
	StageCount uint8 // byte offset 2
	// Reserved is zero in version 1 containers.
	Reserved uint8 // byte offset 3
	// ConfigSize is the byte length of the configuration section that
	// follows the header.
	ConfigSize uint32 // byte offset 4-7
	// Checksum is the XXH64 digest of the payload section.
	Checksum uint64 // byte offset 8-15
}

// Parse reads the header from the start of data and validates it.
//
// Parameters:
//   - data: Byte slice starting with a container header
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize when data is shorter than
//     HeaderSize, or a validation error
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: have %d bytes, header takes %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	engine := endian.GetLittleEndianEngine()
	h.Options = engine.Uint16(data[0:2])
	h.StageCount = data[2]
	h.Reserved = data[3]
	h.ConfigSize = engine.Uint32(data[4:8])
	h.Checksum = engine.Uint64(data[8:16])

	return h.Validate()
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.GetLittleEndianEngine()
	engine.PutUint16(b[0:2], h.Options)
	b[2] = h.StageCount
	b[3] = h.Reserved
	engine.PutUint32(b[4:8], h.ConfigSize)
	engine.PutUint64(b[8:16], h.Checksum)

	return b
}

// Validate checks the fixed fields of the header.
//
// Returns:
//   - error: errs.ErrInvalidMagicNumber for a foreign magic number,
//     errs.ErrInvalidHeaderFlags for flag bits or a reserved byte this
//     version does not define
func (h *Header) Validate() error {
	if h.Options&MagicNumberMask != MagicV1Opt&MagicNumberMask {
		return fmt.Errorf("%w: %#04x", errs.ErrInvalidMagicNumber, h.Options&MagicNumberMask)
	}

	if flags := h.Options & FlagsMask; flags != 0 {
		return fmt.Errorf("%w: %#04x", errs.ErrInvalidHeaderFlags, flags)
	}

	if h.Reserved != 0 {
		return fmt.Errorf("%w: reserved byte %#02x", errs.ErrInvalidHeaderFlags, h.Reserved)
	}

	return nil
}
