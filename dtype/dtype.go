// Package dtype describes fixed-width array element types.
//
// An element type is written as a compact type string: an optional byte order
// character, a kind character, and a decimal width. The notation is shared
// with the configuration records of the codecs in this module, so parsed
// types round-trip through String() in a canonical form.
//
// # Type Strings
//
//	<u2    little-endian unsigned 16-bit integer
//	>i8    big-endian signed 64-bit integer
//	|u1    unsigned 8-bit integer (byte order not applicable)
//	=f8    native-endian 64-bit float
//	|S7    7-byte fixed-width byte string
//	<U5    5-character fixed-width text, 4 bytes per character
//
// Byte order characters are '<' (little), '>' (big), '|' (not applicable),
// and '=' (host native). A missing order character means native. Parsing
// resolves '=' and missing orders to the concrete host order, and normalizes
// single-byte and byte-string types to '|', so String() always returns the
// canonical form:
//
//	dt, _ := dtype.Parse("=u2")
//	dt.String() // "<u2" on a little-endian host
//
// The width is measured in bytes, except for text types where it counts
// characters; each text character occupies four bytes.
package dtype

import (
	"fmt"
	"strconv"

	"github.com/arloliu/arco/endian"
	"github.com/arloliu/arco/errs"
)

// Kind identifies the family of an element type.
type Kind byte

const (
	KindBool  Kind = 'b' // KindBool represents boolean elements stored as one byte.
	KindInt   Kind = 'i' // KindInt represents signed two's-complement integers.
	KindUint  Kind = 'u' // KindUint represents unsigned integers.
	KindFloat Kind = 'f' // KindFloat represents IEEE 754 binary floats.
	KindBytes Kind = 'S' // KindBytes represents fixed-width byte strings.
	KindText  Kind = 'U' // KindText represents fixed-width text, 4 bytes per character.
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ByteOrder identifies the byte order of multi-byte elements.
type ByteOrder byte

const (
	LittleEndian  ByteOrder = '<' // LittleEndian stores the least significant byte first.
	BigEndian     ByteOrder = '>' // BigEndian stores the most significant byte first.
	NotApplicable ByteOrder = '|' // NotApplicable marks single-byte and byte-string types.
)

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	case NotApplicable:
		return "not-applicable"
	default:
		return "unknown"
	}
}

// DType is a parsed element type. The zero value is not a valid type;
// obtain instances through Parse or MustParse.
//
// DType is a small comparable value type. Two DTypes are equal exactly when
// their canonical type strings are equal.
type DType struct {
	kind  Kind
	order ByteOrder
	size  int
}

// Parse parses a type string into a DType.
//
// The accepted grammar is [<>|=] kind width, where kind is one of b, i, u,
// f, S, U and width is a positive decimal. Supported widths are 1 for b;
// 1, 2, 4 or 8 for i and u; 4 or 8 for f; and any positive width for S
// and U.
//
// Returns:
//   - DType: Parsed element type in canonical form
//   - error: errs.ErrInvalidTypeSpec if the spec cannot be parsed or names
//     an unsupported kind/width combination
func Parse(spec string) (DType, error) {
	if spec == "" {
		return DType{}, fmt.Errorf("%w: empty spec", errs.ErrInvalidTypeSpec)
	}

	rest := spec
	var order byte
	switch rest[0] {
	case '<', '>', '|', '=':
		order = rest[0]
		rest = rest[1:]
	}

	if len(rest) < 2 {
		return DType{}, fmt.Errorf("%w: %q", errs.ErrInvalidTypeSpec, spec)
	}

	kind := Kind(rest[0])
	for i := 1; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return DType{}, fmt.Errorf("%w: %q has a malformed width", errs.ErrInvalidTypeSpec, spec)
		}
	}

	size, err := strconv.Atoi(rest[1:])
	if err != nil || size < 1 {
		return DType{}, fmt.Errorf("%w: %q has a malformed width", errs.ErrInvalidTypeSpec, spec)
	}

	switch kind {
	case KindBool:
		if size != 1 {
			return DType{}, fmt.Errorf("%w: %q: bool width must be 1", errs.ErrInvalidTypeSpec, spec)
		}
	case KindInt, KindUint:
		if size != 1 && size != 2 && size != 4 && size != 8 {
			return DType{}, fmt.Errorf("%w: %q: integer width must be 1, 2, 4 or 8", errs.ErrInvalidTypeSpec, spec)
		}
	case KindFloat:
		if size != 4 && size != 8 {
			return DType{}, fmt.Errorf("%w: %q: float width must be 4 or 8", errs.ErrInvalidTypeSpec, spec)
		}
	case KindBytes, KindText:
		// any positive width
	default:
		return DType{}, fmt.Errorf("%w: %q has unknown kind %q", errs.ErrInvalidTypeSpec, spec, string(rest[0]))
	}

	return DType{kind: kind, order: normalizeOrder(order, kind, size), size: size}, nil
}

// MustParse parses a type string and panics on failure.
// It is intended for type literals in tests and package defaults.
func MustParse(spec string) DType {
	dt, err := Parse(spec)
	if err != nil {
		panic(err)
	}

	return dt
}

// normalizeOrder resolves '=' and missing orders to the host order and
// forces '|' for types whose elements occupy a single byte.
func normalizeOrder(order byte, kind Kind, size int) ByteOrder {
	if kind == KindBytes || (kind != KindText && size == 1) {
		return NotApplicable
	}

	switch order {
	case '<':
		return LittleEndian
	case '>':
		return BigEndian
	default:
		if endian.IsNativeBigEndian() {
			return BigEndian
		}

		return LittleEndian
	}
}

// Kind returns the element kind.
func (d DType) Kind() Kind {
	return d.kind
}

// Order returns the byte order in canonical form.
func (d DType) Order() ByteOrder {
	return d.order
}

// Size returns the declared width: bytes per element for numeric and byte
// string kinds, characters per element for text.
func (d DType) Size() int {
	return d.size
}

// ItemSize returns the number of bytes each element occupies in a buffer.
func (d DType) ItemSize() int {
	if d.kind == KindText {
		return 4 * d.size
	}

	return d.size
}

// Count returns the number of elements in a buffer of n bytes.
//
// Returns:
//   - int: Element count
//   - error: errs.ErrBufferSize if n is not a multiple of ItemSize
func (d DType) Count(n int) (int, error) {
	item := d.ItemSize()
	if item <= 0 {
		return 0, fmt.Errorf("%w: zero element type", errs.ErrInvalidTypeSpec)
	}

	if n%item != 0 {
		return 0, fmt.Errorf("%w: %d bytes with %d-byte elements", errs.ErrBufferSize, n, item)
	}

	return n / item, nil
}

// Engine returns the endian engine matching the element byte order.
// Types with no applicable order get the host engine.
func (d DType) Engine() endian.EndianEngine {
	switch d.order {
	case LittleEndian:
		return endian.GetLittleEndianEngine()
	case BigEndian:
		return endian.GetBigEndianEngine()
	default:
		return endian.Native()
	}
}

// IsInteger reports whether the kind is a signed or unsigned integer.
func (d DType) IsInteger() bool {
	return d.kind == KindInt || d.kind == KindUint
}

// IsFloat reports whether the kind is a float.
func (d DType) IsFloat() bool {
	return d.kind == KindFloat
}

// Signed reports whether elements carry a sign.
func (d DType) Signed() bool {
	return d.kind == KindInt
}

// String returns the canonical type string, e.g. "|u1", "<f8" or "|S7".
func (d DType) String() string {
	return string([]byte{byte(d.order), byte(d.kind)}) + strconv.Itoa(d.size)
}
