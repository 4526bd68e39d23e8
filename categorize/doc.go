// Package categorize implements a filter codec that encodes arrays of
// categorical fixed-width values as compact integer codes.
//
// Low-cardinality columns such as genders, country codes, statuses or enum
// readings waste most of their bytes repeating the same few values. This
// filter replaces each element with the position of its value in a fixed
// label list, shrinking e.g. a 7-byte string column to one byte per element
// before a general-purpose compressor runs over it.
//
// # Encoding Rules
//
// The codec is configured with an ordered label list and the element type
// of the decoded data. Encoding maps each element to a code:
//
//   - an element equal to the label at position i encodes as i+1
//   - an element equal to no label encodes as 0, the sentinel
//
// Codes are 1-based precisely so that 0 can mark unmapped values. Decoding
// maps code i+1 back to the label at position i; the sentinel and any code
// beyond the label count produce the zero value of the element type, which
// reads as an empty string for string kinds and as 0 for numeric kinds.
// Values outside the label set therefore do not round-trip, and the label
// list order is part of the wire contract: reordering labels renumbers
// every code.
//
// When two labels are equal, the later one wins. Encoding scans labels in
// order and later matches overwrite earlier ones, so equal labels at
// positions i < j always produce code j+1.
//
// # Basic Usage
//
//	dt := dtype.MustParse("|S7")
//	c, err := categorize.New([]string{"female", "male"}, dt)
//	if err != nil {
//		return err
//	}
//
//	// encode: "male" -> 2, "female" -> 1, anything else -> 0
//	enc, err := c.Encode(data)
//
//	// decode; pass a reusable buffer instead of nil to avoid allocation
//	dec, err := c.Decode(enc, nil)
//
// # Element Types
//
// The decoded element type may be any fixed-width type: byte strings
// ("|S7"), text ("<U5"), booleans, integers or floats. String elements
// compare with trailing NUL padding stripped, so the stored cell
// "male\x00\x00\x00" equals the label "male". Float elements compare by
// IEEE 754 value, so a NaN label never matches anything.
//
// The encoded element type defaults to |u1 and can be any integer type:
//
//	c, err := categorize.New(labels, dt,
//		categorize.WithEncodedType(dtype.MustParse("<u2")),
//	)
//
// The label count is deliberately not validated against the encoded width.
// Codes are stored with truncating writes: with 300 labels and a one-byte
// encoded type, code 257 is stored as 1 and later decodes as the first
// label. Callers choose the width; the codec preserves exactly what the
// width can hold.
//
// # Configuration
//
// Config returns a JSON-ready record holding the label list and both
// element types:
//
//	{"id": "categorize", "labels": ["female", "male"], "dtype": "|S7", "astype": "|u1"}
//
// The record is the codec's only persisted state; codec.FromConfig rebuilds
// an identically behaving codec from it. Byte string labels are exported as
// text in the record.
//
// # Performance
//
// Encode runs one pass over the data per label, O(N x L) element
// comparisons for N elements and L labels, and performs a single output
// allocation. Decode is a single pass over the codes. Both are pure
// functions of their inputs, so one codec can serve any number of
// goroutines concurrently.
package categorize
