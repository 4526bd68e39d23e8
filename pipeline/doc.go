// Package pipeline chains codecs into a single reversible transform and
// wraps their output in a self-describing sealed container.
//
// # Chains
//
// A pipeline applies its stages in order on encode and in reverse order on
// decode. The conventional shape puts filter codecs first and a compressor
// last, so the compressor sees the regularized bytes the filters produce:
//
//	cat, _ := categorize.New([]string{"female", "male"}, dtype.MustParse("|S7"))
//	shuf, _ := shuffle.New(1)
//	zstd, _ := compress.NewZstd(3)
//
//	p, err := pipeline.New(cat, shuf, zstd)
//	encoded, err := p.Encode(raw)
//	decoded, err := p.Decode(encoded, nil)
//
// Decode hands the optional destination buffer to the first stage only,
// since that stage is the one producing the fully decoded data.
//
// # Sealed Containers
//
// Seal stores the encoded payload together with everything needed to decode
// it: a fixed 16-byte header, the stage configurations as a JSON array, and
// the payload itself.
//
//	Offset  Size  Field
//	0       2     Options: magic number (bits 4-15) over flag bits (0-3)
//	2       1     StageCount
//	3       1     Reserved, zero
//	4       4     ConfigSize: byte length of the configuration section
//	8       8     Checksum: XXH64 digest of the payload section
//	16      n     Configuration section (JSON array of records)
//	16+n    ...   Payload section
//
// Header integers are little-endian. Open validates the header and the
// payload checksum, then rebuilds the pipeline through the codec registry:
//
//	p, payload, err := pipeline.Open(sealed)
//	decoded, err := p.Decode(payload, nil)
//
// or in one step:
//
//	decoded, err := pipeline.Unseal(sealed, nil)
//
// The checksum guards the payload between Seal and Open; corruption inside
// the configuration section surfaces as a parse or reconstruction error
// instead.
package pipeline
