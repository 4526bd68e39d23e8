package arco

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/arco/categorize"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/compress"
	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/errs"
)

// TestNewCategorize verifies codec creation from a type spec string and a
// full encode/decode round trip.
func TestNewCategorize(t *testing.T) {
	c, err := NewCategorize([]string{"compute", "storage", "network"}, "|S8")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "categorize", c.ID())

	src := makeFixedStrings(t, 8, "storage", "compute", "storage", "network")

	enc, err := c.Encode(src)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 1, 2, 3}, enc)

	dec, err := c.Decode(enc, nil)
	require.NoError(t, err)
	require.Equal(t, src, dec)
}

// TestNewCategorizeWithOptions verifies option pass-through to the
// categorize package.
func TestNewCategorizeWithOptions(t *testing.T) {
	c, err := NewCategorize([]string{"a", "b"}, "|S4",
		categorize.WithEncodedType(dtype.MustParse("<u2")),
	)
	require.NoError(t, err)
	require.Equal(t, "<u2", c.EncodedType().String())

	enc, err := c.Encode(makeFixedStrings(t, 4, "b"))
	require.NoError(t, err)
	require.Len(t, enc, 2, "each code should take two bytes")
}

// TestNewCategorizeInvalidInput verifies spec and label validation errors
// surface through the wrapper.
func TestNewCategorizeInvalidInput(t *testing.T) {
	_, err := NewCategorize([]string{"a"}, "|Q8")
	require.ErrorIs(t, err, errs.ErrInvalidTypeSpec)

	_, err = NewCategorize([]string{"not a number"}, "<i4")
	require.ErrorIs(t, err, errs.ErrInvalidLabel)
}

// TestFromConfig verifies codec reconstruction from a configuration record.
func TestFromConfig(t *testing.T) {
	c, err := FromConfig(codec.Config{"id": "shuffle", "elementsize": 4})
	require.NoError(t, err)
	require.Equal(t, "shuffle", c.ID())

	_, err = FromConfig(codec.Config{"id": "no-such-codec"})
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

// TestFromJSON verifies codec reconstruction from a JSON configuration.
func TestFromJSON(t *testing.T) {
	c, err := FromJSON([]byte(`{"id": "categorize", "labels": ["a", "b"], "dtype": "|S4"}`))
	require.NoError(t, err)

	enc, err := c.Encode(makeFixedStrings(t, 4, "b", "a", "zzz"))
	require.NoError(t, err)
	require.Equal(t, []byte{2, 1, 0}, enc)
}

// TestCodecIDs verifies every built-in codec registered through this
// package's imports.
func TestCodecIDs(t *testing.T) {
	ids := CodecIDs()

	require.Subset(t, ids, []string{
		"categorize", "delta", "shuffle", "xxh64",
		"zstd", "lz4", "s2", "gzip", "zlib", "none",
	})
}

// TestNewPipeline verifies pipeline creation and stage validation.
func TestNewPipeline(t *testing.T) {
	c, err := NewCategorize([]string{"a", "b"}, "|S4")
	require.NoError(t, err)
	z, err := compress.NewZstd(compress.DefaultZstdLevel)
	require.NoError(t, err)

	p, err := NewPipeline(c, z)
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())

	_, err = NewPipeline()
	require.ErrorIs(t, err, errs.ErrEmptyPipeline)
}

// TestSealUnseal verifies the full container round trip through the
// top-level wrappers.
func TestSealUnseal(t *testing.T) {
	c, err := NewCategorize([]string{"ok", "warn", "error"}, "|S6")
	require.NoError(t, err)
	z, err := compress.NewZstd(compress.DefaultZstdLevel)
	require.NoError(t, err)

	src := makeFixedStrings(t, 6, "ok", "ok", "warn", "error", "ok", "warn")

	sealed, err := Seal(src, c, z)
	require.NoError(t, err)

	restored, err := Unseal(sealed)
	require.NoError(t, err)
	require.Equal(t, src, restored)
}

// TestOpen verifies that a sealed container reconstructs its pipeline for
// inspection and deferred decoding.
func TestOpen(t *testing.T) {
	c, err := NewCategorize([]string{"a", "b"}, "|S4")
	require.NoError(t, err)
	z, err := compress.NewZstd(compress.DefaultZstdLevel)
	require.NoError(t, err)

	src := makeFixedStrings(t, 4, "b", "a", "b", "b")

	sealed, err := Seal(src, c, z)
	require.NoError(t, err)

	p, payload, err := Open(sealed)
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	require.NotEmpty(t, payload)

	restored, err := p.Decode(payload, nil)
	require.NoError(t, err)
	require.Equal(t, src, restored)
}

// TestUnsealCorrupted verifies payload damage is detected before decoding.
func TestUnsealCorrupted(t *testing.T) {
	c, err := NewCategorize([]string{"a", "b"}, "|S4")
	require.NoError(t, err)

	sealed, err := Seal(makeFixedStrings(t, 4, "a", "b"), c)
	require.NoError(t, err)

	// The payload sits at the end of the container.
	sealed[len(sealed)-1] ^= 0xFF

	_, err = Unseal(sealed)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

// makeFixedStrings packs values into consecutive fixed-width cells, padding
// each with zero bytes.
func makeFixedStrings(t *testing.T, width int, values ...string) []byte {
	t.Helper()

	buf := make([]byte, width*len(values))
	for i, v := range values {
		require.LessOrEqual(t, len(v), width, "value %q exceeds cell width", v)
		copy(buf[i*width:(i+1)*width], v)
	}

	return buf
}
