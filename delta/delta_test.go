package delta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/errs"
)

func makeIntArray(t *testing.T, spec string, vals []int64) []byte {
	t.Helper()

	dt := dtype.MustParse(spec)
	data := buffer.Alloc(len(vals), dt)
	view, err := buffer.ViewInts(data, dt)
	require.NoError(t, err)
	for i, v := range vals {
		view.SetInt(i, v)
	}

	return data
}

func makeFloatArray(t *testing.T, spec string, vals []float64) []byte {
	t.Helper()

	dt := dtype.MustParse(spec)
	data := buffer.Alloc(len(vals), dt)
	view, err := buffer.ViewFloats(data, dt)
	require.NoError(t, err)
	for i, v := range vals {
		view.SetFloat(i, v)
	}

	return data
}

func readInts(t *testing.T, spec string, data []byte) []int64 {
	t.Helper()

	view, err := buffer.ViewInts(data, dtype.MustParse(spec))
	require.NoError(t, err)
	out := make([]int64, view.Len())
	for i := range out {
		out[i] = view.Int(i)
	}

	return out
}

func TestEncodeDecodeIntegers(t *testing.T) {
	tests := []struct {
		name   string
		dtype  string
		astype string
		vals   []int64
	}{
		{"i8 into i1 steps", "<i8", "|i1", []int64{100, 101, 99, 103, 103}},
		{"i8 into i8", "<i8", "<i8", []int64{-5, 0, 5, 1 << 40}},
		{"i4 big-endian", ">i4", ">i4", []int64{7, 14, 7, -7}},
		{"u8 into i2", "<u8", "<i2", []int64{1000, 1010, 990, 1005}},
		{"i2 negatives", "<i2", "|i1", []int64{-100, -90, -110, -105}},
		{"u1 counter", "|u1", "|u1", []int64{0, 1, 2, 3, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(dtype.MustParse(tt.dtype), dtype.MustParse(tt.astype))
			require.NoError(t, err)

			src := makeIntArray(t, tt.dtype, tt.vals)
			enc, err := c.Encode(src)
			require.NoError(t, err)
			require.Len(t, enc, len(tt.vals)*dtype.MustParse(tt.astype).ItemSize())

			dec, err := c.Decode(enc, nil)
			require.NoError(t, err)
			require.Equal(t, src, dec)
		})
	}
}

func TestEncodeDifferences(t *testing.T) {
	c, err := New(dtype.MustParse("<i8"), dtype.MustParse("|i1"))
	require.NoError(t, err)

	src := makeIntArray(t, "<i8", []int64{100, 101, 99, 103})
	enc, err := c.Encode(src)
	require.NoError(t, err)

	require.Equal(t, []int64{100, 1, -2, 4}, readInts(t, "|i1", enc))
}

func TestEncodeDecodeFloats(t *testing.T) {
	tests := []struct {
		name   string
		dtype  string
		astype string
		vals   []float64
	}{
		{"f8", "<f8", "<f8", []float64{1.5, 2.25, 1.75, -3.0}},
		{"f8 big-endian", ">f8", ">f8", []float64{0.0, 0.5, 1.5}},
		{"f4", "<f4", "<f4", []float64{1.0, 1.5, 0.5, 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(dtype.MustParse(tt.dtype), dtype.MustParse(tt.astype))
			require.NoError(t, err)

			src := makeFloatArray(t, tt.dtype, tt.vals)
			enc, err := c.Encode(src)
			require.NoError(t, err)

			dec, err := c.Decode(enc, nil)
			require.NoError(t, err)
			require.Equal(t, src, dec)
		})
	}
}

func TestEncodedWidthWraparound(t *testing.T) {
	// A step of 300 does not fit i1. The stored difference wraps, so the
	// decoded values alias rather than fail.
	c, err := New(dtype.MustParse("<i8"), dtype.MustParse("|i1"))
	require.NoError(t, err)

	src := makeIntArray(t, "<i8", []int64{0, 300})
	enc, err := c.Encode(src)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 44}, readInts(t, "|i1", enc))

	dec, err := c.Decode(enc, nil)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 44}, readInts(t, "<i8", dec))
}

func TestDecodedWidthWraparound(t *testing.T) {
	// Differences wrap at the decoded width before the narrower store, the
	// same arithmetic decoding reverses.
	c, err := New(dtype.MustParse("|u1"), dtype.MustParse("|u1"))
	require.NoError(t, err)

	src := makeIntArray(t, "|u1", []int64{250, 4})
	enc, err := c.Encode(src)
	require.NoError(t, err)

	dec, err := c.Decode(enc, nil)
	require.NoError(t, err)
	require.Equal(t, src, dec)
}

func TestDecodeSuppliedBuffer(t *testing.T) {
	c, err := New(dtype.MustParse("<i4"), dtype.MustParse("|i1"))
	require.NoError(t, err)

	src := makeIntArray(t, "<i4", []int64{10, 20, 15})
	enc, err := c.Encode(src)
	require.NoError(t, err)

	dst := make([]byte, len(src))
	for i := range dst {
		dst[i] = 0xAA
	}

	out, err := c.Decode(enc, dst)
	require.NoError(t, err)
	require.Same(t, &dst[0], &out[0], "decode must fill the supplied buffer")
	require.Equal(t, src, dst)

	_, err = c.Decode(enc, make([]byte, len(src)-1))
	require.ErrorIs(t, err, errs.ErrInvalidDstSize)
}

func TestEmptyInput(t *testing.T) {
	c, err := New(dtype.MustParse("<i8"), dtype.MustParse("|i1"))
	require.NoError(t, err)

	enc, err := c.Encode(nil)
	require.NoError(t, err)
	require.Empty(t, enc)

	dec, err := c.Decode(enc, nil)
	require.NoError(t, err)
	require.Empty(t, dec)
}

func TestBufferSizeErrors(t *testing.T) {
	c, err := New(dtype.MustParse("<i4"), dtype.MustParse("<i2"))
	require.NoError(t, err)

	_, err = c.Encode(make([]byte, 5))
	require.ErrorIs(t, err, errs.ErrBufferSize)

	_, err = c.Decode(make([]byte, 3), nil)
	require.ErrorIs(t, err, errs.ErrBufferSize)
}

func TestConstructionErrors(t *testing.T) {
	tests := []struct {
		name   string
		dtype  string
		astype string
	}{
		{"byte string elements", "|S4", "|i1"},
		{"bool elements", "|b1", "|i1"},
		{"float into integer", "<f8", "|i1"},
		{"integer into float", "<i8", "<f4"},
		{"text encoded type", "<i8", "<U2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(dtype.MustParse(tt.dtype), dtype.MustParse(tt.astype))
			require.ErrorIs(t, err, errs.ErrInvalidTypeSpec)
		})
	}
}

func TestDefaultEncodedType(t *testing.T) {
	c, err := New(dtype.MustParse("<i8"), dtype.DType{})
	require.NoError(t, err)
	require.Equal(t, dtype.MustParse("<i8"), c.EncodedType())
}

func TestConfigRoundTrip(t *testing.T) {
	c, err := New(dtype.MustParse("<i8"), dtype.MustParse("|i1"))
	require.NoError(t, err)

	cfg := c.Config()
	require.Equal(t, ID, cfg.ID())

	rebuilt, err := codec.FromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, cfg, rebuilt.Config())

	src := makeIntArray(t, "<i8", []int64{5, 6, 4, 5})
	enc, err := c.Encode(src)
	require.NoError(t, err)

	dec, err := rebuilt.Decode(enc, nil)
	require.NoError(t, err)
	require.Equal(t, src, dec)
}

func TestFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  codec.Config
		want error
	}{
		{"missing dtype", codec.Config{"id": ID}, errs.ErrInvalidConfig},
		{"bad dtype", codec.Config{"id": ID, "dtype": "x4"}, errs.ErrInvalidTypeSpec},
		{"bad astype", codec.Config{"id": ID, "dtype": "<i8", "astype": "??"}, errs.ErrInvalidTypeSpec},
		{"kind mismatch", codec.Config{"id": ID, "dtype": "<i8", "astype": "<f4"}, errs.ErrInvalidTypeSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.FromConfig(tt.cfg)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	c, err := New(dtype.MustParse("<i8"), dtype.MustParse("|i1"))
	require.NoError(t, err)

	var iface codec.Codec = c
	require.Equal(t, ID, iface.ID())
}
