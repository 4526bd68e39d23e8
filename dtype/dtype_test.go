package dtype

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/arco/endian"
	"github.com/arloliu/arco/errs"
)

func nativeOrder() ByteOrder {
	if endian.IsNativeBigEndian() {
		return BigEndian
	}

	return LittleEndian
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec     string
		kind     Kind
		order    ByteOrder
		size     int
		itemSize int
		str      string
	}{
		{spec: "|u1", kind: KindUint, order: NotApplicable, size: 1, itemSize: 1, str: "|u1"},
		{spec: "u1", kind: KindUint, order: NotApplicable, size: 1, itemSize: 1, str: "|u1"},
		{spec: "<u1", kind: KindUint, order: NotApplicable, size: 1, itemSize: 1, str: "|u1"},
		{spec: "<u2", kind: KindUint, order: LittleEndian, size: 2, itemSize: 2, str: "<u2"},
		{spec: ">i8", kind: KindInt, order: BigEndian, size: 8, itemSize: 8, str: ">i8"},
		{spec: "|i1", kind: KindInt, order: NotApplicable, size: 1, itemSize: 1, str: "|i1"},
		{spec: "<f4", kind: KindFloat, order: LittleEndian, size: 4, itemSize: 4, str: "<f4"},
		{spec: ">f8", kind: KindFloat, order: BigEndian, size: 8, itemSize: 8, str: ">f8"},
		{spec: "|b1", kind: KindBool, order: NotApplicable, size: 1, itemSize: 1, str: "|b1"},
		{spec: "b1", kind: KindBool, order: NotApplicable, size: 1, itemSize: 1, str: "|b1"},
		{spec: "|S7", kind: KindBytes, order: NotApplicable, size: 7, itemSize: 7, str: "|S7"},
		{spec: "S10", kind: KindBytes, order: NotApplicable, size: 10, itemSize: 10, str: "|S10"},
		{spec: "<S4", kind: KindBytes, order: NotApplicable, size: 4, itemSize: 4, str: "|S4"},
		{spec: "<U5", kind: KindText, order: LittleEndian, size: 5, itemSize: 20, str: "<U5"},
		{spec: ">U1", kind: KindText, order: BigEndian, size: 1, itemSize: 4, str: ">U1"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			dt, err := Parse(tt.spec)
			require.NoError(t, err)
			require.Equal(t, tt.kind, dt.Kind())
			require.Equal(t, tt.order, dt.Order())
			require.Equal(t, tt.size, dt.Size())
			require.Equal(t, tt.itemSize, dt.ItemSize())
			require.Equal(t, tt.str, dt.String())
		})
	}
}

func TestParseNativeOrder(t *testing.T) {
	// '=' and a missing order character resolve to the concrete host order
	// for multi-byte types.
	for _, spec := range []string{"=u2", "u2", "|u2"} {
		dt, err := Parse(spec)
		require.NoError(t, err, "spec %q", spec)
		require.Equal(t, nativeOrder(), dt.Order(), "spec %q", spec)
	}

	dt, err := Parse("=U3")
	require.NoError(t, err)
	require.Equal(t, nativeOrder(), dt.Order())
}

func TestParseCanonicalRoundTrip(t *testing.T) {
	specs := []string{"|u1", "<u2", ">u4", "<i8", "|i1", "<f4", ">f8", "|b1", "|S1", "|S32", "<U2", ">U16"}
	for _, spec := range specs {
		dt, err := Parse(spec)
		require.NoError(t, err, "spec %q", spec)

		again, err := Parse(dt.String())
		require.NoError(t, err)
		require.Equal(t, dt, again, "canonical form must reparse to the same type")
		require.Equal(t, dt.String(), again.String())
	}
}

func TestParseErrors(t *testing.T) {
	specs := []string{
		"",
		"<",
		"u",
		"|u",
		"u0",
		"u3",
		"u16",
		"i5",
		"f2",
		"f16",
		"b2",
		"b8",
		"S0",
		"U0",
		"x4",
		"<q8",
		"u-1",
		"u+2",
		"u2x",
		"S1.5",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			require.ErrorIs(t, err, errs.ErrInvalidTypeSpec)
		})
	}
}

func TestMustParse(t *testing.T) {
	require.NotPanics(t, func() {
		dt := MustParse("|u1")
		require.Equal(t, KindUint, dt.Kind())
	})

	require.Panics(t, func() {
		MustParse("bogus")
	})
}

func TestCount(t *testing.T) {
	dt := MustParse("<u4")

	n, err := dt.Count(16)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	n, err = dt.Count(0)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = dt.Count(15)
	require.ErrorIs(t, err, errs.ErrBufferSize)

	text := MustParse("<U3")
	n, err = text.Count(24)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = text.Count(10)
	require.ErrorIs(t, err, errs.ErrBufferSize)
}

func TestEngine(t *testing.T) {
	require.Equal(t, endian.GetLittleEndianEngine(), MustParse("<u2").Engine())
	require.Equal(t, endian.GetBigEndianEngine(), MustParse(">u2").Engine())
	require.Equal(t, endian.Native(), MustParse("|u1").Engine())
	require.Equal(t, endian.Native(), MustParse("|S7").Engine())
}

func TestPredicates(t *testing.T) {
	require.True(t, MustParse("|u1").IsInteger())
	require.True(t, MustParse("<i2").IsInteger())
	require.False(t, MustParse("<f4").IsInteger())
	require.False(t, MustParse("|S3").IsInteger())

	require.True(t, MustParse("<f8").IsFloat())
	require.False(t, MustParse("<i8").IsFloat())

	require.True(t, MustParse("<i4").Signed())
	require.False(t, MustParse("<u4").Signed())
	require.False(t, MustParse("|b1").Signed())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "uint", KindUint.String())
	require.Equal(t, "int", KindInt.String())
	require.Equal(t, "float", KindFloat.String())
	require.Equal(t, "bool", KindBool.String())
	require.Equal(t, "bytes", KindBytes.String())
	require.Equal(t, "text", KindText.String())
	require.Equal(t, "unknown", Kind('z').String())
}

func TestByteOrderString(t *testing.T) {
	require.Equal(t, "little-endian", LittleEndian.String())
	require.Equal(t, "big-endian", BigEndian.String())
	require.Equal(t, "not-applicable", NotApplicable.String())
	require.Equal(t, "unknown", ByteOrder('x').String())
}
