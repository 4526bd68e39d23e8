package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/arco/errs"
)

func TestHeaderRoundTrip(t *testing.T) {
	hdr := Header{
		Options:    MagicV1Opt,
		StageCount: 3,
		ConfigSize: 147,
		Checksum:   0xDEADBEEFCAFEF00D,
	}

	data := hdr.Bytes()
	require.Len(t, data, HeaderSize)

	var parsed Header
	require.NoError(t, parsed.Parse(data))
	require.Equal(t, hdr, parsed)
}

func TestHeaderLayout(t *testing.T) {
	hdr := Header{
		Options:    MagicV1Opt,
		StageCount: 2,
		ConfigSize: 0x01020304,
		Checksum:   0x1122334455667788,
	}

	data := hdr.Bytes()

	// Little-endian field placement.
	require.Equal(t, []byte{0x10, 0xAC}, data[0:2], "Options")
	require.Equal(t, byte(2), data[2], "StageCount")
	require.Equal(t, byte(0), data[3], "Reserved")
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, data[4:8], "ConfigSize")
	require.Equal(t, []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, data[8:16], "Checksum")
}

func TestHeaderParseTooShort(t *testing.T) {
	var hdr Header
	err := hdr.Parse(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestHeaderValidate(t *testing.T) {
	tests := []struct {
		name string
		hdr  Header
		want error
	}{
		{"valid", Header{Options: MagicV1Opt}, nil},
		{"foreign magic", Header{Options: 0xEA10}, errs.ErrInvalidMagicNumber},
		{"zero options", Header{}, errs.ErrInvalidMagicNumber},
		{"undefined flag bits", Header{Options: MagicV1Opt | 0x0003}, errs.ErrInvalidHeaderFlags},
		{"reserved byte set", Header{Options: MagicV1Opt, Reserved: 1}, errs.ErrInvalidHeaderFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hdr.Validate()
			if tt.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}
