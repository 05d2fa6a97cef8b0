package codec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sprimage/SatCity/alkane"
)

func TestIdRoundTrip(t *testing.T) {
	id := alkane.NewId(2, 100)
	encoded := EncodeId(id)
	require.Len(t, encoded, 32)
	decoded, err := DecodeId(encoded)
	require.NoError(t, err)
	require.True(t, id.Equal(decoded))
}

func TestParcelRoundTrip(t *testing.T) {
	p := alkane.Parcel{
		alkane.NewTransfer(alkane.NewId(2, 100), 50),
		alkane.NewTransfer(alkane.NewId(3, 9), 1),
	}
	encoded := EncodeParcel(p)
	decoded, err := DecodeParcel(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	require.True(t, decoded[0].Id.Equal(p[0].Id))
	require.Equal(t, 0, decoded[0].Value.Cmp(p[0].Value))
}

func TestDecodeParcelRejectsTrailingBytes(t *testing.T) {
	p := alkane.Parcel{alkane.NewTransfer(alkane.NewId(1, 1), 5)}
	encoded := append(EncodeParcel(p), 0xFF)
	_, err := DecodeParcel(encoded)
	require.Error(t, err)
}

func TestDecodeParcelRejectsTruncation(t *testing.T) {
	p := alkane.Parcel{alkane.NewTransfer(alkane.NewId(1, 1), 5)}
	encoded := EncodeParcel(p)
	_, err := DecodeParcel(encoded[:len(encoded)-1])
	require.Error(t, err)
}

func TestParamReaderNextId(t *testing.T) {
	values, err := DecodeParamStream(EncodeParamStream([]*big.Int{big.NewInt(2), big.NewInt(7)}))
	require.NoError(t, err)
	r := NewParamReader(values)
	id, err := r.NextId()
	require.NoError(t, err)
	require.True(t, id.Equal(alkane.NewId(2, 7)))
	require.Equal(t, 0, r.Remaining())
}

func TestParamReaderBytesBlockRoundTrip(t *testing.T) {
	sig := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	values := EncodeBytesBlock(sig)
	r := NewParamReader(values)
	got, err := r.NextBytesBlock()
	require.NoError(t, err)
	require.Equal(t, sig, got)
}

func TestParamReaderExhausted(t *testing.T) {
	r := NewParamReader(nil)
	_, err := r.NextU128()
	require.Error(t, err)
}
