// Package codec implements the primitive binary encodings shared by both
// contracts: little-endian fixed-width integers, the 32-byte Id encoding,
// and length-prefixed parcels (spec.md §4.1). All decoders here are total:
// they either return a fully parsed value or a specific error, never a
// partially consumed buffer.
package codec

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/Sprimage/SatCity/alkane"
)

// U128Size is the on-wire width of a single u128 value.
const U128Size = 16

// PutU128LE writes v into a 16-byte little-endian buffer. v must be
// non-negative and fit in 128 bits; callers are expected to validate via
// alkane.Id.Valid or equivalent before encoding.
func PutU128LE(v *big.Int) []byte {
	buf := make([]byte, U128Size)
	if v == nil {
		return buf
	}
	b := v.Bytes() // big-endian, no leading zeros
	for i := 0; i < len(b) && i < U128Size; i++ {
		buf[i] = b[len(b)-1-i]
	}
	return buf
}

// GetU128LE reads a 16-byte little-endian buffer into a *big.Int.
func GetU128LE(buf []byte) (*big.Int, error) {
	if len(buf) < U128Size {
		return nil, fmt.Errorf("codec: u128 buffer too short: got %d bytes", len(buf))
	}
	be := make([]byte, U128Size)
	for i := 0; i < U128Size; i++ {
		be[i] = buf[U128Size-1-i]
	}
	return new(big.Int).SetBytes(be), nil
}

// EncodeId serializes an Id as two consecutive u128 LE values (32 bytes).
func EncodeId(id alkane.Id) []byte {
	out := make([]byte, 32)
	copy(out[0:16], PutU128LE(id.Block))
	copy(out[16:32], PutU128LE(id.Tx))
	return out
}

// DecodeId parses a 32-byte buffer into an Id.
func DecodeId(buf []byte) (alkane.Id, error) {
	if len(buf) < 32 {
		return alkane.Id{}, fmt.Errorf("codec: id buffer too short: got %d bytes", len(buf))
	}
	block, err := GetU128LE(buf[0:16])
	if err != nil {
		return alkane.Id{}, err
	}
	tx, err := GetU128LE(buf[16:32])
	if err != nil {
		return alkane.Id{}, err
	}
	return alkane.Id{Block: block, Tx: tx}, nil
}

// EncodeTransfer serializes a Transfer as id || value_u128_le (48 bytes).
func EncodeTransfer(t alkane.Transfer) []byte {
	out := make([]byte, 48)
	copy(out[0:32], EncodeId(t.Id))
	copy(out[32:48], PutU128LE(t.Value))
	return out
}

// DecodeTransfer parses a 48-byte buffer into a Transfer.
func DecodeTransfer(buf []byte) (alkane.Transfer, error) {
	if len(buf) < 48 {
		return alkane.Transfer{}, fmt.Errorf("codec: transfer buffer too short: got %d bytes", len(buf))
	}
	id, err := DecodeId(buf[0:32])
	if err != nil {
		return alkane.Transfer{}, err
	}
	value, err := GetU128LE(buf[32:48])
	if err != nil {
		return alkane.Transfer{}, err
	}
	return alkane.Transfer{Id: id, Value: value}, nil
}

// EncodeParcel serializes a Parcel as count_u32_le || transfers...
func EncodeParcel(p alkane.Parcel) []byte {
	out := make([]byte, 4, 4+48*len(p))
	binary.LittleEndian.PutUint32(out, uint32(len(p)))
	for _, t := range p {
		out = append(out, EncodeTransfer(t)...)
	}
	return out
}

// DecodeParcel parses a count-prefixed list of transfers, rejecting
// trailing garbage and truncated buffers.
func DecodeParcel(buf []byte) (alkane.Parcel, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("codec: parcel buffer too short")
	}
	count := binary.LittleEndian.Uint32(buf[0:4])
	rest := buf[4:]
	want := int(count) * 48
	if len(rest) < want {
		return nil, fmt.Errorf("codec: parcel buffer truncated: want %d more bytes, have %d", want, len(rest))
	}
	if len(rest) > want {
		return nil, fmt.Errorf("codec: parcel buffer has %d trailing bytes", len(rest)-want)
	}
	out := make(alkane.Parcel, 0, count)
	for i := 0; i < int(count); i++ {
		t, err := DecodeTransfer(rest[i*48 : (i+1)*48])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// PutUint8/GetUint8 and PutUint32LE/GetUint32LE fixed-width helpers for
// typed storage get/set (C2).

// PutUint8 returns a single-byte buffer.
func PutUint8(v uint8) []byte { return []byte{v} }

// GetUint8 reads a single byte, defaulting to 0 for an empty/missing value.
func GetUint8(buf []byte) uint8 {
	if len(buf) == 0 {
		return 0
	}
	return buf[0]
}

// PutUint32LE returns a 4-byte little-endian buffer.
func PutUint32LE(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// GetUint32LE reads a 4-byte little-endian buffer, defaulting to 0.
func GetUint32LE(buf []byte) uint32 {
	if len(buf) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(buf)
}
