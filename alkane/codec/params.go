package codec

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/Sprimage/SatCity/alkane"
)

// ParamReader walks a flat stream of u128 values — the wire shape every
// opcode's parameters are packed into (spec.md §4.4) — with explicit arity
// checks per field. Too few params surfaces as an UnknownOpcode-family
// error at the call site, per spec.md §9.
type ParamReader struct {
	values []*big.Int
	pos    int
}

// NewParamReader wraps a pre-decoded slice of u128 values.
func NewParamReader(values []*big.Int) *ParamReader {
	return &ParamReader{values: values}
}

// DecodeParamStream splits a flat byte buffer into successive u128 LE
// values.
func DecodeParamStream(buf []byte) ([]*big.Int, error) {
	if len(buf)%U128Size != 0 {
		return nil, fmt.Errorf("codec: param stream length %d is not a multiple of %d", len(buf), U128Size)
	}
	out := make([]*big.Int, 0, len(buf)/U128Size)
	for i := 0; i < len(buf); i += U128Size {
		v, err := GetU128LE(buf[i : i+U128Size])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining reports how many u128 values are left unread.
func (r *ParamReader) Remaining() int {
	if r == nil {
		return 0
	}
	return len(r.values) - r.pos
}

// NextU128 consumes and returns the next raw u128 parameter.
func (r *ParamReader) NextU128() (*big.Int, error) {
	if r.Remaining() <= 0 {
		return nil, fmt.Errorf("%w: codec: param stream exhausted", alkane.ErrUnknownOpcode)
	}
	v := r.values[r.pos]
	r.pos++
	return v, nil
}

// NextId consumes two u128 parameters and assembles an Id.
func (r *ParamReader) NextId() (alkane.Id, error) {
	block, err := r.NextU128()
	if err != nil {
		return alkane.Id{}, err
	}
	tx, err := r.NextU128()
	if err != nil {
		return alkane.Id{}, err
	}
	id := alkane.Id{Block: block, Tx: tx}
	if !id.Valid() {
		return alkane.Id{}, fmt.Errorf("codec: decoded id out of u128 range")
	}
	return id, nil
}

// NextBool consumes a u128 parameter and interprets zero/non-zero as a
// boolean flag (used by SetPaused per spec.md §4.6).
func (r *ParamReader) NextBool() (bool, error) {
	v, err := r.NextU128()
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

// NextShortString consumes one u128 packed little-endian and trims it at
// the first NUL byte, per spec.md §4.4's short-ASCII-string convention.
func (r *ParamReader) NextShortString() (string, error) {
	v, err := r.NextU128()
	if err != nil {
		return "", err
	}
	buf := PutU128LE(v)
	if idx := bytes.IndexByte(buf, 0); idx >= 0 {
		buf = buf[:idx]
	}
	return string(buf), nil
}

// NextBytesBlock consumes a length-prefixed opaque byte buffer encoded as
// one u128 length followed by ceil(len/16) u128 words — used for
// signatures and other variable-length trailing parameters.
func (r *ParamReader) NextBytesBlock() ([]byte, error) {
	lenV, err := r.NextU128()
	if err != nil {
		return nil, err
	}
	n := int(lenV.Int64())
	if n < 0 {
		return nil, fmt.Errorf("codec: negative byte block length")
	}
	words := (n + U128Size - 1) / U128Size
	out := make([]byte, 0, words*U128Size)
	for i := 0; i < words; i++ {
		v, err := r.NextU128()
		if err != nil {
			return nil, err
		}
		out = append(out, PutU128LE(v)...)
	}
	return out[:n], nil
}

// EncodeBytesBlock is the inverse of NextBytesBlock, for building opcode
// parameter streams for calls that carry opaque byte payloads (e.g.
// withdrawal signatures).
func EncodeBytesBlock(data []byte) []*big.Int {
	out := make([]*big.Int, 0, 1+(len(data)+U128Size-1)/U128Size)
	out = append(out, big.NewInt(int64(len(data))))
	padded := make([]byte, ((len(data)+U128Size-1)/U128Size)*U128Size)
	copy(padded, data)
	for i := 0; i < len(padded); i += U128Size {
		be := make([]byte, U128Size)
		word := padded[i : i+U128Size]
		for j := 0; j < U128Size; j++ {
			be[j] = word[U128Size-1-j]
		}
		out = append(out, new(big.Int).SetBytes(be))
	}
	return out
}

// EncodeParamStream is the inverse of DecodeParamStream, used by tests to
// build a raw opcode parameter buffer.
func EncodeParamStream(values []*big.Int) []byte {
	buf := make([]byte, 0, len(values)*U128Size)
	for _, v := range values {
		buf = append(buf, PutU128LE(v)...)
	}
	return buf
}

// shortStringToU128 packs a short ASCII string (<=16 bytes) into a single
// LE u128, the inverse of NextShortString.
func shortStringToU128(s string) *big.Int {
	buf := make([]byte, U128Size)
	copy(buf, s)
	be := make([]byte, U128Size)
	for i := 0; i < U128Size; i++ {
		be[i] = buf[U128Size-1-i]
	}
	return new(big.Int).SetBytes(be)
}

// ShortStringParam exposes shortStringToU128 for callers outside the
// package constructing opcode parameter streams.
func ShortStringParam(s string) *big.Int { return shortStringToU128(s) }
