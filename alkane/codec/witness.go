package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnknownVariant distinguishes a structurally well-formed witness that
// names an AIR variant this module doesn't recognize from any other
// decode failure, so callers can surface the more specific
// UnsupportedVariant failure instead of a generic malformed-witness one.
var ErrUnknownVariant = errors.New("witness: unknown variant")

// FieldElement is a single 32-byte big-endian Cairo field element, as found
// in the witness payload. It is opaque to this module; the STARK verifier
// primitive is the only consumer that interprets the bytes as a field
// value.
type FieldElement [32]byte

// Variant selects which preprocessed Cairo AIR the witness targets.
type Variant uint8

const (
	VariantCanonical              Variant = 0
	VariantCanonicalNoPedersen    Variant = 1
)

// Valid reports whether v is one of the two supported variants.
func (v Variant) Valid() bool {
	return v == VariantCanonical || v == VariantCanonicalNoPedersen
}

var witnessMagic = [4]byte{'S', 'A', 'T', 'C'}

const witnessVersion = 1

// Witness is the fully decoded SATC-framed proof payload (spec.md §4.1).
type Witness struct {
	Variant       Variant
	FieldElements []FieldElement
	NewRoot       []byte
}

// DecodeWitness parses the fixed-layout SATC witness payload. The decoder
// is total: any deviation from the declared layout — short magic, unknown
// version/variant, truncated field-element or root sections, or trailing
// bytes — returns an error and never a partial Witness.
//
// Layout (spec.md §4.1, all multi-byte integers big-endian):
//
//	magic[4]    == "SATC"
//	version u8  == 1
//	variant u8  ∈ {0,1}
//	N       u32
//	fe[N][32]
//	L       u32
//	root[L]
func DecodeWitness(buf []byte) (*Witness, error) {
	r := bytes.NewReader(buf)

	var magic [4]byte
	if err := readFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}
	if magic != witnessMagic {
		return nil, fmt.Errorf("witness: bad magic %q", magic[:])
	}

	version, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}
	if version != witnessVersion {
		return nil, fmt.Errorf("witness: unsupported version %d", version)
	}

	variantByte, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}
	variant := Variant(variantByte)
	if !variant.Valid() {
		return nil, fmt.Errorf("witness: unknown variant %d: %w", variantByte, ErrUnknownVariant)
	}

	n, err := readU32BE(r)
	if err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}
	if uint64(r.Len()) < 32*uint64(n)+4 {
		return nil, fmt.Errorf("witness: declared %d field elements exceeds remaining buffer", n)
	}
	felts := make([]FieldElement, n)
	for i := uint32(0); i < n; i++ {
		if err := readFull(r, felts[i][:]); err != nil {
			return nil, fmt.Errorf("witness: field element %d: %w", i, err)
		}
	}

	l, err := readU32BE(r)
	if err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}
	if uint64(r.Len()) < uint64(l) {
		return nil, fmt.Errorf("witness: declared root length %d exceeds remaining buffer", l)
	}
	root := make([]byte, l)
	if err := readFull(r, root); err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("witness: %d trailing bytes after declared payload", r.Len())
	}

	return &Witness{Variant: variant, FieldElements: felts, NewRoot: root}, nil
}

// EncodeWitness re-serializes a Witness to the exact SATC wire format.
// EncodeWitness(DecodeWitness(b)) == b for any b that decodes successfully,
// satisfying the round-trip law in spec.md §8.
func EncodeWitness(w *Witness) []byte {
	buf := make([]byte, 0, 4+1+1+4+32*len(w.FieldElements)+4+len(w.NewRoot))
	buf = append(buf, witnessMagic[:]...)
	buf = append(buf, witnessVersion, byte(w.Variant))
	buf = appendU32BE(buf, uint32(len(w.FieldElements)))
	for _, fe := range w.FieldElements {
		buf = append(buf, fe[:]...)
	}
	buf = appendU32BE(buf, uint32(len(w.NewRoot)))
	buf = append(buf, w.NewRoot...)
	return buf
}

func readFull(r *bytes.Reader, out []byte) error {
	if r.Len() < len(out) {
		return fmt.Errorf("buffer truncated: want %d more bytes, have %d", len(out), r.Len())
	}
	_, err := r.Read(out)
	return err
}

func readByte(r *bytes.Reader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("buffer truncated: expected 1 more byte")
	}
	return b, nil
}

func readU32BE(r *bytes.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func appendU32BE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}
