package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleWitness() *Witness {
	return &Witness{
		Variant:       VariantCanonical,
		FieldElements: []FieldElement{{1}, {2}, {3}},
		NewRoot:       make([]byte, 32),
	}
}

func TestWitnessRoundTrip(t *testing.T) {
	w := sampleWitness()
	encoded := EncodeWitness(w)
	decoded, err := DecodeWitness(encoded)
	require.NoError(t, err)
	require.Equal(t, w.Variant, decoded.Variant)
	require.Equal(t, w.FieldElements, decoded.FieldElements)
	require.Equal(t, w.NewRoot, decoded.NewRoot)

	// Re-encoding the parsed value must reproduce the original bytes
	// byte-for-byte, per the witness round-trip law in spec.md §8.
	require.Equal(t, encoded, EncodeWitness(decoded))
}

func TestWitnessRejectsBadMagic(t *testing.T) {
	w := sampleWitness()
	buf := EncodeWitness(w)
	buf[0] = 'X'
	_, err := DecodeWitness(buf)
	require.Error(t, err)
}

func TestWitnessRejectsUnsupportedVersion(t *testing.T) {
	w := sampleWitness()
	buf := EncodeWitness(w)
	buf[4] = 2
	_, err := DecodeWitness(buf)
	require.Error(t, err)
}

func TestWitnessRejectsUnknownVariant(t *testing.T) {
	w := sampleWitness()
	buf := EncodeWitness(w)
	buf[5] = 2
	_, err := DecodeWitness(buf)
	require.ErrorContains(t, err, "unknown variant")
}

func TestWitnessRejectsTruncationByOneByte(t *testing.T) {
	w := sampleWitness()
	buf := EncodeWitness(w)
	_, err := DecodeWitness(buf[:len(buf)-1])
	require.Error(t, err)
}

func TestWitnessRejectsTrailingBytes(t *testing.T) {
	w := sampleWitness()
	buf := append(EncodeWitness(w), 0x00)
	_, err := DecodeWitness(buf)
	require.ErrorContains(t, err, "trailing bytes")
}

func TestWitnessRejectsOversizedFieldElementCount(t *testing.T) {
	w := sampleWitness()
	buf := EncodeWitness(w)
	// Corrupt the declared field-element count to something the buffer
	// cannot possibly satisfy without allocating unboundedly.
	buf[9] = 0xFF
	_, err := DecodeWitness(buf)
	require.Error(t, err)
}
