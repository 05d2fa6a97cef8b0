package verifier

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/stretchr/testify/require"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
	"github.com/Sprimage/SatCity/alkane/storage"
	"github.com/Sprimage/SatCity/contracts/verifier/proof"
)

func validWitnessBytes(t *testing.T, variant codec.Variant, root []byte) []byte {
	t.Helper()
	transcript := []codec.FieldElement{{1}, {2}}

	h := mimc.NewMiMC()
	for _, fe := range transcript {
		h.Write(fe[:])
	}
	h.Write([]byte{byte(variant)})
	digest := h.Sum(nil)

	var claimed codec.FieldElement
	copy(claimed[:], digest)

	w := &codec.Witness{
		Variant:       variant,
		FieldElements: append(transcript, claimed),
		NewRoot:       root,
	}
	return codec.EncodeWitness(w)
}

func TestVerifyAndUpdateHappyPath(t *testing.T) {
	db := storage.NewMemDB()
	owner := alkane.NewId(1, 1)
	c, err := New(db, owner, proof.CommitmentVerifier{}, nil)
	require.NoError(t, err)

	bridge := alkane.NewId(2, 7)
	require.NoError(t, c.Initialize(owner, bridge))

	root := make([]byte, 32)
	for i := range root {
		root[i] = byte(i)
	}
	witness := validWitnessBytes(t, codec.VariantCanonical, root)

	require.NoError(t, c.VerifyAndUpdate(owner, witness))

	stored, err := c.GetStateRoot()
	require.NoError(t, err)
	require.Equal(t, root, stored)

	variant, err := c.LastPreprocessedVariant()
	require.NoError(t, err)
	require.Equal(t, codec.VariantCanonical, variant)
}

func TestVerifyAndUpdateUnsupportedVariantRejected(t *testing.T) {
	db := storage.NewMemDB()
	owner := alkane.NewId(1, 1)
	c, err := New(db, owner, proof.CommitmentVerifier{}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Initialize(owner, alkane.NewId(2, 7)))

	root := make([]byte, 32)
	witness := validWitnessBytes(t, codec.VariantCanonical, root)
	// Flip the variant byte (index 5: magic[4] + version[1]) to an
	// unsupported value without disturbing the rest of the payload.
	witness[5] = 2

	err = c.VerifyAndUpdate(owner, witness)
	require.ErrorIs(t, err, alkane.ErrUnsupportedVariant)
}

func TestVerifyAndUpdateRejectsBadProof(t *testing.T) {
	db := storage.NewMemDB()
	owner := alkane.NewId(1, 1)
	c, err := New(db, owner, proof.CommitmentVerifier{}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Initialize(owner, alkane.NewId(2, 7)))

	w := &codec.Witness{
		Variant:       codec.VariantCanonical,
		FieldElements: []codec.FieldElement{{1}, {2}},
		NewRoot:       make([]byte, 32),
	}
	witness := codec.EncodeWitness(w)

	err = c.VerifyAndUpdate(owner, witness)
	require.ErrorIs(t, err, alkane.ErrProofInvalid)
}

func TestVerifyAndUpdateNotInitialized(t *testing.T) {
	db := storage.NewMemDB()
	owner := alkane.NewId(1, 1)
	c, err := New(db, owner, proof.CommitmentVerifier{}, nil)
	require.NoError(t, err)

	err = c.VerifyAndUpdate(owner, []byte{})
	require.ErrorIs(t, err, alkane.ErrNotInitialized)
}

func TestVerifyAndUpdateUnauthorizedRejected(t *testing.T) {
	db := storage.NewMemDB()
	owner := alkane.NewId(1, 1)
	c, err := New(db, owner, proof.CommitmentVerifier{}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Initialize(owner, alkane.NewId(2, 7)))

	stranger := alkane.NewId(9, 9)
	err = c.VerifyAndUpdate(stranger, []byte{})
	require.ErrorIs(t, err, alkane.ErrUnauthorized)
}

func TestInitializeOnlyOnce(t *testing.T) {
	db := storage.NewMemDB()
	owner := alkane.NewId(1, 1)
	c, err := New(db, owner, proof.CommitmentVerifier{}, nil)
	require.NoError(t, err)

	require.NoError(t, c.Initialize(owner, alkane.NewId(2, 7)))
	require.ErrorIs(t, c.Initialize(owner, alkane.NewId(2, 7)), alkane.ErrAlreadyInitialized)
}
