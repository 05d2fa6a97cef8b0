package crypto

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sprimage/SatCity/alkane"
)

func TestSignAndRecoverRoundTrip(t *testing.T) {
	key, err := GenerateOperatorKey()
	require.NoError(t, err)

	recipient := alkane.NewId(2, 11)
	token := alkane.NewId(2, 100)
	myself := alkane.NewId(1, 1)
	digest := WithdrawMessageHash(recipient, token, big.NewInt(20), big.NewInt(0), myself)

	sig, err := key.Sign(digest)
	require.NoError(t, err)

	recovered, err := RecoverOperatorPublicKey(digest, sig)
	require.NoError(t, err)
	require.Equal(t, key.PublicKeyBytes(), recovered)
}

func TestRecoverRejectsWrongDigest(t *testing.T) {
	key, err := GenerateOperatorKey()
	require.NoError(t, err)

	recipient := alkane.NewId(2, 11)
	token := alkane.NewId(2, 100)
	myself := alkane.NewId(1, 1)
	digest := WithdrawMessageHash(recipient, token, big.NewInt(20), big.NewInt(0), myself)
	sig, err := key.Sign(digest)
	require.NoError(t, err)

	tampered := WithdrawMessageHash(recipient, token, big.NewInt(21), big.NewInt(0), myself)
	recovered, err := RecoverOperatorPublicKey(tampered, sig)
	require.NoError(t, err)
	require.NotEqual(t, key.PublicKeyBytes(), recovered)
}

func TestKeyBytesRoundTrip(t *testing.T) {
	key, err := GenerateOperatorKey()
	require.NoError(t, err)
	restored, err := OperatorKeyFromBytes(key.Bytes())
	require.NoError(t, err)
	require.Equal(t, key.PublicKeyBytes(), restored.PublicKeyBytes())
}
