// Package crypto wires the secp256k1 key handling this module needs for
// the escrow operator's off-chain withdrawal signatures. It mirrors the
// teacher's key-management shape (generate/sign/recover via
// go-ethereum's crypto package) rather than inventing bespoke ECC code.
package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// OperatorKey is the secp256k1 keypair that signs escrow withdrawal
// authorizations off-chain (spec.md GLOSSARY "Operator").
type OperatorKey struct {
	private *ecdsa.PrivateKey
}

// GenerateOperatorKey creates a fresh operator keypair, used by the devnet
// harness to stand up a local environment.
func GenerateOperatorKey() (*OperatorKey, error) {
	key, err := ecdsa.GenerateKey(ethcrypto.S256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &OperatorKey{private: key}, nil
}

// OperatorKeyFromBytes reconstructs a keypair from a raw 32-byte scalar.
func OperatorKeyFromBytes(b []byte) (*OperatorKey, error) {
	key, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, fmt.Errorf("crypto: invalid operator key bytes: %w", err)
	}
	return &OperatorKey{private: key}, nil
}

// Bytes returns the raw private scalar.
func (k *OperatorKey) Bytes() []byte {
	return ethcrypto.FromECDSA(k.private)
}

// PublicKeyBytes returns the uncompressed public key bytes stored on-chain
// at /operator (65 bytes: 0x04 || X || Y).
func (k *OperatorKey) PublicKeyBytes() []byte {
	return ethcrypto.FromECDSAPub(&k.private.PublicKey)
}

// Sign produces a 65-byte recoverable ECDSA signature (r || s || v) over a
// pre-hashed 32-byte digest, matching the shape RecoverOperatorPublicKey
// expects.
func (k *OperatorKey) Sign(digest [32]byte) ([]byte, error) {
	return ethcrypto.Sign(digest[:], k.private)
}

// RecoverOperatorPublicKey recovers the uncompressed public key bytes that
// produced sig over digest. Used by the escrow withdraw handler to check
// the caller-supplied signature against the persisted operator key
// (spec.md §4.6 step 3).
func RecoverOperatorPublicKey(digest [32]byte, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, fmt.Errorf("crypto: recoverable signature must be 65 bytes, got %d", len(sig))
	}
	pub, err := ethcrypto.SigToPub(digest[:], sig)
	if err != nil {
		return nil, err
	}
	return ethcrypto.FromECDSAPub(pub), nil
}
