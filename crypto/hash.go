package crypto

import (
	"math/big"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
)

const withdrawDomainTag = "SATC-WITHDRAW-v1"

// WithdrawMessageHash computes the domain-separated withdrawal digest the
// operator signs off-chain and the escrow verifies on-chain (spec.md §4.6
// step 2):
//
//	H("SATC-WITHDRAW-v1" || recipient || token || amount_u128_le || nonce_u128_le || myself)
//
// H is SHA-256, computed with the accelerated minio/sha256-simd
// implementation already present in the teacher's dependency graph.
func WithdrawMessageHash(recipient, token alkane.Id, amount, nonce *big.Int, myself alkane.Id) [32]byte {
	h := sha256simd.New()
	h.Write([]byte(withdrawDomainTag))
	h.Write(codec.EncodeId(recipient))
	h.Write(codec.EncodeId(token))
	h.Write(codec.PutU128LE(amount))
	h.Write(codec.PutU128LE(nonce))
	h.Write(codec.EncodeId(myself))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
