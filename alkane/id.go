package alkane

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Id is the stable 32-byte contract/asset identifier used throughout the
// metaprotocol: a pair of u128 values, totally ordered by (Block, Tx). It
// doubles as both a contract address and a token identifier depending on
// context.
type Id struct {
	Block *big.Int
	Tx    *big.Int
}

// NewId constructs an Id from plain integers, primarily for tests and the
// devnet harness.
func NewId(block, tx uint64) Id {
	return Id{Block: new(big.Int).SetUint64(block), Tx: new(big.Int).SetUint64(tx)}
}

// Valid reports whether both components fit in a u128 and are non-negative.
func (id Id) Valid() bool {
	if id.Block == nil || id.Tx == nil {
		return false
	}
	return FitsU128(id.Block) && FitsU128(id.Tx)
}

// FitsU128 reports whether v is non-negative and fits in 128 bits. A
// negative value is rejected outright; any other value is folded through
// uint256.FromBig, the same overflow-checked conversion the teacher uses at
// its own balance/state-transition boundaries, so one exceeding 256 bits is
// rejected before the narrower 128-bit width check ever runs.
func FitsU128(v *big.Int) bool {
	if v.Sign() < 0 {
		return false
	}
	folded, overflow := uint256.FromBig(v)
	if overflow {
		return false
	}
	return folded.BitLen() <= 128
}

// Cmp orders two Ids lexicographically by (Block, Tx), matching the
// canonical ordering spec.md §3 requires for sorted compound keys.
func (id Id) Cmp(other Id) int {
	if c := id.Block.Cmp(other.Block); c != 0 {
		return c
	}
	return id.Tx.Cmp(other.Tx)
}

// Equal reports whether two Ids carry the same (Block, Tx) pair.
func (id Id) Equal(other Id) bool {
	return id.Cmp(other) == 0
}

// String renders the Id as "block:tx", used as an in-memory map key and for
// human-facing output (CLI, logs, events). Storage keys use the 32-byte
// codec encoding instead.
func (id Id) String() string {
	block, tx := id.Block, id.Tx
	if block == nil {
		block = big.NewInt(0)
	}
	if tx == nil {
		tx = big.NewInt(0)
	}
	return fmt.Sprintf("%s:%s", block.String(), tx.String())
}

// SortPair returns (a, b) reordered so that a <= b, implementing the
// sort_alkanes convention from spec.md §4.2 used whenever two Ids are
// paired into a single storage key.
func SortPair(a, b Id) (Id, Id) {
	if a.Cmp(b) <= 0 {
		return a, b
	}
	return b, a
}
