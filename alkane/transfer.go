package alkane

import "math/big"

// Transfer is a single-asset movement: id plus value. A value of 1 denotes
// an NFT transfer where Id carries the unique token identity; a value
// greater than 1 denotes a fungible transfer of that many units of Id.
// A value of 0 is never valid at a validation boundary.
type Transfer struct {
	Id    Id
	Value *big.Int
}

// NewTransfer builds a Transfer from a plain uint64 value, primarily for
// tests and the devnet CLI.
func NewTransfer(id Id, value uint64) Transfer {
	return Transfer{Id: id, Value: new(big.Int).SetUint64(value)}
}

// IsNFT reports whether the transfer's value tags it as a unique asset move
// per the value==1 convention in spec.md §3.
func (t Transfer) IsNFT() bool {
	return t.Value != nil && t.Value.Cmp(big.NewInt(1)) == 0
}

// IsFungible reports whether the transfer's value tags it as a fungible
// move (value > 1).
func (t Transfer) IsFungible() bool {
	return t.Value != nil && t.Value.Cmp(big.NewInt(1)) > 0
}

// IsZero reports an invalid zero-value transfer.
func (t Transfer) IsZero() bool {
	return t.Value == nil || t.Value.Sign() == 0
}

// Parcel is an ordered sequence of asset transfers. Duplicate Ids are only
// meaningful (and allowed) for fungible entries.
type Parcel []Transfer

// Empty reports whether the parcel carries no transfers.
func (p Parcel) Empty() bool { return len(p) == 0 }

// SortedIds returns the distinct Ids referenced by the parcel, ordered
// ascending, matching the determinism requirement on refund iteration
// order from spec.md §4.6.
func (p Parcel) SortedIds() []Id {
	seen := make(map[string]struct{}, len(p))
	ids := make([]Id, 0, len(p))
	for _, t := range p {
		key := t.Id.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ids = append(ids, t.Id)
	}
	// Simple insertion sort; parcels are small (bounded by a single
	// transaction's worth of moves).
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j].Cmp(ids[j-1]) < 0; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}
