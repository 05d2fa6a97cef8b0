package runtime

import "github.com/Sprimage/SatCity/alkane"

// Cellpack is a call payload targeting another contract: its address plus
// a flat parameter stream, each value held as a uint64 (spec.md §6,
// GLOSSARY).
type Cellpack struct {
	Target alkane.Id
	Input  []uint64
}

// Host is the abstract surface the enclosing metaprotocol runtime exposes
// to a contract. Both call/staticcall are cross-contract collaborators
// explicitly out of scope for this module (spec.md §1) — they are declared
// here only so contract code can be written against a stable interface;
// neither GameEscrow nor Verifier currently invokes another contract, so
// no concrete implementation ships in this module.
type Host interface {
	// Call invokes target statefully, forwarding parcel, and is budgeted
	// against fuel.
	Call(target alkane.Id, pack Cellpack, parcel alkane.Parcel, fuel uint64) (alkane.CallResponse, error)
	// StaticCall invokes target read-only.
	StaticCall(target alkane.Id, pack Cellpack, parcel alkane.Parcel, fuel uint64) (alkane.CallResponse, error)
	// Balance returns this contract's current holding of token.
	Balance(self alkane.Id, token alkane.Id) (uint64, error)
	// BlockTime returns the enclosing block's header timestamp.
	BlockTime() (uint64, error)
	// Height returns the current block height.
	Height() (uint64, error)
}
