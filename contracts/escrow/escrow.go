// Package escrow implements the GameEscrow contract: a custody ledger for
// deposited fungible and non-fungible alkanes, released only against a
// signed, nonce-bound withdrawal authorization from the configured
// operator key (spec §4.6, GAME_ESCROW.md).
package escrow

import (
	"github.com/Sprimage/SatCity/alkane/runtime"
	"github.com/Sprimage/SatCity/alkane/storage"
	"github.com/Sprimage/SatCity/core/events"
)

// Contract is the GameEscrow instance: a Lifecycle (init/owner/pause guard,
// with /owner holding the DAO identity), a reentrancy lock, and the
// ledger-specific storage pointers namespaced under their own keywords.
type Contract struct {
	db        storage.Database
	Lifecycle runtime.Lifecycle
	lock      runtime.ReentrancyLock
	emitter   events.Emitter

	operator   storage.Pointer
	allowlist  storage.Pointer
	ftBalances storage.Pointer
	nftOwners  storage.Pointer
	nonces     storage.Pointer
}

// New wires a Contract's storage pointers against db. emitter may be nil, in
// which case events are discarded.
func New(db storage.Database, emitter events.Emitter) *Contract {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Contract{
		db:         db,
		Lifecycle:  runtime.NewLifecycle(db),
		lock:       runtime.NewReentrancyLock(db),
		emitter:    emitter,
		operator:   storage.FromKeyword(db, "/operator"),
		allowlist:  storage.FromKeyword(db, "/allowlist"),
		ftBalances: storage.FromKeyword(db, "/ft"),
		nftOwners:  storage.FromKeyword(db, "/nft"),
		nonces:     storage.FromKeyword(db, "/nonce"),
	}
}
