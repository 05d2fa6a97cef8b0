// Package verifier implements the Verifier contract: it accepts a STARK
// proof of an L2 state transition packaged in the SATC witness format,
// checks it against a black-box proof primitive, and on success advances
// the canonical state root it custodies (spec.md §4.5).
package verifier

import (
	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/runtime"
	"github.com/Sprimage/SatCity/alkane/storage"
	"github.com/Sprimage/SatCity/contracts/verifier/proof"
	"github.com/Sprimage/SatCity/core/events"
)

// Contract is the Verifier instance: a Lifecycle (init/owner/pause guard —
// the pause flag is unused here since §4.5 names no pause gate for this
// contract, but Lifecycle is shared scaffolding across both contracts), a
// reentrancy lock, the bridge identity it was bootstrapped with, and the
// committed state root.
type Contract struct {
	db        storage.Database
	Lifecycle runtime.Lifecycle
	lock      runtime.ReentrancyLock
	emitter   events.Emitter
	proof     proof.Verifier

	bridgeID    storage.Pointer
	stateRoot   storage.Pointer
	lastVariant storage.Pointer
}

// New wires a Contract against db and records owner as the deployment-time
// admin identity. Unlike GameEscrow (whose Initialize opcode sets the DAO),
// the Verifier's Initialize is itself owner-gated (spec.md §4.4: access
// "uninit, owner"), so the owner must already be known at construction time
// — set here, at deployment, rather than by the Initialize opcode.
// delegating proof checks to pv. emitter may be nil, in which case events
// are discarded.
func New(db storage.Database, owner alkane.Id, pv proof.Verifier, emitter events.Emitter) (*Contract, error) {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	lc := runtime.NewLifecycle(db)
	if err := lc.SetOwner(owner); err != nil {
		return nil, err
	}
	return &Contract{
		db:          db,
		Lifecycle:   lc,
		lock:        runtime.NewReentrancyLock(db),
		emitter:     emitter,
		proof:       pv,
		bridgeID:    storage.FromKeyword(db, "/bridge_id"),
		stateRoot:   storage.FromKeyword(db, "/state_root"),
		lastVariant: storage.FromKeyword(db, "/last_preprocessed_variant"),
	}, nil
}
