package runtime

import (
	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/storage"
)

// Lifecycle bundles the three storage-backed guards every opcode-driven
// contract needs: a one-shot init flag, an owner identity, and a pause
// flag (spec.md §4.3). Contracts embed a Lifecycle and compose their own
// additional pointers alongside it.
type Lifecycle struct {
	db          storage.Database
	initialized storage.Pointer
	owner       storage.Pointer
	paused      storage.Pointer
}

// NewLifecycle wires the standard /initialized, /owner, and /paused
// pointers against db.
func NewLifecycle(db storage.Database) Lifecycle {
	return Lifecycle{
		db:          db,
		initialized: storage.FromKeyword(db, "/initialized"),
		owner:       storage.FromKeyword(db, "/owner"),
		paused:      storage.FromKeyword(db, "/paused"),
	}
}

// IsInitialized reports whether ObserveInitialization has ever succeeded.
func (l Lifecycle) IsInitialized() (bool, error) {
	v, err := l.initialized.GetUint8()
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// ObserveInitialization atomically checks-and-sets the init flag: fails
// with ErrAlreadyInitialized if it is already set, otherwise sets it and
// returns nil. Once set it never returns to unset (I4).
func (l Lifecycle) ObserveInitialization() error {
	already, err := l.IsInitialized()
	if err != nil {
		return err
	}
	if already {
		return alkane.ErrAlreadyInitialized
	}
	return l.initialized.SetUint8(1)
}

// RequireInitialized fails with ErrNotInitialized unless Initialize has
// already run.
func (l Lifecycle) RequireInitialized() error {
	ok, err := l.IsInitialized()
	if err != nil {
		return err
	}
	if !ok {
		return alkane.ErrNotInitialized
	}
	return nil
}

// SetOwner persists the admin principal.
func (l Lifecycle) SetOwner(owner alkane.Id) error {
	return l.owner.SetId(owner)
}

// Owner returns the persisted admin principal, or the zero Id if unset.
func (l Lifecycle) Owner() (alkane.Id, error) {
	id, _, err := l.owner.GetId()
	return id, err
}

// OnlyOwner fails with ErrUnauthorized unless caller matches the persisted
// owner (I5). With no owner persisted yet, every caller is rejected.
func (l Lifecycle) OnlyOwner(caller alkane.Id) error {
	owner, exists, err := l.owner.GetId()
	if err != nil {
		return err
	}
	if !exists || !caller.Equal(owner) {
		return alkane.ErrUnauthorized
	}
	return nil
}

// IsPaused reports the current pause flag.
func (l Lifecycle) IsPaused() (bool, error) {
	v, err := l.paused.GetUint8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetPaused writes the pause flag. Any non-zero input is normalized to 1
// at rest, per spec.md §4.6.
func (l Lifecycle) SetPaused(paused bool) error {
	if paused {
		return l.paused.SetUint8(1)
	}
	return l.paused.SetUint8(0)
}

// RequireNotPaused fails with ErrPaused while the contract is paused.
func (l Lifecycle) RequireNotPaused() error {
	paused, err := l.IsPaused()
	if err != nil {
		return err
	}
	if paused {
		return alkane.ErrPaused
	}
	return nil
}
