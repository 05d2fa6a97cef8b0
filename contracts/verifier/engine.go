package verifier

import (
	"errors"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
)

// Initialize bootstraps the verifier with the bridge identity it trusts.
// May run exactly once (I4, P1); the caller must be the already-configured
// owner (spec.md §4.4's Initialize access "uninit, owner").
func (c *Contract) Initialize(caller, bridge alkane.Id) error {
	if err := c.Lifecycle.OnlyOwner(caller); err != nil {
		return err
	}
	if err := c.Lifecycle.ObserveInitialization(); err != nil {
		return err
	}
	if err := c.bridgeID.SetId(bridge); err != nil {
		return err
	}
	c.emitter.Emit(NewInitializedEvent(bridge))
	return nil
}

// VerifyAndUpdate decodes the witness payload carried at transaction input
// index 0, checks it against the black-box proof primitive, and on success
// atomically commits the new state root and preprocessed variant
// (spec.md §4.5). Restricted to the owner (trusted-sequencer design,
// open-question decision (c)).
func (c *Contract) VerifyAndUpdate(caller alkane.Id, witnessInput0 []byte) error {
	if err := c.Lifecycle.RequireInitialized(); err != nil {
		return err
	}
	if err := c.Lifecycle.OnlyOwner(caller); err != nil {
		return err
	}

	w, err := codec.DecodeWitness(witnessInput0)
	if err != nil {
		if errors.Is(err, codec.ErrUnknownVariant) {
			return alkane.ErrUnsupportedVariant
		}
		return alkane.ErrMalformedWitness
	}

	if err := c.proof.Verify(w.Variant, w.FieldElements); err != nil {
		return alkane.ErrProofInvalid
	}

	if err := c.stateRoot.Set(w.NewRoot); err != nil {
		return err
	}
	if err := c.lastVariant.SetUint8(uint8(w.Variant)); err != nil {
		return err
	}
	c.emitter.Emit(NewRootAdvancedEvent(w.Variant, w.NewRoot))
	return nil
}

// GetStateRoot is a readonly read of the committed root. It does not
// acquire the reentrancy lock (spec.md §5: "readonly paths must not acquire
// it").
func (c *Contract) GetStateRoot() ([]byte, error) {
	return c.stateRoot.Get()
}

// BridgeID returns the bridge identity supplied at Initialize.
func (c *Contract) BridgeID() (alkane.Id, error) {
	id, _, err := c.bridgeID.GetId()
	return id, err
}

// LastPreprocessedVariant returns the variant of the most recently
// committed proof.
func (c *Contract) LastPreprocessedVariant() (codec.Variant, error) {
	v, err := c.lastVariant.GetUint8()
	return codec.Variant(v), err
}
