package escrow

import (
	"math/big"

	"github.com/Sprimage/SatCity/alkane"
	ecrypto "github.com/Sprimage/SatCity/crypto"
)

// Initialize bootstraps the escrow: records the DAO as /owner and persists
// the operator's public key. May run exactly once (I4, P1).
func (c *Contract) Initialize(caller alkane.Id, dao alkane.Id, operatorPubKey []byte) (alkane.Parcel, error) {
	if err := c.Lifecycle.ObserveInitialization(); err != nil {
		return nil, err
	}
	if err := c.Lifecycle.SetOwner(dao); err != nil {
		return nil, err
	}
	if err := c.operator.Set(operatorPubKey); err != nil {
		return nil, err
	}
	c.emitter.Emit(NewInitializedEvent(dao))
	return nil, nil
}

// pendingCredit tracks the running post-deposit balance a parcel's FT
// transfers stage for a single token, so two transfers of the same token
// within one parcel accumulate (and are overflow-checked) before either
// one is written.
type pendingCredit struct {
	id      alkane.Id
	balance *big.Int
}

// Deposit credits every transfer in incoming against the caller's ledger
// balance (fungible) or records NFT ownership (value == 1), per spec §4.6.
// The whole parcel is validated and staged in memory first; nothing is
// written to storage until every transfer has passed its checks, so a
// later transfer's failure (unallowlisted token, zero value, overflow, NFT
// ownership conflict) never leaves an earlier transfer's write committed —
// spec.md §5's all-or-nothing call semantics (I1 balance conservation)
// bind the whole parcel, not each transfer independently. The escrow
// retains everything it accepts, so the handler never returns an outgoing
// parcel; instead it reports back which transfers it consumed so the
// dispatcher's leftover-refund epilogue leaves nothing behind.
func (c *Contract) Deposit(caller alkane.Id, incoming alkane.Parcel) (consumed alkane.Parcel, err error) {
	if err := c.Lifecycle.RequireInitialized(); err != nil {
		return nil, err
	}
	paused, err := c.Lifecycle.IsPaused()
	if err != nil {
		return nil, err
	}
	if paused {
		return nil, alkane.ErrPaused
	}
	if incoming.Empty() {
		return nil, alkane.ErrNothingToDeposit
	}

	ftStaged := make(map[string]*pendingCredit)
	nftStaged := make(map[string]alkane.Id)

	for _, t := range incoming {
		allowed, err := c.isAllowed(t.Id)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, alkane.ErrTokenNotAllowed
		}
		if t.IsZero() {
			return nil, alkane.ErrZeroAmount
		}
		if t.IsNFT() {
			if err := c.stageNFTDeposit(caller, t.Id, nftStaged); err != nil {
				return nil, err
			}
			continue
		}
		if err := c.stageFTCredit(caller, t.Id, t.Value, ftStaged); err != nil {
			return nil, err
		}
	}

	for _, token := range nftStaged {
		if err := c.nftOwners.SelectId(token).SetId(caller); err != nil {
			return nil, err
		}
	}
	for _, pending := range ftStaged {
		if err := c.ftBalances.SelectId(caller).SelectId(pending.id).SetU128(pending.balance); err != nil {
			return nil, err
		}
	}

	for _, t := range incoming {
		if t.IsNFT() {
			if _, written := nftStaged[t.Id.String()]; written {
				c.emitter.Emit(NewDepositedEvent(caller, t.Id, "1"))
			}
			continue
		}
		c.emitter.Emit(NewDepositedEvent(caller, t.Id, t.Value.String()))
	}
	return incoming, nil
}

// stageNFTDeposit validates an NFT transfer and, if it requires a write
// (a first-time deposit), records the pending owner in staged without
// touching storage. A same-owner replay is an idempotent no-op (open
// question (b): reject cross-owner overwrite, accept same-owner replay)
// and is deliberately left out of staged so no redundant write or event
// is produced for it.
func (c *Contract) stageNFTDeposit(caller, token alkane.Id, staged map[string]alkane.Id) error {
	current, exists, err := c.nftOwners.SelectId(token).GetId()
	if err != nil {
		return err
	}
	if exists {
		if !current.Equal(caller) {
			return alkane.ErrNFTAlreadyDeposited
		}
		return nil
	}
	staged[token.String()] = token
	return nil
}

// stageFTCredit validates a fungible transfer against the caller's current
// balance plus anything already staged for token earlier in this same
// parcel, and records the resulting running balance in staged without
// touching storage.
func (c *Contract) stageFTCredit(caller, token alkane.Id, value *big.Int, staged map[string]*pendingCredit) error {
	key := token.String()
	pending, ok := staged[key]
	if !ok {
		balance, err := c.ftBalances.SelectId(caller).SelectId(token).GetU128()
		if err != nil {
			return err
		}
		pending = &pendingCredit{id: token, balance: balance}
		staged[key] = pending
	}
	next := new(big.Int).Add(pending.balance, value)
	if !alkane.FitsU128(next) {
		return alkane.ErrOverflow
	}
	pending.balance = next
	return nil
}

// Withdraw releases amount of token to recipient, authorized by a signature
// from the stored operator key over the domain-separated withdraw message,
// bound to the recipient's next expected nonce (spec §4.6, P3).
func (c *Contract) Withdraw(myself, recipient, token alkane.Id, amount, nonce *big.Int, signature []byte) (alkane.Parcel, error) {
	if err := c.Lifecycle.RequireInitialized(); err != nil {
		return nil, err
	}
	paused, err := c.Lifecycle.IsPaused()
	if err != nil {
		return nil, err
	}
	if paused {
		return nil, alkane.ErrPaused
	}

	// Step order follows spec.md §4.6 exactly: signature recovery (2/3),
	// then nonce (4), then the zero-amount/balance/ownership check (5).
	// A malformed request can fail more than one of these at once, and
	// clients assert on which stable error literal comes back first.
	digest := ecrypto.WithdrawMessageHash(recipient, token, amount, nonce, myself)
	operatorKey, err := c.operator.Get()
	if err != nil {
		return nil, err
	}
	recovered, err := ecrypto.RecoverOperatorPublicKey(digest, signature)
	if err != nil || !bytesEqual(recovered, operatorKey) {
		return nil, alkane.ErrBadSignature
	}

	noncePtr := c.nonces.SelectId(recipient)
	stored, err := noncePtr.GetU128()
	if err != nil {
		return nil, err
	}
	if nonce == nil || nonce.Cmp(stored) != 0 {
		return nil, alkane.ErrBadNonce
	}

	if amount == nil || amount.Sign() == 0 {
		return nil, alkane.ErrZeroAmount
	}

	if amount.Cmp(big.NewInt(1)) == 0 {
		nftPtr := c.nftOwners.SelectId(token)
		owner, exists, err := nftPtr.GetId()
		if err != nil {
			return nil, err
		}
		if !exists || !owner.Equal(recipient) {
			return nil, alkane.ErrNotOwner
		}
		if err := nftPtr.Clear(); err != nil {
			return nil, err
		}
	} else {
		ftPtr := c.ftBalances.SelectId(recipient).SelectId(token)
		balance, err := ftPtr.GetU128()
		if err != nil {
			return nil, err
		}
		if balance.Cmp(amount) < 0 {
			return nil, alkane.ErrInsufficientBalance
		}
		remaining := new(big.Int).Sub(balance, amount)
		if remaining.Sign() == 0 {
			if err := ftPtr.Clear(); err != nil {
				return nil, err
			}
		} else if err := ftPtr.SetU128(remaining); err != nil {
			return nil, err
		}
	}

	nextNonce := new(big.Int).Add(stored, big.NewInt(1))
	if err := noncePtr.SetU128(nextNonce); err != nil {
		return nil, err
	}

	c.emitter.Emit(NewWithdrawnEvent(recipient, token, amount.String(), stored.Uint64()))
	return alkane.Parcel{alkane.Transfer{Id: token, Value: amount}}, nil
}

// AddTokenToAllowlist permits caller to deposit token. DAO-gated.
func (c *Contract) AddTokenToAllowlist(caller, token alkane.Id) error {
	if err := c.Lifecycle.OnlyOwner(caller); err != nil {
		return err
	}
	if err := c.allowlist.SelectId(token).SetUint8(1); err != nil {
		return err
	}
	c.emitter.Emit(NewTokenAllowlistedEvent(token))
	return nil
}

// RemoveTokenFromAllowlist revokes deposit permission for token. Existing
// balances are untouched; only future deposits are blocked. DAO-gated.
func (c *Contract) RemoveTokenFromAllowlist(caller, token alkane.Id) error {
	if err := c.Lifecycle.OnlyOwner(caller); err != nil {
		return err
	}
	if err := c.allowlist.SelectId(token).SetUint8(0); err != nil {
		return err
	}
	c.emitter.Emit(NewTokenDisallowedEvent(token))
	return nil
}

// SetOperator rotates the withdrawal-signing key. DAO-gated.
func (c *Contract) SetOperator(caller alkane.Id, newOperatorPubKey []byte) error {
	if err := c.Lifecycle.OnlyOwner(caller); err != nil {
		return err
	}
	if err := c.operator.Set(newOperatorPubKey); err != nil {
		return err
	}
	c.emitter.Emit(NewOperatorRotatedEvent(newOperatorPubKey))
	return nil
}

// SetPaused toggles the pause gate. DAO-gated; admin ops remain available
// while paused (spec §4.6's state machine).
func (c *Contract) SetPaused(caller alkane.Id, paused bool) error {
	if err := c.Lifecycle.OnlyOwner(caller); err != nil {
		return err
	}
	if err := c.Lifecycle.SetPaused(paused); err != nil {
		return err
	}
	c.emitter.Emit(NewPausedSetEvent(paused))
	return nil
}

func (c *Contract) isAllowed(token alkane.Id) (bool, error) {
	v, err := c.allowlist.SelectId(token).GetUint8()
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
