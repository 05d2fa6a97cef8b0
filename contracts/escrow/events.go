package escrow

import (
	"strconv"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/core/events"
)

const (
	EventTypeInitialized      = "escrow.initialized"
	EventTypeDeposited        = "escrow.deposited"
	EventTypeWithdrawn        = "escrow.withdrawn"
	EventTypeTokenAllowlisted = "escrow.token_allowlisted"
	EventTypeTokenDisallowed  = "escrow.token_disallowed"
	EventTypeOperatorRotated  = "escrow.operator_rotated"
	EventTypePausedSet        = "escrow.paused_set"
)

// NewInitializedEvent records the DAO identity an escrow was bootstrapped
// with.
func NewInitializedEvent(dao alkane.Id) events.Event {
	return events.Event{Type: EventTypeInitialized, Attributes: map[string]string{
		"dao": dao.String(),
	}}
}

// NewDepositedEvent records a single asset's credit into the ledger.
func NewDepositedEvent(caller, token alkane.Id, value string) events.Event {
	return events.Event{Type: EventTypeDeposited, Attributes: map[string]string{
		"caller": caller.String(),
		"token":  token.String(),
		"value":  value,
	}}
}

// NewWithdrawnEvent records a successful, signature-authorized withdrawal.
func NewWithdrawnEvent(recipient, token alkane.Id, amount string, nonce uint64) events.Event {
	return events.Event{Type: EventTypeWithdrawn, Attributes: map[string]string{
		"recipient": recipient.String(),
		"token":     token.String(),
		"amount":    amount,
		"nonce":     strconv.FormatUint(nonce, 10),
	}}
}

// NewTokenAllowlistedEvent records a DAO decision to allow deposits of token.
func NewTokenAllowlistedEvent(token alkane.Id) events.Event {
	return events.Event{Type: EventTypeTokenAllowlisted, Attributes: map[string]string{
		"token": token.String(),
	}}
}

// NewTokenDisallowedEvent records a DAO decision to stop accepting token.
// Existing balances are left untouched.
func NewTokenDisallowedEvent(token alkane.Id) events.Event {
	return events.Event{Type: EventTypeTokenDisallowed, Attributes: map[string]string{
		"token": token.String(),
	}}
}

// NewOperatorRotatedEvent records a DAO-driven operator key rotation, the
// audit trail a withdrawal-signing incident response would need.
func NewOperatorRotatedEvent(newOperatorPubKey []byte) events.Event {
	return events.Event{Type: EventTypeOperatorRotated, Attributes: map[string]string{
		"newOperatorPubKeyLen": strconv.Itoa(len(newOperatorPubKey)),
	}}
}

// NewPausedSetEvent records a pause-flag transition.
func NewPausedSetEvent(paused bool) events.Event {
	return events.Event{Type: EventTypePausedSet, Attributes: map[string]string{
		"paused": strconv.FormatBool(paused),
	}}
}
