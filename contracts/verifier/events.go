package verifier

import (
	"encoding/hex"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
	"github.com/Sprimage/SatCity/core/events"
)

const (
	EventTypeInitialized  = "verifier.initialized"
	EventTypeRootAdvanced = "verifier.root_advanced"
)

// NewInitializedEvent records the bridge identity a verifier was
// bootstrapped with.
func NewInitializedEvent(bridge alkane.Id) events.Event {
	return events.Event{Type: EventTypeInitialized, Attributes: map[string]string{
		"bridge": bridge.String(),
	}}
}

// NewRootAdvancedEvent records a successful proof-gated root commit.
func NewRootAdvancedEvent(variant codec.Variant, newRoot []byte) events.Event {
	return events.Event{Type: EventTypeRootAdvanced, Attributes: map[string]string{
		"variant": hex.EncodeToString([]byte{byte(variant)}),
		"root":    hex.EncodeToString(newRoot),
	}}
}
