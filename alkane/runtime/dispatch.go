package runtime

import (
	"fmt"
	"math/big"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
)

// Handler is a single opcode's business logic: it reads its parameters off
// r and returns the call's response plus the subset of the incoming
// parcel it deliberately consumed (credited to ledger state, burned, or
// otherwise retained on purpose). Anything in ctx.IncomingAlkanes that is
// neither consumed nor explicitly re-sent in the response is leftover and
// gets auto-refunded by the dispatcher (spec.md §4.6). Handlers never
// acquire the reentrancy lock themselves — Dispatcher does that uniformly
// for state-mutating opcodes.
type Handler func(ctx *alkane.Context, r *codec.ParamReader) (resp alkane.CallResponse, consumed alkane.Parcel, err error)

type opcodeEntry struct {
	name     string
	mutating bool
	handler  Handler
}

// Dispatcher routes a flat opcode space to registered handlers (spec.md
// §4.4). Unknown opcodes fail with ErrUnknownOpcode.
type Dispatcher struct {
	entries map[uint32]opcodeEntry
	lock    ReentrancyLock
}

// NewDispatcher constructs an empty opcode table guarded by lock.
func NewDispatcher(lock ReentrancyLock) *Dispatcher {
	return &Dispatcher{entries: make(map[uint32]opcodeEntry), lock: lock}
}

// Register adds a handler for opcode. mutating handlers are wrapped by the
// reentrancy lock and the leftover-refund epilogue; readonly handlers
// (e.g. GetStateRoot) are not, per spec.md §5 ("readonly paths must not
// acquire it").
func (d *Dispatcher) Register(opcode uint32, name string, mutating bool, h Handler) {
	d.entries[opcode] = opcodeEntry{name: name, mutating: mutating, handler: h}
}

// Dispatch decodes the raw parameter buffer, routes to the registered
// handler for opcode, and — for mutating handlers — wraps execution in the
// reentrancy lock and the leftover-refund epilogue.
func (d *Dispatcher) Dispatch(ctx *alkane.Context, opcode uint32, rawParams []byte) (alkane.CallResponse, error) {
	entry, ok := d.entries[opcode]
	if !ok {
		return alkane.CallResponse{}, alkane.ErrUnknownOpcode
	}

	values, err := codec.DecodeParamStream(rawParams)
	if err != nil {
		return alkane.CallResponse{}, fmt.Errorf("%w: %v", alkane.ErrUnknownOpcode, err)
	}
	reader := codec.NewParamReader(values)

	run := func() (alkane.CallResponse, error) {
		resp, consumed, err := entry.handler(ctx, reader)
		if err != nil {
			return alkane.CallResponse{}, err
		}
		if !entry.mutating {
			return resp, nil
		}
		return refundLeftovers(resp, consumed, ctx.IncomingAlkanes), nil
	}

	if !entry.mutating {
		return run()
	}
	return WithLock(d.lock, run)
}

// refundLeftovers implements the leftover-refund epilogue from spec.md
// §4.6: every asset that arrived with the call (ctx.IncomingAlkanes) but
// was neither consumed by the handler nor already assigned to an explicit
// outgoing transfer is returned to the caller. Iteration is in ascending
// Id order for determinism. A real cross-contract call's returned assets
// would extend `consumed`/`resp.Alkanes` the same way; this system makes
// no `call`/`staticcall`, so incoming is the only leftover source.
func refundLeftovers(resp alkane.CallResponse, consumed alkane.Parcel, incoming alkane.Parcel) alkane.CallResponse {
	assigned := sumByID(resp.Alkanes)
	for id, v := range sumByID(consumed) {
		if cur, ok := assigned[id]; ok {
			assigned[id] = new(big.Int).Add(cur, v)
		} else {
			assigned[id] = v
		}
	}

	totalIncoming := sumByID(incoming)
	refunds := append(alkane.Parcel{}, resp.Alkanes...)
	for _, id := range incoming.SortedIds() {
		key := id.String()
		have := assigned[key]
		if have == nil {
			have = big.NewInt(0)
		}
		leftover := new(big.Int).Sub(totalIncoming[key], have)
		if leftover.Sign() > 0 {
			refunds = append(refunds, alkane.Transfer{Id: id, Value: leftover})
		}
	}

	resp.Alkanes = refunds
	return resp
}

func sumByID(p alkane.Parcel) map[string]*big.Int {
	out := make(map[string]*big.Int, len(p))
	for _, t := range p {
		key := t.Id.String()
		if cur, ok := out[key]; ok {
			out[key] = new(big.Int).Add(cur, t.Value)
		} else {
			out[key] = new(big.Int).Set(t.Value)
		}
	}
	return out
}
