package verifier

import (
	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
	"github.com/Sprimage/SatCity/alkane/runtime"
)

const (
	OpInitialize       uint32 = 0
	OpVerifyAndUpdate  uint32 = 1
	OpGetStateRoot     uint32 = 97
)

// Dispatcher builds the opcode table for a Contract, per spec §4.4's
// verifier opcode table. GetStateRoot is registered non-mutating, so the
// dispatcher neither acquires the reentrancy lock nor runs the
// leftover-refund epilogue for it.
func (c *Contract) Dispatcher() *runtime.Dispatcher {
	d := runtime.NewDispatcher(c.lock)

	d.Register(OpInitialize, "Initialize", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		bridge, err := r.NextId()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		if err := c.Initialize(ctx.Caller, bridge); err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), nil, nil
	})

	d.Register(OpVerifyAndUpdate, "VerifyAndUpdate", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		if err := c.VerifyAndUpdate(ctx.Caller, ctx.TransactionBytes); err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), nil, nil
	})

	d.Register(OpGetStateRoot, "GetStateRoot", false, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		root, err := c.GetStateRoot()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse().WithData(root), nil, nil
	})

	return d
}
