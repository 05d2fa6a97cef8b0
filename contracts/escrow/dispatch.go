package escrow

import (
	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
	"github.com/Sprimage/SatCity/alkane/runtime"
)

const (
	OpInitialize                uint32 = 0
	OpDeposit                   uint32 = 1
	OpWithdraw                  uint32 = 2
	OpAddTokenToAllowlist       uint32 = 3
	OpRemoveTokenFromAllowlist  uint32 = 4
	OpSetOperator               uint32 = 5
	OpSetPaused                 uint32 = 6
)

// Dispatcher builds the opcode table for a Contract, per spec §4.4's escrow
// opcode table.
func (c *Contract) Dispatcher() *runtime.Dispatcher {
	d := runtime.NewDispatcher(c.lock)

	d.Register(OpInitialize, "Initialize", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		dao, err := r.NextId()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		operatorPubKey, err := r.NextBytesBlock()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		if _, err := c.Initialize(ctx.Caller, dao, operatorPubKey); err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), nil, nil
	})

	d.Register(OpDeposit, "Deposit", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		consumed, err := c.Deposit(ctx.Caller, ctx.IncomingAlkanes)
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), consumed, nil
	})

	d.Register(OpWithdraw, "Withdraw", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		recipient, err := r.NextId()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		token, err := r.NextId()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		amount, err := r.NextU128()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		nonce, err := r.NextU128()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		signature, err := r.NextBytesBlock()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		outgoing, err := c.Withdraw(ctx.Myself, recipient, token, amount, nonce, signature)
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse().WithAlkanes(outgoing), nil, nil
	})

	d.Register(OpAddTokenToAllowlist, "AddTokenToAllowlist", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		token, err := r.NextId()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		if err := c.AddTokenToAllowlist(ctx.Caller, token); err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), nil, nil
	})

	d.Register(OpRemoveTokenFromAllowlist, "RemoveTokenFromAllowlist", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		token, err := r.NextId()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		if err := c.RemoveTokenFromAllowlist(ctx.Caller, token); err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), nil, nil
	})

	d.Register(OpSetOperator, "SetOperator", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		newOperatorPubKey, err := r.NextBytesBlock()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		if err := c.SetOperator(ctx.Caller, newOperatorPubKey); err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), nil, nil
	})

	d.Register(OpSetPaused, "SetPaused", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		paused, err := r.NextBool()
		if err != nil {
			return alkane.CallResponse{}, nil, err
		}
		if err := c.SetPaused(ctx.Caller, paused); err != nil {
			return alkane.CallResponse{}, nil, err
		}
		return alkane.EmptyResponse(), nil, nil
	})

	return d
}
