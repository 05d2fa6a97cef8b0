package runtime

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
	"github.com/Sprimage/SatCity/alkane/storage"
)

func TestLifecycleInitOnce(t *testing.T) {
	db := storage.NewMemDB()
	lc := NewLifecycle(db)

	ok, err := lc.IsInitialized()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, lc.ObserveInitialization())
	require.ErrorIs(t, lc.ObserveInitialization(), alkane.ErrAlreadyInitialized)
}

func TestLifecycleOnlyOwner(t *testing.T) {
	db := storage.NewMemDB()
	lc := NewLifecycle(db)
	owner := alkane.NewId(2, 7)
	require.NoError(t, lc.SetOwner(owner))

	require.NoError(t, lc.OnlyOwner(owner))
	require.ErrorIs(t, lc.OnlyOwner(alkane.NewId(9, 9)), alkane.ErrUnauthorized)
}

func TestLifecyclePauseGate(t *testing.T) {
	db := storage.NewMemDB()
	lc := NewLifecycle(db)
	require.NoError(t, lc.RequireNotPaused())

	require.NoError(t, lc.SetPaused(true))
	require.ErrorIs(t, lc.RequireNotPaused(), alkane.ErrPaused)

	require.NoError(t, lc.SetPaused(false))
	require.NoError(t, lc.RequireNotPaused())
}

func TestReentrancyLockReleasesOnError(t *testing.T) {
	db := storage.NewMemDB()
	lock := NewReentrancyLock(db)

	_, err := WithLock(lock, func() (alkane.CallResponse, error) {
		return alkane.CallResponse{}, alkane.ErrZeroAmount
	})
	require.ErrorIs(t, err, alkane.ErrZeroAmount)

	held, err := lock.ptr.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0), held)
}

func TestReentrancyLockRejectsReentry(t *testing.T) {
	db := storage.NewMemDB()
	lock := NewReentrancyLock(db)
	require.NoError(t, lock.acquire())
	require.ErrorIs(t, lock.acquire(), alkane.ErrLocked)
	require.NoError(t, lock.release())
}

func TestDispatchUnknownOpcode(t *testing.T) {
	db := storage.NewMemDB()
	d := NewDispatcher(NewReentrancyLock(db))
	ctx := &alkane.Context{Myself: alkane.NewId(1, 1), Caller: alkane.NewId(1, 2)}
	_, err := d.Dispatch(ctx, 999, nil)
	require.ErrorIs(t, err, alkane.ErrUnknownOpcode)
}

func TestDispatchRefundsUnconsumedIncoming(t *testing.T) {
	db := storage.NewMemDB()
	d := NewDispatcher(NewReentrancyLock(db))
	token := alkane.NewId(2, 100)

	d.Register(1, "NoOp", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		return alkane.EmptyResponse(), nil, nil
	})

	ctx := &alkane.Context{
		Myself:          alkane.NewId(1, 1),
		Caller:          alkane.NewId(1, 2),
		IncomingAlkanes: alkane.Parcel{alkane.NewTransfer(token, 5)},
	}
	resp, err := d.Dispatch(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, resp.Alkanes, 1)
	require.True(t, resp.Alkanes[0].Id.Equal(token))
	require.Equal(t, 0, resp.Alkanes[0].Value.Cmp(big.NewInt(5)))
}

func TestDispatchDoesNotRefundConsumedIncoming(t *testing.T) {
	db := storage.NewMemDB()
	d := NewDispatcher(NewReentrancyLock(db))
	token := alkane.NewId(2, 100)

	d.Register(1, "Consume", true, func(ctx *alkane.Context, r *codec.ParamReader) (alkane.CallResponse, alkane.Parcel, error) {
		return alkane.EmptyResponse(), ctx.IncomingAlkanes, nil
	})

	ctx := &alkane.Context{
		Myself:          alkane.NewId(1, 1),
		Caller:          alkane.NewId(1, 2),
		IncomingAlkanes: alkane.Parcel{alkane.NewTransfer(token, 5)},
	}
	resp, err := d.Dispatch(ctx, 1, nil)
	require.NoError(t, err)
	require.Empty(t, resp.Alkanes)
}
