package runtime

import (
	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/storage"
)

// ReentrancyLock guards state-mutating entry points against reentry across
// a call/staticcall boundary (spec.md §4.3, §5). It is a single u8 at a
// fixed pointer; acquire fails loudly with ErrLocked, and release always
// runs via defer so it cannot be skipped on any exit path, including an
// error return.
type ReentrancyLock struct {
	ptr storage.Pointer
}

// NewReentrancyLock binds a lock to the "/lock" pointer under db.
func NewReentrancyLock(db storage.Database) ReentrancyLock {
	return ReentrancyLock{ptr: storage.FromKeyword(db, "/lock")}
}

func (l ReentrancyLock) acquire() error {
	held, err := l.ptr.GetUint8()
	if err != nil {
		return err
	}
	if held == 1 {
		return alkane.ErrLocked
	}
	return l.ptr.SetUint8(1)
}

func (l ReentrancyLock) release() error {
	return l.ptr.SetUint8(0)
}

// WithLock acquires the reentrancy lock, runs fn, and unconditionally
// releases the lock before returning — including when fn panics, since a
// panicking handler must never leave the contract permanently locked.
func WithLock(l ReentrancyLock, fn func() (alkane.CallResponse, error)) (resp alkane.CallResponse, err error) {
	if acquireErr := l.acquire(); acquireErr != nil {
		return alkane.CallResponse{}, acquireErr
	}
	defer func() {
		if releaseErr := l.release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return fn()
}
