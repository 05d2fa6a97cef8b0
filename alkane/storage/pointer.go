package storage

import (
	"math/big"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/codec"
)

// Pointer is a byte-string key into a host-provided Database, built up by
// composing a base keyword with select()-appended namespacing segments
// (spec.md §4.2). Pointers are cheap value types; composing one never
// touches the database.
type Pointer struct {
	db  Database
	key []byte
}

// FromKeyword starts a new pointer rooted at a literal key, e.g. "/paused".
func FromKeyword(db Database, keyword string) Pointer {
	return Pointer{db: db, key: []byte(keyword)}
}

// Keyword appends a literal suffix to the pointer's key.
func (p Pointer) Keyword(suffix string) Pointer {
	return Pointer{db: p.db, key: append(append([]byte{}, p.key...), suffix...)}
}

// Select appends variable-length bytes, namespacing a sub-map (e.g. a
// player address or token id) under the current key.
func (p Pointer) Select(bytes []byte) Pointer {
	out := make([]byte, 0, len(p.key)+1+len(bytes))
	out = append(out, p.key...)
	out = append(out, '/')
	out = append(out, bytes...)
	return Pointer{db: p.db, key: out}
}

// SelectId namespaces the pointer under the 32-byte wire encoding of id.
func (p Pointer) SelectId(id alkane.Id) Pointer {
	return p.Select(codec.EncodeId(id))
}

// SelectSortedIdPair namespaces the pointer under the canonical
// (ascending) encoding of a pair of Ids, per the sort_alkanes convention
// spec.md §4.2/I7 require for any compound two-Id key.
func (p Pointer) SelectSortedIdPair(a, b alkane.Id) Pointer {
	lo, hi := alkane.SortPair(a, b)
	return p.Select(append(codec.EncodeId(lo), codec.EncodeId(hi)...))
}

// Key returns the fully composed storage key.
func (p Pointer) Key() []byte { return append([]byte{}, p.key...) }

// Get returns the raw bytes stored at this pointer, or nil if unset.
func (p Pointer) Get() ([]byte, error) {
	v, err := p.db.Get(p.key)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// Set writes raw bytes at this pointer.
func (p Pointer) Set(value []byte) error {
	return p.db.Put(p.key, value)
}

// Clear removes the value at this pointer entirely (as opposed to writing
// a zero value), used when a ledger entry is fully withdrawn.
func (p Pointer) Clear() error {
	return p.db.Delete(p.key)
}

// GetUint8 reads a single byte, defaulting to 0 for an unset pointer.
func (p Pointer) GetUint8() (uint8, error) {
	v, err := p.Get()
	if err != nil {
		return 0, err
	}
	return codec.GetUint8(v), nil
}

// SetUint8 writes a single byte.
func (p Pointer) SetUint8(v uint8) error {
	return p.Set(codec.PutUint8(v))
}

// GetU128 reads a 16-byte little-endian u128, defaulting to zero for an
// unset pointer.
func (p Pointer) GetU128() (*big.Int, error) {
	v, err := p.Get()
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return big.NewInt(0), nil
	}
	return codec.GetU128LE(v)
}

// SetU128 writes a 16-byte little-endian u128.
func (p Pointer) SetU128(v *big.Int) error {
	return p.Set(codec.PutU128LE(v))
}

// GetId reads a 32-byte Id, returning (Id{}, false, nil) when unset.
func (p Pointer) GetId() (alkane.Id, bool, error) {
	v, err := p.Get()
	if err != nil {
		return alkane.Id{}, false, err
	}
	if len(v) == 0 {
		return alkane.Id{}, false, nil
	}
	id, err := codec.DecodeId(v)
	if err != nil {
		return alkane.Id{}, false, err
	}
	return id, true, nil
}

// SetId writes a 32-byte Id.
func (p Pointer) SetId(id alkane.Id) error {
	return p.Set(codec.EncodeId(id))
}

// Exists reports whether anything has been written at this pointer.
func (p Pointer) Exists() (bool, error) {
	v, err := p.Get()
	if err != nil {
		return false, err
	}
	return len(v) > 0, nil
}
