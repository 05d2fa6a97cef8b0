// Package storage provides the key/value abstraction both contracts sit on
// top of: a host-provided Database plus a StoragePointer helper for
// building and composing keys (spec.md §4.2).
package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
)

// Database is the minimal key/value interface the host persistence layer
// must satisfy. Both contracts only ever see this interface, never a
// concrete backend, so the devnet harness can swap MemDB for LevelDB
// without touching contract code.
type Database interface {
	Get(key []byte) ([]byte, error)
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

// ErrNotFound is returned by Get when the key has never been written, or
// was cleared. Callers generally treat this the same as a zero-valued
// read, per the typed get/set helpers in pointer.go.
var ErrNotFound = leveldb.ErrNotFound

// MemDB is an in-memory Database, used by the unit tests.
type MemDB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemDB constructs an empty in-memory key/value store.
func NewMemDB() *MemDB {
	return &MemDB{data: make(map[string][]byte)}
}

// Get returns the stored value for key, or ErrNotFound.
func (db *MemDB) Get(key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	v, ok := db.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put stores value under key, overwriting any existing entry.
func (db *MemDB) Put(key []byte, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	db.data[string(key)] = v
	return nil
}

// Delete removes key, if present. Deleting a missing key is a no-op.
func (db *MemDB) Delete(key []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.data, string(key))
	return nil
}

// LevelDB is a persistent Database backed by goleveldb, used by the devnet
// harness at the DataDir named in its config.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) a LevelDB store at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

// Get returns the stored value for key, or ErrNotFound.
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

// Put stores value under key.
func (l *LevelDB) Put(key []byte, value []byte) error {
	return l.db.Put(key, value, nil)
}

// Delete removes key.
func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

// Close releases the underlying LevelDB handle.
func (l *LevelDB) Close() error {
	return l.db.Close()
}
