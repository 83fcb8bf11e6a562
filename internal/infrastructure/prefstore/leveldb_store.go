package prefstore

import (
	"context"
	"errors"
	"fmt"

	"yieldhop/internal/app/port"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// LevelDBStore persists preferences in a goleveldb database.
type LevelDBStore struct {
	db *leveldb.DB
}

// Open opens (or creates) the preference database at path.
func Open(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store %s: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// OpenMemory opens a store that lives only for the life of the process.
func OpenMemory() (*LevelDBStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory preference store: %w", err)
	}
	return &LevelDBStore{db: db}, nil
}

// Get returns the value stored under key; ok is false when nothing was stored.
func (s *LevelDBStore) Get(_ context.Context, key string) (string, bool, error) {
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	return string(value), true, nil
}

// Put stores value under key and syncs it to disk.
func (s *LevelDBStore) Put(_ context.Context, key, value string) error {
	if err := s.db.Put([]byte(key), []byte(value), &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

// Close releases the database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

var _ port.PreferenceStore = (*LevelDBStore)(nil)
