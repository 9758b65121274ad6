// Package storage persists the last known snapshot of every room.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/roomchess-backend/internal/model"
	"github.com/dgraph-io/badger/v4"
)

// Store wraps BadgerDB for room snapshots
type Store struct {
	db *badger.DB
}

// Open opens the store under dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func roomKey(roomID int) []byte {
	return []byte(fmt.Sprintf("room/%d", roomID))
}

// Save overwrites the snapshot for snap.RoomID
func (s *Store) Save(snap model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(roomKey(snap.RoomID), data)
	})
}

// Load returns the snapshot for roomID; ok is false if none was saved.
func (s *Store) Load(roomID int) (snap model.Snapshot, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(roomID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	return snap, ok, err
}

func (s *Store) Delete(roomID int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(roomKey(roomID))
	})
}
