package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerStore keeps each collection under its own key prefix.
// The key is formatted as "{collection}:{timestamp_padded}:{uuid}" to:
//  1. Preserve insertion order using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two documents
//     arrive at the same nanosecond.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerStore(db *badger.DB, log *slog.Logger) *BadgerStore {
	return &BadgerStore{db: db, log: log}
}

func key(collection string, at time.Time) []byte {
	return []byte(fmt.Sprintf("%s:%019d:%s", collection, at.UnixNano(), uuid.New()))
}

func prefix(collection string) []byte {
	return []byte(collection + ":")
}

func (s *BadgerStore) Insert(_ context.Context, collection string, doc []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(collection, time.Now()), doc)
	})
}

func (s *BadgerStore) FindOne(_ context.Context, collection string, match Predicate) ([]byte, error) {
	var found []byte
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := prefix(collection)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			var stop bool
			err := it.Item().Value(func(val []byte) error {
				if match(val) {
					found = append([]byte(nil), val...)
					stop = true
				}
				return nil
			})
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNoDocument
	}
	return found, nil
}

func (s *BadgerStore) FindMany(_ context.Context, collection string, match Predicate) ([][]byte, error) {
	var docs [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := prefix(collection)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				if match(val) {
					docs = append(docs, append([]byte(nil), val...))
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteMany removes every matching document in a single transaction, so a
// scan running concurrently sees either all of the batch or none of it.
func (s *BadgerStore) DeleteMany(_ context.Context, collection string, match Predicate) (int, error) {
	deleted := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		p := prefix(collection)
		var stale [][]byte
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				if match(val) {
					stale = append(stale, item.KeyCopy(nil))
				}
				return nil
			})
			if err != nil {
				it.Close()
				return err
			}
		}
		// The iterator must be closed before the transaction writes.
		it.Close()
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		deleted = len(stale)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// UpdateOne patches the first matching document in place, keeping its key and
// therefore its position in the collection's insertion order.
func (s *BadgerStore) UpdateOne(_ context.Context, collection string, match Predicate, patch Patch) error {
	matched := false
	err := s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		p := prefix(collection)
		var key, doc []byte
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				if match(val) {
					doc = append([]byte(nil), val...)
				}
				return nil
			})
			if err != nil {
				it.Close()
				return err
			}
			if doc != nil {
				key = item.KeyCopy(nil)
				break
			}
		}
		// The iterator must be closed before the transaction writes.
		it.Close()
		if doc == nil {
			return nil
		}
		patched, err := patch(doc)
		if err != nil {
			return err
		}
		matched = true
		return txn.Set(key, patched)
	})
	if err != nil {
		return err
	}
	if !matched {
		return ErrNoDocument
	}
	return nil
}
