package cachestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// envelope wraps a stored value with its deadline, expiry is checked
// lazily on read and expired keys are deleted in place.
type envelope struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expires_at"`
}

type badgerStore struct {
	db *badger.DB
}

// NewBadger opens an on-disk badger database rooted at dir.
func NewBadger(dir string) (Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir))
	if err != nil {
		return nil, err
	}
	return badgerStore{db: db}, nil
}

func (s badgerStore) Get(ctx context.Context, key string, out any) error {
	tx := s.db.NewTransaction(false)
	defer tx.Discard()

	item, err := tx.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	serialized, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}

	var stored envelope
	err = json.Unmarshal(serialized, &stored)
	if err != nil {
		return err
	}

	if time.Now().Unix() >= stored.ExpiresAt {
		tx := s.db.NewTransaction(true)
		defer tx.Commit()

		err = tx.Delete([]byte(key))
		if err != nil {
			return err
		}
		return ErrNotFound
	}

	return json.Unmarshal(stored.Value, out)
}

func (s badgerStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	serialized, err := json.Marshal(envelope{
		Value:     raw,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return err
	}

	tx := s.db.NewTransaction(true)
	defer tx.Commit()

	return tx.Set([]byte(key), serialized)
}

func (s badgerStore) Close() error {
	return s.db.Close()
}
