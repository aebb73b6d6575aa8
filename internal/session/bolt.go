package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var sessionBucket = []byte("session")

// BoltKV keeps values in a single bbolt bucket.
type BoltKV struct {
	db *bbolt.DB
}

var _ KV = (*BoltKV)(nil)

// NewBoltKV returns a KV backed by the given bbolt database.
func NewBoltKV(db *bbolt.DB) *BoltKV {
	return &BoltKV{db: db}
}

// OpenBoltKV opens (or creates) the bbolt database at path.
func OpenBoltKV(path string) (*BoltKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return NewBoltKV(db), nil
}

// Close closes the underlying bbolt database.
func (b *BoltKV) Close() error {
	return b.db.Close()
}

func (b *BoltKV) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	return value, found, err
}

func (b *BoltKV) Set(key, value string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

func (b *BoltKV) Delete(key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}
