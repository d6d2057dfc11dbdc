// Package boltdb stores the registry document under a single key of an
// embedded bbolt database.
package boltdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/alem-hub/student-registry/internal/infrastructure/persistence"
)

const (
	// DefaultBucket holds registry documents.
	DefaultBucket = "documents"

	digestSuffix = ".digest"
)

// ErrBucketNotFound is returned when the documents bucket is missing.
var ErrBucketNotFound = errors.New("boltdb: bucket not found")

// Store keeps one document (plus its digest) in a bbolt bucket.
type Store struct {
	db     *bolt.DB
	path   string
	bucket []byte
	key    []byte
}

// Open opens (creating if needed) the database at path and prepares the bucket.
func Open(path, key string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("boltdb: create directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltdb: open %s: %w", path, err)
	}

	s := &Store{
		db:     db,
		path:   path,
		bucket: []byte(DefaultBucket),
		key:    []byte(key),
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltdb: init bucket: %w", err)
	}
	return s, nil
}

// Name implements persistence.DocumentStore.
func (s *Store) Name() string {
	return "bolt:" + s.path + "#" + string(s.key)
}

// Load returns a copy of the stored document, or (nil, nil) if absent.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc []byte
	var digest string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		digest = string(b.Get(s.digestKey()))
		v := b.Get(s.key)
		if v == nil && digest == "" {
			return nil
		}
		// Values are only valid for the life of the transaction.
		doc = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltdb: load: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	if err := persistence.VerifyDigest(doc, digest); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save replaces the document and its digest in one transaction.
func (s *Store) Save(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		doc = []byte{}
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		if err := b.Put(s.key, doc); err != nil {
			return err
		}
		return b.Put(s.digestKey(), []byte(persistence.Digest(doc)))
	})
	if err != nil {
		return fmt.Errorf("boltdb: save: %w", err)
	}
	return nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) digestKey() []byte {
	return append(append([]byte{}, s.key...), digestSuffix...)
}
