package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alem-hub/student-registry/internal/infrastructure/persistence"
)

const (
	fieldBody    = "body"
	fieldDigest  = "digest"
	fieldSavedAt = "saved_at"
)

// DocumentStore implements persistence.DocumentStore on a single hash key.
type DocumentStore struct {
	client redis.UniversalClient
	key    string
}

// NewDocumentStore creates a store for the named document.
func NewDocumentStore(client redis.UniversalClient, name string) (*DocumentStore, error) {
	if name == "" {
		return nil, ErrCacheKeyEmpty
	}
	return &DocumentStore{client: client, key: PrefixDocument + name}, nil
}

// Name implements persistence.DocumentStore.
func (s *DocumentStore) Name() string {
	return "redis:" + s.Key()
}

// Key returns the Redis key holding the document.
func (s *DocumentStore) Key() string {
	return s.key
}

// Load returns the document body, or (nil, nil) if the key does not exist.
func (s *DocumentStore) Load(ctx context.Context) ([]byte, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: load %s: %w", s.key, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	body, ok := fields[fieldBody]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s field", persistence.ErrMalformedDocument, s.key, fieldBody)
	}
	doc := []byte(body)
	if err := persistence.VerifyDigest(doc, fields[fieldDigest]); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save overwrites the document atomically.
func (s *DocumentStore) Save(ctx context.Context, doc []byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key,
			fieldBody, string(doc),
			fieldDigest, persistence.Digest(doc),
			fieldSavedAt, time.Now().UTC().Format(time.RFC3339Nano),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: save %s: %w", s.key, err)
	}
	return nil
}
