package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alem-hub/student-registry/internal/infrastructure/persistence"
)

// DocumentStore implements persistence.DocumentStore with one row per document.
type DocumentStore struct {
	conn    *Connection
	name    string
	timeout time.Duration

	mu       sync.Mutex
	revision uuid.UUID
}

// NewDocumentStore creates a store for the named document.
func NewDocumentStore(conn *Connection, name string) *DocumentStore {
	timeout := conn.config.QueryTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DocumentStore{
		conn:    conn,
		name:    name,
		timeout: timeout,
	}
}

// Name implements persistence.DocumentStore.
func (s *DocumentStore) Name() string {
	return "postgres:student_documents/" + s.name
}

// Revision returns the revision written by the last successful Save or read
// by the last successful Load.
func (s *DocumentStore) Revision() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Load returns the document body, or (nil, nil) if the row does not exist.
func (s *DocumentStore) Load(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	const query = `
		SELECT revision, body, digest
		FROM student_documents
		WHERE name = $1
	`

	var (
		revision uuid.UUID
		body     string
		digest   string
	)
	err := s.conn.QueryRow(ctx, query, s.name).Scan(&revision, &body, &digest)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: load document %q: %w", s.name, err)
	}

	doc := []byte(body)
	if err := persistence.VerifyDigest(doc, digest); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.revision = revision
	s.mu.Unlock()
	return doc, nil
}

// Save replaces the document row in a single transaction.
func (s *DocumentStore) Save(ctx context.Context, doc []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	const query = `
		INSERT INTO student_documents (name, revision, body, digest, saved_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (name) DO UPDATE SET
			revision = EXCLUDED.revision,
			body = EXCLUDED.body,
			digest = EXCLUDED.digest,
			saved_at = EXCLUDED.saved_at
	`

	revision := uuid.New()
	err := s.conn.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, s.name, revision, string(doc), persistence.Digest(doc))
		return err
	})
	if err != nil {
		return fmt.Errorf("postgres: save document %q: %w", s.name, err)
	}

	s.mu.Lock()
	s.revision = revision
	s.mu.Unlock()
	return nil
}
