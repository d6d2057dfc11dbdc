package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/alem-hub/student-registry/internal/infrastructure/persistence"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "students.db"), "students")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_LoadMissingDocument(t *testing.T) {
	s := openTemp(t)

	doc, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestStore_SaveThenLoad(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []byte(`[{"id":1}]`)))
	require.NoError(t, s.Save(ctx, []byte(`[{"id":2}]`)))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2}]`, string(doc))
}

func TestStore_EmptyDocumentRoundTrips(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, nil))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)
}

func TestStore_DetectsTamperedDocument(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, []byte(`[]`)))

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(s.key, []byte(`[{"id":9}]`))
	})
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, persistence.ErrDigestMismatch)
}

func TestStore_Name(t *testing.T) {
	s := openTemp(t)

	assert.Contains(t, s.Name(), "bolt:")
	assert.Contains(t, s.Name(), "#students")
}
