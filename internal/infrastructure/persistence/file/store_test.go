package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "students.json"))

	doc, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestStore_LoadEmptyFileIsNotNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	doc, err := NewStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)
}

func TestStore_SaveOverwritesInFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "students.json")
	s := NewStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []byte(`[{"id":1},{"id":2}]`)))
	require.NoError(t, s.Save(ctx, []byte(`[]`)))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPerm, info.Mode().Perm())
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "students.json"))

	require.NoError(t, s.Save(context.Background(), []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "students.json", entries[0].Name())
}

func TestStore_SaveFailsWhenTargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "students.json")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	err := NewStore(target).Save(context.Background(), []byte(`[]`))

	assert.Error(t, err)
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewStore(filepath.Join(t.TempDir(), "students.json"))

	assert.ErrorIs(t, s.Save(ctx, []byte(`[]`)), context.Canceled)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "file:"+s.Path(), s.Name())
}
