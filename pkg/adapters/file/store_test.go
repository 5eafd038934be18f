package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_RecordRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	c := cipher.New(turing.WithStore(store))
	m, err := c.Machine(cipher.Encrypt, 3)
	require.NoError(t, err)

	record, err := m.Record(context.Background(), "HELLO")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, record.ID+".json"))

	loaded, err := store.Load(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, "caesar-encrypt-3", loaded.Machine)
	assert.Equal(t, domain.Symbols("KHOOR"), loaded.Result.Tape)
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", ".hidden", "tmp-x"} {
		err := store.Save(ctx, &domain.RunRecord{ID: id})
		assert.ErrorIs(t, err, file.ErrInvalidID, id)

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, file.ErrInvalidID, id)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_ListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	require.NoError(t, store.Save(context.Background(), &domain.RunRecord{ID: "run-1"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-run-2-123.json"), []byte("{}"), 0o644))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1"}, ids)
}

func TestNew_DefaultDir(t *testing.T) {
	assert.Equal(t, file.DefaultDir, file.New("").BasePath)
}
