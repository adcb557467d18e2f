package storage_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/requisition_backend/internal/adapters/storage"
)

func TestLocalStore_SaveGetDelete(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save("invoice.pdf", []byte("pdf-bytes"))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}-invoice\.pdf$`), ref)

	data, err := store.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), data)

	require.NoError(t, store.Delete(ref))
	_, err = store.Get(ref)
	assert.Error(t, err)
}

func TestLocalStore_SanitizesClientFilenames(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save("../../etc/pass wd", []byte("x"))
	require.NoError(t, err)
	assert.NotContains(t, ref, "..")
	assert.NotContains(t, ref, "/")
	assert.NotContains(t, ref, " ")

	data, err := store.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestLocalStore_DistinctNamesForSameFilename(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("report.xlsx", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save("report.xlsx", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
