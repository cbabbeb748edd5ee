package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "cache"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTemp(t)

	require.NoError(t, store.Put("2024.json", []byte(`{"races":1}`)))

	body, ok, err := store.Get("2024.json", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"races":1}`, string(body))
}

func TestGetMissingKey(t *testing.T) {
	store := openTemp(t)

	body, ok, err := store.Get("nope", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, body)
}

func TestPutReplacesEntry(t *testing.T) {
	store := openTemp(t)

	require.NoError(t, store.Put("k", []byte("old")))
	require.NoError(t, store.Put("k", []byte("new")))

	body, ok, err := store.Get("k", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", string(body))
}

func TestExpiredEntriesMiss(t *testing.T) {
	store := openTemp(t)
	start := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return start }

	require.NoError(t, store.Put("k", []byte("v")))

	store.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, ok, err := store.Get("k", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get("k", 0)
	require.NoError(t, err)
	assert.True(t, ok, "zero max age accepts any entry")

	purged, err := store.Purge(time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}

func TestOpenRequiresDirectory(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenFailsOnFilePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Open(file)
	assert.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestOperationsAfterCloseReportClosed(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Put("2024.json", []byte(`{}`)))
	require.NoError(t, store.Close())

	_, ok, err := store.Get("2024.json", time.Hour)
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, ok)
	assert.ErrorIs(t, store.Put("2024.json", []byte(`{}`)), ErrClosed)
	_, err = store.Purge(time.Hour)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCloseDuringWrites(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.Put(fmt.Sprintf("%d.json", i), []byte(`{}`))
		}(i)
	}
	require.NoError(t, store.Close())
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrClosed)
		}
	}
}
