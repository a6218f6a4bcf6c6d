package infra

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorageClient {
	t.Helper()
	return &LocalStorageClient{
		Directory:    t.TempDir(),
		PublicPrefix: "/uploads",
	}
}

func TestLocalStorage_StoreAndResolve(t *testing.T) {
	storage := newTestStorage(t)

	key, err := storage.Store([]byte("jpeg bytes"), "panel front.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(key, "_panel_front.jpg"))
	assert.True(t, storage.Exists(key))
	assert.Equal(t, "/uploads/"+key, storage.Resolve(key))

	data, err := os.ReadFile(filepath.Join(storage.Directory, key))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestLocalStorage_KeysNeverCollide(t *testing.T) {
	storage := newTestStorage(t)

	const writers = 16
	keys := make([]string, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := storage.Store([]byte{byte(i)}, "same-name.jpg")
			assert.NoError(t, err)
			keys[i] = key
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, writers)
	for _, key := range keys {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	storage := newTestStorage(t)

	key, err := storage.Store([]byte("x"), "shot.jpg")
	require.NoError(t, err)

	require.NoError(t, storage.Delete(key))
	assert.False(t, storage.Exists(key))

	// Second delete of the same key is a no-op.
	assert.NoError(t, storage.Delete(key))

	assert.Error(t, storage.Delete(""))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "panel_front.jpg", sanitizeFileName("panel front.jpg"))
	assert.Equal(t, "passwd", sanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "shot.jpg", sanitizeFileName("sh\x00ot!.jpg"))
	assert.Equal(t, "blob", sanitizeFileName("???"))
}
