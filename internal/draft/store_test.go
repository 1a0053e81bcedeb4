package draft

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "drafts"))
	require.NoError(t, err)

	sq, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	stores := map[string]Store{
		BackendFile:   fs,
		BackendSQLite: sq,
		BackendMemory: NewMemoryStore(),
	}

	if url := os.Getenv("ESGSYNC_TEST_REDIS_URL"); url != "" {
		rs, err := NewRedisStore(ctx, url, time.Minute)
		require.NoError(t, err)
		t.Cleanup(func() { _ = rs.Close() })
		stores[BackendRedis] = rs
	}
	return stores
}

func TestStores_RoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Load(ctx, DefaultKey)
			require.ErrorIs(t, err, ErrNotFound)

			saved, err := SaveState(ctx, store, DefaultKey, sampleState())
			require.NoError(t, err)

			loaded, err := store.Load(ctx, DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, saved.DraftID, loaded.DraftID)
			assert.Equal(t, "gov-1", loaded.State.SyncIDs.Governance)
			assert.Nil(t, loaded.State.Profile.RegistrationCertificate.Data)

			// overwrite keeps a single draft per key
			second, err := SaveState(ctx, store, DefaultKey, sampleState())
			require.NoError(t, err)
			loaded, err = store.Load(ctx, DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, second.DraftID, loaded.DraftID)

			require.NoError(t, store.Delete(ctx, DefaultKey))
			require.NoError(t, store.Delete(ctx, DefaultKey))
			_, err = store.Load(ctx, DefaultKey)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStores_EmptyKey(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := store.Load(ctx, " ")
			assert.ErrorIs(t, err, ErrInvalidKey)
			assert.ErrorIs(t, store.Delete(ctx, ""), ErrInvalidKey)
			_, err = SaveState(ctx, store, "", sampleState())
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestFileStore_SanitizesKey(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = SaveState(context.Background(), fs, "../company:1/draft", sampleState())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "__company_1_draft.json", entries[0].Name())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Config{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(ctx, Config{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrUnknownBackend)

	assert.Equal(t, DefaultKey, Config{}.StorageKey())
	assert.Equal(t, "custom", Config{Key: "custom"}.StorageKey())
}
