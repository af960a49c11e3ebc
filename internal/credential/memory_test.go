package credential_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/quill/internal/credential"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should return empty key when nothing is configured", func(t *testing.T) {
		store := credential.NewMemoryStore("")

		key, err := store.APIKey(ctx)
		require.NoError(t, err)
		require.Empty(t, key)
	})

	t.Run("should normalize seeded and stored keys", func(t *testing.T) {
		store := credential.NewMemoryStore("  seed-key\n")

		key, err := store.APIKey(ctx)
		require.NoError(t, err)
		require.Equal(t, "seed-key", key)

		require.NoError(t, store.SetAPIKey(ctx, "\tnew-key "))
		key, err = store.APIKey(ctx)
		require.NoError(t, err)
		require.Equal(t, "new-key", key)
	})

	t.Run("should clear the key", func(t *testing.T) {
		store := credential.NewMemoryStore("seed-key")

		require.NoError(t, store.ClearAPIKey(ctx))

		key, err := store.APIKey(ctx)
		require.NoError(t, err)
		require.Empty(t, key)
	})

	t.Run("should handle concurrent access safely", func(t *testing.T) {
		store := credential.NewMemoryStore("")

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = store.SetAPIKey(ctx, "key")
			}()
			go func() {
				defer wg.Done()
				_, _ = store.APIKey(ctx)
			}()
		}
		wg.Wait()

		key, err := store.APIKey(ctx)
		require.NoError(t, err)
		require.Equal(t, "key", key)
	})
}
