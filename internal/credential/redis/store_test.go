package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/quill/internal/credential/redis"
)

// fakeCommands keeps values in a map and can be told to fail.
type fakeCommands struct {
	values map[string]string
	err    error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{values: map[string]string{}}
}

func (f *fakeCommands) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	value, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (f *fakeCommands) Set(_ context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.values[key] = value.(string)
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeCommands) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	if f.err != nil {
		return goredis.NewIntResult(0, f.err)
	}
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return goredis.NewIntResult(removed, nil)
}

func TestNewStore(t *testing.T) {
	t.Run("should require client", func(t *testing.T) {
		_, err := redis.NewStore(nil, "quill:gemini_api_key")
		require.Error(t, err)
	})

	t.Run("should require key", func(t *testing.T) {
		_, err := redis.NewStore(newFakeCommands(), "")
		require.Error(t, err)
	})
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	const key = "quill:gemini_api_key"

	t.Run("should report missing key as empty", func(t *testing.T) {
		store, err := redis.NewStore(newFakeCommands(), key)
		require.NoError(t, err)

		value, err := store.APIKey(ctx)
		require.NoError(t, err)
		require.Empty(t, value)
	})

	t.Run("should store normalized key and clear it", func(t *testing.T) {
		commands := newFakeCommands()
		store, err := redis.NewStore(commands, key)
		require.NoError(t, err)

		require.NoError(t, store.SetAPIKey(ctx, " abc123\n"))
		require.Equal(t, "abc123", commands.values[key])

		value, err := store.APIKey(ctx)
		require.NoError(t, err)
		require.Equal(t, "abc123", value)

		require.NoError(t, store.ClearAPIKey(ctx))
		require.NotContains(t, commands.values, key)
	})

	t.Run("should wrap connection errors", func(t *testing.T) {
		commands := newFakeCommands()
		commands.err = errors.New("connection refused")
		store, err := redis.NewStore(commands, key)
		require.NoError(t, err)

		_, err = store.APIKey(ctx)
		require.ErrorContains(t, err, "failed to read credential")

		err = store.SetAPIKey(ctx, "abc")
		require.ErrorContains(t, err, "failed to store credential")

		err = store.ClearAPIKey(ctx)
		require.ErrorContains(t, err, "failed to clear credential")
	})
}
