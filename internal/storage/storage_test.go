package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewRedis(client, "shop:")
}

func drivers(t *testing.T) map[string]Storage {
	t.Helper()

	file, err := NewFile(t.TempDir())
	require.NoError(t, err)
	_, rds := setupTestRedis(t)

	return map[string]Storage{
		"memory": NewMemory(),
		"file":   file,
		"redis":  rds,
	}
}

func TestStorageContract(t *testing.T) {
	ctx := context.Background()

	for name, st := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := st.Get(ctx, "cart")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, st.Set(ctx, "cart", `[{"id":1}]`))
			v, found, err := st.Get(ctx, "cart")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[{"id":1}]`, v)

			require.NoError(t, st.Set(ctx, "cart", `[]`))
			v, _, err = st.Get(ctx, "cart")
			require.NoError(t, err)
			assert.Equal(t, `[]`, v)

			require.NoError(t, st.Delete(ctx, "cart"))
			_, found, err = st.Get(ctx, "cart")
			require.NoError(t, err)
			assert.False(t, found)

			// deleting a missing key is not an error
			assert.NoError(t, st.Delete(ctx, "cart"))
		})
	}
}

func TestFileKeysAreEscaped(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, st.Set(ctx, "address-user/1", `{}`))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "address-user%2F1.json", entries[0].Name())

	v, found, err := st.Get(ctx, "address-user/1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{}`, v)
	assert.FileExists(t, filepath.Join(dir, "address-user%2F1.json"))
}

func TestRedisPrefix(t *testing.T) {
	mr, st := setupTestRedis(t)

	require.NoError(t, st.Set(context.Background(), "orders", `[]`))

	v, err := mr.Get("shop:orders")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st)

	st, err = Open(ctx, Options{Driver: DriverFile, DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, st)

	mr := miniredis.RunT(t)
	st, err = Open(ctx, Options{Driver: DriverRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, st)

	_, err = Open(ctx, Options{Driver: "sqlite"})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Driver: DriverRedis})
	assert.Error(t, err)
}
