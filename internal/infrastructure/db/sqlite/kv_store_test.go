package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/dashboard/internal/core/domain"
)

func TestKVStore_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	db, err := Open(path)
	require.NoError(t, err)

	ctx := context.Background()
	kv := NewKVStore(db)

	_, err = kv.Get(ctx, "stockflow.user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "stockflow.user", []byte(`{"id":"1"}`)))
	require.NoError(t, kv.Set(ctx, "stockflow.user", []byte(`{"id":"2"}`)))
	require.NoError(t, kv.Close())

	// reopen to prove durability
	db, err = Open(path)
	require.NoError(t, err)
	kv = NewKVStore(db)
	defer kv.Close()

	v, err := kv.Get(ctx, "stockflow.user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"2"}`, string(v))

	require.NoError(t, kv.Remove(ctx, "stockflow.user"))
	require.NoError(t, kv.Remove(ctx, "stockflow.user"))
	_, err = kv.Get(ctx, "stockflow.user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	assert.NoError(t, kv.Ping(ctx))
}
