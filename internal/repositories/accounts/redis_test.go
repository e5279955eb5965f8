package accounts

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := NewRedisRepository(context.Background(), "redis://"+mr.Addr(), "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t)

	require.NoError(t, r.Ping(ctx))
	require.NoError(t, r.Create(ctx, account("b@x.com")))
	require.NoError(t, r.Create(ctx, account("a@x.com")))
	require.ErrorIs(t, r.Create(ctx, account("a@x.com")), common.ErrorAlreadyExists)

	got, err := r.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, account("a@x.com"), got)

	_, err = r.Get(ctx, "c@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)

	ok, err := r.Exists(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a@x.com", list[0].Email)

	keys, err := mr.HKeys("test:accounts")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, keys)
}

func TestRedisRepository_CorruptValue(t *testing.T) {
	r, mr := newRedisRepo(t)
	mr.HSet("test:accounts", "a@x.com", "{broken")

	_, err := r.Get(context.Background(), "a@x.com")
	require.ErrorContains(t, err, `decode account "a@x.com"`)
}

func TestNewRedisRepository_Errors(t *testing.T) {
	_, err := NewRedisRepository(context.Background(), "not-a-url", "")
	require.ErrorContains(t, err, "failed to parse Redis URL")

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisRepository(context.Background(), "redis://"+addr, "")
	require.ErrorContains(t, err, "failed to ping Redis")
}
