package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gkmslots/utils"
)

func newRedisStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))
	v, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	require.NoError(t, s.Remove(ctx, "a", "missing"))
	_, ok, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	v, _, err = s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	require.NoError(t, s.Remove(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	s, mr := newRedisStore(t)
	exerciseStore(t, s)
	assert.True(t, mr.Exists("b"))
}

func TestPartition_ResetsOnNewWeek(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
	p := NewPartition(store, utils.ClockFunc(func() time.Time { return now }), nil)

	require.NoError(t, store.Set(ctx, utils.LocalWeekKey, "2026-W41"))
	require.NoError(t, store.Set(ctx, utils.LocalSlotsKey, `{"d0-9":"Alice"}`))
	require.NoError(t, store.Set(ctx, utils.LocalNotesKey, `[]`))

	week, reset, err := p.Ensure(ctx)
	require.NoError(t, err)
	assert.True(t, reset)
	assert.Equal(t, "2026-W42", week)

	marker, _, _ := store.Get(ctx, utils.LocalWeekKey)
	assert.Equal(t, "2026-W42", marker)
	_, ok, _ := store.Get(ctx, utils.LocalSlotsKey)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, utils.LocalNotesKey)
	assert.False(t, ok)

	_, reset, err = p.Ensure(ctx)
	require.NoError(t, err)
	assert.False(t, reset)
}

func TestPartition_Save(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
	p := NewPartition(store, utils.ClockFunc(func() time.Time { return now }), nil)

	require.NoError(t, p.Save(ctx, utils.LocalSlotsKey, `{}`))
	marker, _, _ := store.Get(ctx, utils.LocalWeekKey)
	assert.Equal(t, "2026-W42", marker)
	blob, _, _ := store.Get(ctx, utils.LocalSlotsKey)
	assert.Equal(t, `{}`, blob)
}

// flakyStore fails the first Remove.
type flakyStore struct {
	*MemoryStore
	failed bool
}

func (s *flakyStore) Remove(ctx context.Context, keys ...string) error {
	if !s.failed {
		s.failed = true
		return errors.New("redis down")
	}
	return s.MemoryStore.Remove(ctx, keys...)
}

func TestPartition_FailedResetIsRetried(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{MemoryStore: NewMemoryStore()}
	now := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
	p := NewPartition(store, utils.ClockFunc(func() time.Time { return now }), nil)

	require.NoError(t, store.Set(ctx, utils.LocalWeekKey, "2026-W41"))
	require.NoError(t, store.Set(ctx, utils.LocalSlotsKey, `{"d0-9":"LastWeek"}`))

	_, _, err := p.Ensure(ctx)
	require.Error(t, err)
	marker, _, _ := store.Get(ctx, utils.LocalWeekKey)
	assert.Equal(t, "2026-W41", marker)

	week, reset, err := p.Ensure(ctx)
	require.NoError(t, err)
	assert.True(t, reset)
	assert.Equal(t, "2026-W42", week)
	_, ok, _ := store.Get(ctx, utils.LocalSlotsKey)
	assert.False(t, ok)
}
