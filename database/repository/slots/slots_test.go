package slotsRepo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gkmslots/database/events"
	"gkmslots/database/kv"
	"gkmslots/database/tree"
	"gkmslots/utils"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)}
}

type backend struct {
	name  string
	build func(t *testing.T, clock utils.Clock, hub *events.Hub) SlotRepository
}

var backends = []backend{
	{"local", func(t *testing.T, clock utils.Clock, hub *events.Hub) SlotRepository {
		return NewLocalSlotRepo(kv.NewPartition(kv.NewMemoryStore(), clock, nil), hub, nil)
	}},
	{"remote", func(t *testing.T, clock utils.Clock, hub *events.Hub) SlotRepository {
		return NewRemoteSlotRepo(tree.NewMemoryTree(), clock, hub, 0, nil)
	}},
}

func strPtr(s string) *string { return &s }

func TestSlotRepository_WriteReadRemove(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.build(t, newClock(), events.NewHub())

			slots, err := repo.ReadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, slots)

			require.NoError(t, repo.Write(ctx, "d0-9", "Alice"))
			require.NoError(t, repo.Write(ctx, "d0-9-h2", "Bob"))
			require.NoError(t, repo.Write(ctx, "d0-9", "Carol"))

			slots, err = repo.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"d0-9": "Carol", "d0-9-h2": "Bob"}, slots)

			require.NoError(t, repo.Remove(ctx, "d0-9"))
			slots, err = repo.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"d0-9-h2": "Bob"}, slots)
		})
	}
}

func TestSlotRepository_RemoveAbsentKey(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.build(t, newClock(), events.NewHub())
			require.NoError(t, repo.Write(ctx, "d1-10", "Alice"))

			require.NoError(t, repo.Remove(ctx, "d4-16"))

			slots, err := repo.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"d1-10": "Alice"}, slots)
		})
	}
}

func TestSlotRepository_BatchUpdate(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.build(t, newClock(), events.NewHub())
			require.NoError(t, repo.Write(ctx, "Monday-9", "Alice"))

			require.NoError(t, repo.BatchUpdate(ctx, map[string]*string{
				"d0-9":     strPtr("Alice"),
				"Monday-9": nil,
			}))
			require.NoError(t, repo.BatchUpdate(ctx, nil))

			slots, err := repo.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"d0-9": "Alice"}, slots)
		})
	}
}

func TestSlotRepository_NewWeekStartsEmpty(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			clock := newClock()
			repo := b.build(t, clock, events.NewHub())
			require.NoError(t, repo.Write(ctx, "d0-9", "Alice"))

			clock.Set(clock.Now().Add(7 * 24 * time.Hour))

			slots, err := repo.ReadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}
}

func TestSlotRepository_Subscribe(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			hub := events.NewHub()
			repo := b.build(t, newClock(), hub)
			require.NoError(t, repo.Write(ctx, "d0-9", "Alice"))

			updates := make(chan map[string]string, 8)
			stop, err := repo.Subscribe(ctx, func(m map[string]string) { updates <- m })
			require.NoError(t, err)

			// Initial state is delivered before Subscribe returns.
			require.Len(t, updates, 1)
			assert.Equal(t, map[string]string{"d0-9": "Alice"}, <-updates)

			require.NoError(t, repo.Write(ctx, "d2-11", "Bob"))
			select {
			case m := <-updates:
				assert.Equal(t, map[string]string{"d0-9": "Alice", "d2-11": "Bob"}, m)
			case <-time.After(time.Second):
				t.Fatal("no update after write")
			}

			require.NoError(t, repo.Remove(ctx, "d0-9"))
			select {
			case m := <-updates:
				assert.Equal(t, map[string]string{"d2-11": "Bob"}, m)
			case <-time.After(time.Second):
				t.Fatal("no update after remove")
			}

			stop()
			assert.Equal(t, 0, hub.Listeners(utils.SlotsTopic))
		})
	}
}

func TestLocalSlotRepo_WeekReset(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	clock := newClock()
	repo := NewLocalSlotRepo(kv.NewPartition(store, clock, nil), events.NewHub(), nil)

	require.NoError(t, store.Set(ctx, utils.LocalWeekKey, "2026-W41"))
	require.NoError(t, store.Set(ctx, utils.LocalSlotsKey, `{"d0-9":"Alice"}`))

	slots, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)

	marker, _, _ := store.Get(ctx, utils.LocalWeekKey)
	assert.Equal(t, "2026-W42", marker)
}

func TestLocalSlotRepo_MalformedBlobReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	clock := newClock()
	repo := NewLocalSlotRepo(kv.NewPartition(store, clock, nil), events.NewHub(), nil)

	require.NoError(t, store.Set(ctx, utils.LocalWeekKey, "2026-W42"))
	require.NoError(t, store.Set(ctx, utils.LocalSlotsKey, `{not json`))

	slots, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)

	require.NoError(t, repo.Write(ctx, "d0-9", "Alice"))
	blob, _, _ := store.Get(ctx, utils.LocalSlotsKey)
	assert.JSONEq(t, `{"d0-9":"Alice"}`, blob)
}

func TestRemoteSlotRepo_UsesWeekPath(t *testing.T) {
	ctx := context.Background()
	mem := tree.NewMemoryTree()
	repo := NewRemoteSlotRepo(mem, newClock(), events.NewHub(), 0, nil)

	require.NoError(t, repo.Write(ctx, "d0-9", "Alice"))

	children, err := mem.Children(ctx, "weeks/2026-W42/slots")
	require.NoError(t, err)
	assert.JSONEq(t, `"Alice"`, string(children["d0-9"]))
}

func TestRemoteSlotRepo_SkipsForeignValues(t *testing.T) {
	ctx := context.Background()
	mem := tree.NewMemoryTree()
	repo := NewRemoteSlotRepo(mem, newClock(), events.NewHub(), 0, nil)

	require.NoError(t, mem.SetChild(ctx, "weeks/2026-W42/slots", "d0-9", map[string]int{"x": 1}))
	require.NoError(t, repo.Write(ctx, "d0-10", "Bob"))

	slots, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"d0-10": "Bob"}, slots)
}
