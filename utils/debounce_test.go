package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_FiresOnceWithLatestValue(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var got []string
	for _, v := range []string{"A", "Al", "Ali"} {
		v := v
		d.Trigger("d0-9", func() {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Ali"}, got)
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger("d0-9", func() { calls.Add(1) })
	d.Trigger("d1-9", func() { calls.Add(1) })

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger("d0-9", func() { calls.Add(1) })
	assert.True(t, d.Cancel("d0-9"))
	assert.False(t, d.Cancel("d0-9"))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger("a", func() { calls.Add(1) })
	d.Trigger("b", func() { calls.Add(1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_ExclusiveWaitsForRunningCall(t *testing.T) {
	d := NewDebouncer(time.Millisecond)

	var mu sync.Mutex
	var order []string
	record := func(v string) {
		mu.Lock()
		order = append(order, v)
		mu.Unlock()
	}

	started := make(chan struct{})
	d.Trigger("d0-9", func() {
		close(started)
		time.Sleep(30 * time.Millisecond)
		record("draft")
	})
	<-started

	err := d.Exclusive("d0-9", func() error {
		record("final")
		return nil
	})
	assert.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"draft", "final"}, order)
}

func TestDebouncer_FiredCallSkippedAfterCancel(t *testing.T) {
	d := NewDebouncer(time.Millisecond)

	var calls atomic.Int32
	err := d.Exclusive("d0-9", func() error {
		d.Trigger("d0-9", func() { calls.Add(1) })
		// The timer fires and waits for the key lock held here.
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, 0, d.Pending())
		assert.False(t, d.Cancel("d0-9"))
		return nil
	})
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
