package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoller struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeRoller) Rollover(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return "2026-W42", f.err
}

func (f *fakeRoller) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNewRolloverWorker_InvalidSchedule(t *testing.T) {
	_, err := NewRolloverWorker(&fakeRoller{}, "every tuesday", time.UTC, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rollover schedule")
}

func TestRolloverWorker_RunOnce(t *testing.T) {
	roller := &fakeRoller{}
	w, err := NewRolloverWorker(roller, "0 0 * * *", time.UTC, nil)
	require.NoError(t, err)

	w.RunOnce()
	roller.err = errors.New("store down")
	w.RunOnce()

	assert.Equal(t, 2, roller.Calls())
}

func TestRolloverWorker_Schedule(t *testing.T) {
	w, err := NewRolloverWorker(&fakeRoller{}, "0 0 * * 0", time.UTC, nil)
	require.NoError(t, err)

	w.Start()
	defer w.Stop()

	next := w.Next()
	assert.Equal(t, time.Sunday, next.Weekday())
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, time.UTC, next.Location())
}
