package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Roller is the part of the board the rollover job drives.
type Roller interface {
	Rollover(ctx context.Context) (string, error)
}

// RolloverWorker runs Rollover on a cron schedule so the board and its live
// subscribers move to a new week without waiting for the next request.
type RolloverWorker struct {
	cron   *cron.Cron
	board  Roller
	logger *zap.Logger
}

// NewRolloverWorker parses schedule (standard five-field cron) in loc.
func NewRolloverWorker(board Roller, schedule string, loc *time.Location, logger *zap.Logger) (*RolloverWorker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	w := &RolloverWorker{
		cron:   cron.New(cron.WithLocation(loc)),
		board:  board,
		logger: logger,
	}
	if _, err := w.cron.AddFunc(schedule, w.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid rollover schedule %q: %w", schedule, err)
	}
	return w, nil
}

// RunOnce performs a single rollover.
func (w *RolloverWorker) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	week, err := w.board.Rollover(ctx)
	if err != nil {
		w.logger.Error("[RolloverWorker] rollover failed", zap.String("week", week), zap.Error(err))
		return
	}
	w.logger.Debug("[RolloverWorker] rollover done", zap.String("week", week))
}

func (w *RolloverWorker) Start() {
	w.logger.Info("[RolloverWorker] starting", zap.Int("jobs", len(w.cron.Entries())))
	w.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (w *RolloverWorker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("[RolloverWorker] stopped")
}

// Next reports the next scheduled run.
func (w *RolloverWorker) Next() time.Time {
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
