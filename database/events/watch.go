// File: database/events/watch.go
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// WatchOptions configures Watch.
type WatchOptions[T any] struct {
	Notifier Notifier
	Topic    string
	// Poll reloads on this interval as well as on signals, for stores that
	// other clients write to directly. Zero disables polling.
	Poll   time.Duration
	Load   func(ctx context.Context) (T, error)
	Equal  func(a, b T) bool
	Logger *zap.Logger
}

// Watch loads the current state, hands it to fn before returning, and then
// calls fn again every time a reload yields a different state. The returned
// function stops the watch; once it returns fn is not called again. The
// watch also stops when ctx is cancelled.
func Watch[T any](ctx context.Context, opts WatchOptions[T], fn func(T)) (func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Listen before the initial load so a change in between is not lost.
	signals, stopListening := opts.Notifier.Listen(opts.Topic)

	last, err := opts.Load(ctx)
	if err != nil {
		stopListening()
		return nil, err
	}
	fn(last)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	var tick <-chan time.Time
	var ticker *time.Ticker
	if opts.Poll > 0 {
		ticker = time.NewTicker(opts.Poll)
		tick = ticker.C
	}

	go func() {
		defer close(done)
		defer stopListening()
		if ticker != nil {
			defer ticker.Stop()
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
			case <-tick:
			}

			next, err := opts.Load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("watch reload failed", zap.String("topic", opts.Topic), zap.Error(err))
				continue
			}
			if opts.Equal(last, next) {
				continue
			}
			last = next
			fn(next)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}
