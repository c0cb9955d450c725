package fs

import (
	"context"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/phantomcms/phantom/pkg/core"
)

// Watch implements core.Watchable. It emits an event for every content
// change whose slug matches the doublestar pattern ("" or "*" matches
// everything). The stream closes when the context is cancelled.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 64)

	w := newWatchWorker(r, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	// Tie the worker and channel lifetime to the context. The debounced
	// send path recovers from writes to the closed channel, so closing
	// after Stop is safe.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.Stop(stopCtx)

		close(events)
		return nil
	})

	return events, nil
}
