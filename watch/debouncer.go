// SPDX-License-Identifier: MIT
package watch

import (
	"context"
	"time"

	"github.com/katalvlaran/lvslam/logging"
)

// Debouncer batches rapid change events: one merged event is emitted once
// the input has been quiet for quietPeriod, or at the latest maxWait after
// the first event of a batch.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer. A maxWait below quietPeriod is
// raised to quietPeriod.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     max(maxWait, quietPeriod),
	}
}

// Start begins processing events. Output is closed when ctx is done or the
// input channel closes; closing the input flushes a pending batch first.
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		pending  *ChangeEvent
		quiet    <-chan time.Time
		deadline <-chan time.Time
	)
	flush := func() {
		if pending == nil {
			return
		}
		logging.Debug("flushing file changes", "path", pending.Path, "count", len(pending.Ops))
		select {
		case d.output <- *pending:
		case <-ctx.Done():
		}
		pending, quiet, deadline = nil, nil, nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-d.input:
			if !ok {
				flush()
				return
			}
			if pending == nil {
				pending = &ChangeEvent{Path: ev.Path}
				deadline = time.After(d.maxWait)
			}
			pending.Ops = append(pending.Ops, ev.Ops...)
			pending.Timestamp = ev.Timestamp
			quiet = time.After(d.quietPeriod)

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}

// Output returns the channel of debounced events.
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
