// SPDX-License-Identifier: MIT
package watch

import (
	"context"
	"time"

	"github.com/katalvlaran/lvslam/logging"
)

// Run calls fn once for every debounced change of path until ctx is done.
// Errors from fn are logged and do not stop the loop. Run returns nil when
// ctx is cancelled.
func Run(ctx context.Context, path string, quietPeriod time.Duration, fn func(context.Context) error) error {
	fw, err := NewFileWatcher(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fw.Start(ctx)
	deb := NewDebouncer(fw.Events(), quietPeriod, 10*quietPeriod)
	deb.Start(ctx)

	for ev := range deb.Output() {
		logging.Info("input changed", "path", ev.Path, "events", len(ev.Ops))
		if err := fn(ctx); err != nil {
			logging.Error("re-run failed", "error", err)
		}
	}

	return nil
}
