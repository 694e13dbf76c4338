package director

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// scheduleRepaint fires a detached, fire-and-forget repaint broadcast
// to every monitor after a command that may have changed visible
// geometry (§4.4, §5). It must be called while d.mu is held (it only
// reads d.monitors to build the job), but the broadcast itself runs on
// a background goroutine that never touches d.mu and whose result is
// discarded — no command waits on it.
//
// Grounded on texel/dispatcher.go's EventDispatcher.Broadcast (fan out
// to every subscriber) combined with golang.org/x/sync/errgroup (used
// by bnema-dumber for joined background fan-out) so the detached job is
// still cancellation-safe and panic-contained, even though nothing
// joins it synchronously.
func (d *Director) scheduleRepaint(ctx context.Context) {
	jobID := uuid.New()
	names := make([]string, len(d.monitors))
	for i, m := range d.monitors {
		names[i] = m.Name
	}
	adapter := d.adapter
	reg := d.metrics
	verbose := d.cfg.LogVerbose

	go func() {
		g, gctx := errgroup.WithContext(context.Background())
		_ = ctx // the caller's context does not gate a detached job
		for _, name := range names {
			name := name
			g.Go(func() error {
				return adapter.BroadcastRepaint(gctx, name)
			})
		}
		if err := g.Wait(); err != nil {
			log.Printf("SEVERE director: repaint broadcast %s failed: %v", jobID, err)
			return
		}
		reg.RepaintsTotal.Inc()
		if !verbose {
			return
		}
		log.Printf("INFO director: repaint broadcast %s completed for %d monitor(s)", jobID, len(names))
	}()
}
