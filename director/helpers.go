package director

import (
	"time"

	"github.com/Dimfred/b3/metrics"
	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/wintree"
	"github.com/Dimfred/b3/workspace"
)

// wintreeWalk calls visit for every tiled window in ws's tree,
// pre-order, followed by every floating window.
func wintreeWalk(ws *workspace.Workspace, visit func(*win.Win)) {
	wintree.Traverse(ws.Tree().Root, func(n *wintree.Node) {
		if n.Win != nil {
			visit(n.Win)
		}
	})
	for _, f := range ws.FloatingWins() {
		visit(f)
	}
}

// arrangeTimer wraps a prometheus histogram observation so
// arrangeWinsLocked can `defer timer.ObserveDuration()` the way
// prometheus's own promhttp helpers do.
type arrangeTimer struct {
	start time.Time
	reg   *metrics.Registry
}

func newArrangeTimer(reg *metrics.Registry) *arrangeTimer {
	return &arrangeTimer{start: time.Now(), reg: reg}
}

func (t *arrangeTimer) ObserveDuration() {
	t.reg.ArrangeSeconds.Observe(time.Since(t.start).Seconds())
}
