// Package director implements the top-level window-manager state
// machine: the set of monitors, the focused monitree, the rule list, a
// global lock, and every user-command entry point named in spec.md §4.4.
//
// Grounded on texel/desktop.go's Desktop (the teacher's own top-level
// "owns everything, serializes mutation, drives the rest of the
// system" type) and texel/dispatcher.go's event-broadcast idiom for the
// detached repaint job, generalized from one terminal screen to N
// OS-enumerated monitors.
package director

import (
	"context"
	"log"
	"sync"

	"github.com/Dimfred/b3/config"
	"github.com/Dimfred/b3/metrics"
	"github.com/Dimfred/b3/monitor"
	"github.com/Dimfred/b3/osadapter"
	"github.com/Dimfred/b3/rule"
	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/workspace"
)

// Director is the central state machine. Every exported method takes
// the lock once on entry and delegates to an unexported *Locked
// counterpart; *Locked methods call each other directly without
// relocking, which gives the spec's required re-entrant-call semantics
// (§4.4, §9) without a hand-rolled recursive mutex.
type Director struct {
	mu sync.Mutex

	adapter osadapter.Adapter
	factory workspace.Factory
	switcher monitor.SwitcherStrategy
	cfg     *config.Config
	metrics *metrics.Registry

	monitors        []*monitor.Monitor
	focusedMonitor  string
	rules           []rule.Rule
	pendingActivations int
}

// New constructs a Director. cfg and metricsReg may be nil, in which
// case config.Default() and metrics.Noop() are used.
func New(adapter osadapter.Adapter, factory workspace.Factory, switcher monitor.SwitcherStrategy, cfg *config.Config, metricsReg *metrics.Registry) *Director {
	if cfg == nil {
		cfg = config.Default()
	}
	if metricsReg == nil {
		metricsReg = metrics.Noop()
	}
	return &Director{
		adapter:  adapter,
		factory:  factory,
		switcher: switcher,
		cfg:      cfg,
		metrics:  metricsReg,
	}
}

func (d *Director) logInfo(format string, args ...interface{}) {
	if d.cfg.LogVerbose {
		log.Printf("INFO director: "+format, args...)
	}
}

func (d *Director) logSevere(format string, args ...interface{}) {
	log.Printf("SEVERE director: "+format, args...)
}

func (d *Director) observe(command string, code Code) Code {
	d.metrics.CommandsTotal.WithLabelValues(command, code.String()).Inc()
	return code
}

// Refresh tears down all monitors and re-enumerates from the OS
// adapter, picking the first enumerated monitor as focused.
func (d *Director) Refresh(ctx context.Context) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("refresh", d.refreshLocked(ctx))
}

func (d *Director) refreshLocked(ctx context.Context) Code {
	infos, err := d.adapter.EnumerateMonitors(ctx)
	if err != nil {
		d.logSevere("EnumerateMonitors failed: %v", err)
		return CodeSubsystemFailure
	}

	monitors := make([]*monitor.Monitor, 0, len(infos))
	for _, info := range infos {
		m := monitor.New(info.Name, info.Rect, info.Work, nil, d.factory, d.switcher)
		monitors = append(monitors, m)
	}
	d.monitors = monitors
	if len(monitors) > 0 {
		d.focusedMonitor = monitors[0].Name
	} else {
		d.focusedMonitor = ""
	}
	d.logInfo("refreshed %d monitor(s), focused=%q", len(monitors), d.focusedMonitor)
	return CodeOK
}

// AddRule appends r to the rule list.
func (d *Director) AddRule(r rule.Rule) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rules = append(d.rules, r)
}

// findMonitor returns the monitor named name, or nil if none matches.
// Per spec.md §9's resolved open question, this never falls back to
// the last-iterated monitor.
func (d *Director) findMonitor(name string) *monitor.Monitor {
	for _, m := range d.monitors {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (d *Director) focused() *monitor.Monitor {
	return d.findMonitor(d.focusedMonitor)
}

// ArrangeWins calls every monitor's arrange.
func (d *Director) ArrangeWins(ctx context.Context) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("arrange_wins", d.arrangeWinsLocked(ctx))
}

func (d *Director) arrangeWinsLocked(ctx context.Context) Code {
	timer := newArrangeTimer(d.metrics)
	defer timer.ObserveDuration()

	for _, m := range d.monitors {
		m.Arrange()
		ws := m.Wsman.Focused()
		if ws == nil {
			continue
		}
		d.reconcileWithAdapter(ctx, ws)
	}
	return CodeOK
}

// reconcileWithAdapter pushes the rectangle of every non-MINIMIZED
// window on ws, tiled or floating, out to the OS adapter. A failed adapter call is logged at SEVERE and does not abort
// the rest of the pass (§7: "a subsequent arrange will attempt to
// reconcile").
func (d *Director) reconcileWithAdapter(ctx context.Context, ws *workspace.Workspace) {
	wintreeWalk(ws, func(w *win.Win) {
		if w.State == win.Minimized {
			return
		}
		if err := d.adapter.SetRect(ctx, w.H, w.Rect); err != nil {
			d.logSevere("SetRect(%v) failed: %v", w.H, err)
		}
	})
}
