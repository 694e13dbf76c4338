// Package monitor models one physical output: its geometry, owned
// WsManager, a bar reference, and a workspace-switcher strategy.
//
// Grounded on texel/desktop.go's Desktop (which in the teacher owns all
// workspaces for the whole terminal) split apart per spec.md: the spec
// makes a Monitor own one WsManager, so the per-output bar/statuspane
// bookkeeping texel/desktop.go does globally (StatusPane, Side) is
// reshaped here into one Bar per Monitor.
package monitor

import (
	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/workspace"
)

// Side mirrors texel/desktop.go's StatusPane placement, generalized
// from "one desktop" to "one monitor's bar".
type Side int

const (
	SideTop Side = iota
	SideBottom
)

// Bar is the status-bar strip a Monitor reserves out of its rectangle.
// Rendering itself is out of scope (spec.md §1); only the geometry it
// consumes matters to arrange.
type Bar struct {
	Side Side
	Size int // thickness in pixels
}

// SwitcherStrategy chooses which workspace becomes focused when a
// monitor gains focus with no explicit choice made.
type SwitcherStrategy interface {
	Choose(ids []string, current string) string
}

// FirstOrCurrentSwitcher keeps the current focus if there is one, else
// picks the first workspace in display order. Grounded on
// texel/desktop.go's NewDesktop bootstrap, which always
// SwitchToWorkspace(1) on startup — i.e. "pick a sane first default".
type FirstOrCurrentSwitcher struct{}

func (FirstOrCurrentSwitcher) Choose(ids []string, current string) string {
	if current != "" {
		return current
	}
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// Monitor is one physical output.
type Monitor struct {
	Name     string // device name, key
	Rect     win.Rect
	WorkRect win.Rect // monitor minus bar, as reported by the OS adapter
	Bar      *Bar
	Wsman    *workspace.WsManager
	switcher SwitcherStrategy
}

// New creates a monitor with the given device name, geometry (as
// enumerated by the OS adapter, which already excludes bar/dock strips
// from workRect), and workspace factory/switcher.
func New(name string, rect, workRect win.Rect, bar *Bar, factory workspace.Factory, switcher SwitcherStrategy) *Monitor {
	if switcher == nil {
		switcher = FirstOrCurrentSwitcher{}
	}
	return &Monitor{
		Name:     name,
		Rect:     rect,
		WorkRect: workRect,
		Bar:      bar,
		Wsman:    workspace.New(factory),
		switcher: switcher,
	}
}

// EnsureWorkspace guarantees the monitor has at least one workspace,
// per spec.md §3's Monitor invariant ("every monitor has at least one
// workspace after the first window is added"). id is used only if the
// monitor currently has none.
func (m *Monitor) EnsureWorkspace(id string) (*workspace.Workspace, error) {
	if len(m.Wsman.Order()) > 0 {
		if focused := m.Wsman.Focused(); focused != nil {
			return focused, nil
		}
	}
	return m.Wsman.Add(id)
}

// ChooseFocusWorkspace asks the switcher strategy which workspace
// should become focused, then applies it.
func (m *Monitor) ChooseFocusWorkspace() string {
	id := m.switcher.Choose(m.Wsman.Order(), m.Wsman.FocusedID())
	if id != "" {
		m.Wsman.SetFocusedWs(id)
	}
	return id
}

// Arrange recomputes geometries for every window on the monitor's
// focused workspace.
func (m *Monitor) Arrange() {
	ws := m.Wsman.Focused()
	if ws == nil {
		return
	}
	ws.SetArea(m.WorkRect)
}
