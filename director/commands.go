package director

import (
	"context"

	"github.com/Dimfred/b3/monitor"
	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/wintree"
	"github.com/Dimfred/b3/workspace"
)

// ruleDirector implements rule.Director by calling only the unexported
// *Locked methods directly. A Rule's Exec runs synchronously under d.mu
// (spec.md §4.4, §9's re-entrant-lock requirement) so it must never
// pass through the exported, locking entry points below — doing so
// with Go's non-reentrant sync.Mutex would deadlock the very add_win
// call that fired the rule.
type ruleDirector struct {
	d   *Director
	ctx context.Context
}

func (r ruleDirector) ActiveWinToggleFloating() int {
	return int(r.d.activeWinToggleFloatingLocked(r.ctx))
}

func (r ruleDirector) ToggleActiveWinFullscreen() int {
	return int(r.d.toggleActiveWinFullscreenLocked(r.ctx))
}

func (r ruleDirector) MoveActiveWinToWs(id string) int {
	return int(r.d.moveActiveWinToWsLocked(r.ctx, id))
}

// beginIgnoredActivation arms the director to swallow the next
// set_active_win call, per spec.md §4.4's "re-activate ... with
// ignore_next_activation set". Modelled as a counter, not a bool,
// per §9's resolved open question, so back-to-back synthetic
// activations (e.g. switch_to_ws immediately followed by another
// command that reactivates) don't clobber each other.
func (d *Director) beginIgnoredActivation() {
	d.pendingActivations++
}

// findMonitorAndWsByWin linear-scans every monitor's WsManager for the
// workspace currently holding w. Returns (nil, nil) if none does.
func (d *Director) findMonitorAndWsByWin(w *win.Win) (*monitor.Monitor, *workspace.Workspace) {
	for _, m := range d.monitors {
		if ws := m.Wsman.FindWin(w); ws != nil {
			return m, ws
		}
	}
	return nil, nil
}

// SwitchToWs finds the monitor owning workspace id (creating it on the
// focused monitor if none owns it), focuses that monitor and
// workspace, arranges, and re-activates the workspace's previously
// focused window with activation suppressed.
func (d *Director) SwitchToWs(ctx context.Context, id string) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("switch_to_ws", d.switchToWsLocked(ctx, id))
}

func (d *Director) switchToWsLocked(ctx context.Context, id string) Code {
	owner := d.focused()
	for _, m := range d.monitors {
		if m.Wsman.ContainsWs(id) {
			owner = m
			break
		}
	}
	if owner == nil {
		return CodeInvalidState
	}
	if !owner.Wsman.ContainsWs(id) {
		if _, err := owner.Wsman.Add(id); err != nil {
			d.logSevere("switch_to_ws: add(%q) failed: %v", id, err)
			return CodeSubsystemFailure
		}
	}

	d.focusedMonitor = owner.Name
	owner.Wsman.SetFocusedWs(id)
	owner.Arrange()

	if ws := owner.Wsman.Focused(); ws != nil {
		if target := ws.GetFocusedWin(); target != nil {
			d.beginIgnoredActivation()
			if err := d.adapter.Activate(ctx, target.H); err != nil {
				d.logSevere("switch_to_ws: Activate(%v) failed: %v", target.H, err)
				return CodeSubsystemFailure
			}
		}
	}
	d.logInfo("switch_to_ws(%q) on monitor %q", id, owner.Name)
	d.scheduleRepaint(ctx)
	return CodeOK
}

// AddWin finds monitorName, inserts w into its focused workspace, fires
// every matching rule in insertion order, then arranges.
func (d *Director) AddWin(ctx context.Context, monitorName string, w *win.Win) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("add_win", d.addWinLocked(ctx, monitorName, w))
}

func (d *Director) addWinLocked(ctx context.Context, monitorName string, w *win.Win) Code {
	m := d.findMonitor(monitorName)
	if m == nil {
		return CodeNotFound
	}
	ws, err := m.EnsureWorkspace(d.cfg.DefaultWorkspace)
	if err != nil {
		d.logSevere("add_win: EnsureWorkspace failed: %v", err)
		return CodeSubsystemFailure
	}
	ws.AddWin(w)

	rd := ruleDirector{d: d, ctx: ctx}
	for _, rl := range d.rules {
		if rl.Applies(rd, w) {
			rl.Exec(rd, w)
			d.metrics.RuleFiresTotal.Inc()
		}
	}

	d.logInfo("add_win: %v on monitor %q workspace %q", w.H, m.Name, ws.Name)
	return d.arrangeWinsLocked(ctx)
}

// RemoveWin detaches w from whichever workspace currently holds it.
func (d *Director) RemoveWin(ctx context.Context, w *win.Win) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("remove_win", d.removeWinLocked(ctx, w))
}

func (d *Director) removeWinLocked(ctx context.Context, w *win.Win) Code {
	_, ws := d.findMonitorAndWsByWin(w)
	if ws == nil {
		return CodeNotFound
	}
	if err := ws.RemoveWin(w); err != nil {
		return CodeNotFound
	}
	d.logInfo("remove_win: %v", w.H)
	return d.arrangeWinsLocked(ctx)
}

// SetActiveWin is the OS-driven activation notification. If a
// synthetic activation is pending it is consumed and nothing else
// happens; otherwise w's owning workspace gains focus, switching
// monitor/workspace focus if it differs from the currently focused
// pair.
func (d *Director) SetActiveWin(ctx context.Context, w *win.Win) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("set_active_win", d.setActiveWinLocked(ctx, w))
}

func (d *Director) setActiveWinLocked(ctx context.Context, w *win.Win) Code {
	if d.pendingActivations > 0 {
		d.pendingActivations--
		return CodeOK
	}

	m, ws := d.findMonitorAndWsByWin(w)
	if ws == nil {
		return CodeNotFound
	}
	ws.SetFocusedWin(w)

	if m.Name != d.focusedMonitor || ws.Name != m.Wsman.FocusedID() {
		return d.switchToWsLocked(ctx, ws.Name)
	}
	d.logInfo("set_active_win: %v", w.H)
	return CodeOK
}

// ActiveWinToggleFloating flips floating on the focused monitor's
// focused window, re-arranges, and repaints.
func (d *Director) ActiveWinToggleFloating(ctx context.Context) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("active_win_toggle_floating", d.activeWinToggleFloatingLocked(ctx))
}

func (d *Director) activeWinToggleFloatingLocked(ctx context.Context) Code {
	m := d.focused()
	if m == nil {
		return CodeInvalidState
	}
	ws := m.Wsman.Focused()
	if ws == nil {
		return CodeInvalidState
	}
	target := ws.GetFocusedWin()
	if target == nil {
		return CodeNotFound
	}
	if _, ok := ws.ToggleFloating(target); !ok {
		return CodeInvalidState
	}
	code := d.arrangeWinsLocked(ctx)
	d.scheduleRepaint(ctx)
	return code
}

// ToggleActiveWinFullscreen flips MAXIMIZED/NORMAL on the focused
// window, re-arranges (the new MAXIMIZED leaf, if any, now covers the
// workspace area and suppresses its NORMAL siblings per wintree.Maximized),
// and repaints.
func (d *Director) ToggleActiveWinFullscreen(ctx context.Context) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("toggle_active_win_fullscreen", d.toggleActiveWinFullscreenLocked(ctx))
}

func (d *Director) toggleActiveWinFullscreenLocked(ctx context.Context) Code {
	m := d.focused()
	if m == nil {
		return CodeInvalidState
	}
	ws := m.Wsman.Focused()
	if ws == nil {
		return CodeInvalidState
	}
	target := ws.GetFocusedWin()
	if target == nil {
		return CodeNotFound
	}
	if target.State == win.Maximized {
		target.State = win.Normal
	} else {
		target.State = win.Maximized
	}
	code := d.arrangeWinsLocked(ctx)
	d.scheduleRepaint(ctx)
	return code
}

// MoveActiveWinToWs removes the focused window from its current
// workspace, ensures the destination workspace exists on the focused
// monitor, inserts it there, then re-activates the new focus on the
// source monitor.
func (d *Director) MoveActiveWinToWs(ctx context.Context, id string) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("move_active_win_to_ws", d.moveActiveWinToWsLocked(ctx, id))
}

func (d *Director) moveActiveWinToWsLocked(ctx context.Context, id string) Code {
	srcM := d.focused()
	if srcM == nil {
		return CodeInvalidState
	}
	srcWs := srcM.Wsman.Focused()
	if srcWs == nil {
		return CodeInvalidState
	}
	target := srcWs.GetFocusedWin()
	if target == nil {
		return CodeNotFound
	}

	if err := srcWs.RemoveWin(target); err != nil {
		return CodeSubsystemFailure
	}

	dstWs := srcM.Wsman.Get(id)
	if dstWs == nil {
		var err error
		dstWs, err = srcM.Wsman.Add(id)
		if err != nil {
			d.logSevere("move_active_win_to_ws: Add(%q) failed: %v", id, err)
			return CodeSubsystemFailure
		}
	}
	dstWs.AddWin(target)

	if newFocus := srcWs.GetFocusedWin(); newFocus != nil {
		d.beginIgnoredActivation()
		if err := d.adapter.Activate(ctx, newFocus.H); err != nil {
			d.logSevere("move_active_win_to_ws: Activate failed: %v", err)
		}
	}
	d.logInfo("move_active_win_to_ws: %v -> %q", target.H, id)
	return d.arrangeWinsLocked(ctx)
}

// MoveActiveWin tries to swap the focused window with its tree
// neighbour in dir; failing that, it crosses to the adjacent monitor
// in dir, also shifting focused-monitor on success.
func (d *Director) MoveActiveWin(ctx context.Context, dir workspace.Direction) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("move_active_win", d.moveActiveWinLocked(ctx, dir))
}

func (d *Director) moveActiveWinLocked(ctx context.Context, dir workspace.Direction) Code {
	m := d.focused()
	if m == nil {
		return CodeInvalidState
	}
	ws := m.Wsman.Focused()
	if ws == nil {
		return CodeInvalidState
	}
	if ws.MoveFocusedWin(dir, d.cfg.RollingNeighbourDefault) {
		code := d.arrangeWinsLocked(ctx)
		d.scheduleRepaint(ctx)
		return code
	}

	other := d.getMonitorByDirectionLocked(dir)
	if other == nil {
		return CodeNotFound
	}
	target := ws.GetFocusedWin()
	if target == nil {
		return CodeNotFound
	}
	if err := ws.RemoveWin(target); err != nil {
		return CodeSubsystemFailure
	}
	destWs, err := other.EnsureWorkspace(d.cfg.DefaultWorkspace)
	if err != nil {
		d.logSevere("move_active_win: EnsureWorkspace on %q failed: %v", other.Name, err)
		return CodeSubsystemFailure
	}
	destWs.AddWin(target)
	d.focusedMonitor = other.Name
	other.Wsman.SetFocusedWs(destWs.Name)

	code := d.arrangeWinsLocked(ctx)
	d.scheduleRepaint(ctx)
	return code
}

// SetActiveWinByDirection asks the focused workspace's tree for a
// non-rolling neighbour in dir; failing that, tries crossing to the
// monitor in dir; failing that, retries the tree neighbour with
// rolling=true.
func (d *Director) SetActiveWinByDirection(ctx context.Context, dir workspace.Direction) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("set_active_win_by_direction", d.setActiveWinByDirectionLocked(ctx, dir))
}

func (d *Director) setActiveWinByDirectionLocked(ctx context.Context, dir workspace.Direction) Code {
	m := d.focused()
	if m == nil {
		return CodeInvalidState
	}
	ws := m.Wsman.Focused()
	if ws == nil {
		return CodeInvalidState
	}

	if target := ws.GetWinRelToFocused(dir, false); target != nil {
		return d.activateWithinLocked(ctx, ws, target)
	}

	if other := d.getMonitorByDirectionLocked(dir); other != nil {
		if otherWs := other.Wsman.Focused(); otherWs != nil {
			if target := otherWs.GetFocusedWin(); target != nil {
				d.focusedMonitor = other.Name
				return d.activateWithinLocked(ctx, otherWs, target)
			}
		}
	}

	if target := ws.GetWinRelToFocused(dir, true); target != nil {
		return d.activateWithinLocked(ctx, ws, target)
	}
	return CodeNotFound
}

// activateWithinLocked sets target focused on ws and synthesizes an
// OS activation for it, with the resulting set_active_win suppressed.
func (d *Director) activateWithinLocked(ctx context.Context, ws *workspace.Workspace, target *win.Win) Code {
	ws.SetFocusedWin(target)
	d.beginIgnoredActivation()
	if err := d.adapter.Activate(ctx, target.H); err != nil {
		d.logSevere("activate(%v) failed: %v", target.H, err)
		return CodeSubsystemFailure
	}
	return CodeOK
}

// GetMonitorByDirection returns the name of the first non-focused
// monitor (in monitor-list order) whose rectangle lies strictly on the
// dir side of the focused monitor's rectangle, or "" if none.
func (d *Director) GetMonitorByDirection(dir workspace.Direction) (string, Code) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := d.getMonitorByDirectionLocked(dir)
	if m == nil {
		return "", CodeNotFound
	}
	return m.Name, CodeOK
}

func (d *Director) getMonitorByDirectionLocked(dir workspace.Direction) *monitor.Monitor {
	focused := d.focused()
	if focused == nil {
		return nil
	}
	fr := focused.Rect
	for _, m := range d.monitors {
		if m.Name == focused.Name {
			continue
		}
		or := m.Rect
		var ok bool
		switch dir {
		case workspace.Up:
			ok = fr.Y >= or.Y+or.H
		case workspace.Down:
			ok = fr.Y+fr.H <= or.Y
		case workspace.Left:
			ok = fr.X >= or.X+or.W
		case workspace.Right:
			ok = fr.X+fr.W <= or.X
		}
		if ok {
			return m
		}
	}
	return nil
}

// CloseActiveWin sends an OS close request for the focused window's
// handle. It does not itself mutate the tree; the subsequent
// window-destroyed notification (outside this package's scope) drives
// RemoveWin.
func (d *Director) CloseActiveWin(ctx context.Context) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("close_active_win", d.closeActiveWinLocked(ctx))
}

func (d *Director) closeActiveWinLocked(ctx context.Context) Code {
	m := d.focused()
	if m == nil {
		return CodeInvalidState
	}
	ws := m.Wsman.Focused()
	if ws == nil {
		return CodeInvalidState
	}
	target := ws.GetFocusedWin()
	if target == nil {
		return CodeNotFound
	}
	if err := d.adapter.Close(ctx, target.H); err != nil {
		d.logSevere("close_active_win(%v) failed: %v", target.H, err)
		return CodeSubsystemFailure
	}
	d.logInfo("close_active_win: %v", target.H)
	return CodeOK
}

// Split replaces the focused window's leaf with an internal node of
// mode containing the old leaf as its sole child.
func (d *Director) Split(ctx context.Context, mode wintree.SplitMode) Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("split", d.splitLocked(ctx, mode))
}

func (d *Director) splitLocked(ctx context.Context, mode wintree.SplitMode) Code {
	m := d.focused()
	if m == nil {
		return CodeInvalidState
	}
	ws := m.Wsman.Focused()
	if ws == nil {
		return CodeInvalidState
	}
	if err := ws.Split(mode); err != nil {
		return CodeInvalidState
	}
	return d.arrangeWinsLocked(ctx)
}

// RemoveEmptyWs sweeps every monitor's WsManager for deeply-empty
// non-focused workspaces and removes them.
func (d *Director) RemoveEmptyWs() Code {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.observe("remove_empty_ws", d.removeEmptyWsLocked())
}

func (d *Director) removeEmptyWsLocked() Code {
	for _, m := range d.monitors {
		m.Wsman.RemoveEmpty()
	}
	return CodeOK
}
