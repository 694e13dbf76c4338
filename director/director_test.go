package director

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dimfred/b3/config"
	"github.com/Dimfred/b3/metrics"
	"github.com/Dimfred/b3/monitor"
	"github.com/Dimfred/b3/osadapter"
	"github.com/Dimfred/b3/rule"
	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/wintree"
	"github.com/Dimfred/b3/workspace"
)

const (
	mon1 = `\\.\DISPLAY1`
	mon2 = `\\.\DISPLAY2`
)

func plainFactory() workspace.Factory {
	return workspace.FactoryFunc(func(id string) (*workspace.Workspace, error) { return workspace.New(id) })
}

// twoMonitorDirector builds the two-1920x1080-side-by-side desktop used
// by spec.md's S1-S6 walkthrough.
func twoMonitorDirector(t *testing.T) (*Director, *osadapter.Fake) {
	t.Helper()
	adapter := osadapter.NewFake(
		osadapter.MonitorInfo{Name: mon1, Rect: win.Rect{X: 0, Y: 0, W: 1920, H: 1080}, Work: win.Rect{X: 0, Y: 0, W: 1920, H: 1080}},
		osadapter.MonitorInfo{Name: mon2, Rect: win.Rect{X: 1920, Y: 0, W: 1920, H: 1080}, Work: win.Rect{X: 1920, Y: 0, W: 1920, H: 1080}},
	)
	d := New(adapter, plainFactory(), monitor.FirstOrCurrentSwitcher{}, config.Default(), metrics.Noop())
	require.Equal(t, CodeOK, d.Refresh(context.Background()))
	return d, adapter
}

func addWin(t *testing.T, d *Director, monName, class string, id uint64) *win.Win {
	t.Helper()
	w := win.New(win.NewHandle(id), class)
	require.Equal(t, CodeOK, d.AddWin(context.Background(), monName, w))
	return w
}

// buildS1 reproduces spec.md's S1 exactly: W1 alone on the left
// monitor (rect = full monitor), then split(VERTICAL) and add W2,
// leaving W1 on top and W2 on the bottom half.
func buildS1(t *testing.T) (d *Director, w1, w2 *win.Win) {
	t.Helper()
	d, _ = twoMonitorDirector(t)
	ctx := context.Background()

	w1 = addWin(t, d, mon1, "Term", 1)
	require.Equal(t, win.Rect{X: 0, Y: 0, W: 1920, H: 1080}, w1.Rect)

	require.Equal(t, CodeOK, d.Split(ctx, wintree.Vertical))
	w2 = addWin(t, d, mon1, "Term", 2)
	require.Equal(t, CodeOK, d.ArrangeWins(ctx))
	return d, w1, w2
}

// TestScenarioS1VerticalSplit mirrors spec.md's S1.
func TestScenarioS1VerticalSplit(t *testing.T) {
	_, w1, w2 := buildS1(t)

	require.Equal(t, win.Rect{X: 0, Y: 0, W: 1920, H: 540}, w1.Rect)
	require.Equal(t, win.Rect{X: 0, Y: 540, W: 1920, H: 540}, w2.Rect)
}

// TestScenarioS2CrossMonitorFocusFails mirrors spec.md's S2: from S1,
// focus W1 and ask for RIGHT. The workspace has no HORIZONTAL split at
// any ancestor of W1 (its only split is VERTICAL), the right monitor
// has no window of its own yet, and the rolling retry still finds no
// HORIZONTAL ancestor — the whole lookup must fail.
func TestScenarioS2CrossMonitorFocusFails(t *testing.T) {
	d, w1, _ := buildS1(t)
	ctx := context.Background()

	d.mu.Lock()
	ws := d.findMonitor(mon1).Wsman.Focused()
	ws.SetFocusedWin(w1)
	d.mu.Unlock()

	require.Equal(t, CodeNotFound, d.SetActiveWinByDirection(ctx, workspace.Right))
}

// TestScenarioS3MoveToWorkspace mirrors spec.md's S3.
func TestScenarioS3MoveToWorkspace(t *testing.T) {
	d, w1, w2 := buildS1(t)
	ctx := context.Background()

	d.mu.Lock()
	m := d.findMonitor(mon1)
	m.Wsman.Focused().SetFocusedWin(w2)
	d.mu.Unlock()

	require.Equal(t, CodeOK, d.MoveActiveWinToWs(ctx, "2"))

	d.mu.Lock()
	ws1 := m.Wsman.Get("1")
	ws2 := m.Wsman.Get("2")
	d.mu.Unlock()

	require.NotNil(t, ws2)
	require.Equal(t, w2, ws2.GetFocusedWin())
	require.Nil(t, wintree.ContainsWin(ws1.Tree().Root, w2), "w2 must be gone from workspace 1")
	require.NotNil(t, wintree.ContainsWin(ws1.Tree().Root, w1), "workspace 1 must still hold w1")
	require.Equal(t, win.Rect{X: 0, Y: 0, W: 1920, H: 1080}, w1.Rect)
}

// TestScenarioS4FullscreenToggle mirrors spec.md's S4.
func TestScenarioS4FullscreenToggle(t *testing.T) {
	d, w1, w2 := buildS1(t)
	ctx := context.Background()
	beforeW2 := w2.Rect

	d.mu.Lock()
	m := d.findMonitor(mon1)
	m.Wsman.Focused().SetFocusedWin(w1)
	d.mu.Unlock()

	require.Equal(t, CodeOK, d.ToggleActiveWinFullscreen(ctx))
	require.Equal(t, win.Maximized, w1.State)
	require.Equal(t, win.Rect{X: 0, Y: 0, W: 1920, H: 1080}, w1.Rect)
	require.Equal(t, beforeW2, w2.Rect, "NORMAL sibling must not be redrawn while a MAXIMIZED sibling covers the area")
}

// TestScenarioS5RuleFiresOnce mirrors spec.md's S5: a rule matching
// class "Term" sets floating=true and must fire exactly once.
func TestScenarioS5RuleFiresOnce(t *testing.T) {
	d, _ := twoMonitorDirector(t)
	ctx := context.Background()

	fires := 0
	d.AddRule(termFloatRule{fires: &fires})

	w := win.New(win.NewHandle(1), "Term")
	require.Equal(t, CodeOK, d.AddWin(ctx, mon1, w))

	require.True(t, w.Floating)
	require.Equal(t, 1, fires)
}

type termFloatRule struct{ fires *int }

func (r termFloatRule) Applies(d rule.Director, w *win.Win) bool {
	return w.Class == "Term"
}

func (r termFloatRule) Exec(d rule.Director, w *win.Win) {
	*r.fires++
	w.Floating = true
}

// TestActivationSuppression verifies property 8: exactly one
// set_active_win after a synthetic activation is ignored.
func TestActivationSuppression(t *testing.T) {
	d, adapter := twoMonitorDirector(t)
	ctx := context.Background()

	w1 := addWin(t, d, mon1, "Term", 1)
	w2 := addWin(t, d, mon1, "Term", 2)

	require.Equal(t, CodeOK, d.SwitchToWs(ctx, "1"))
	require.NotEmpty(t, adapter.Activated)

	focusedWin := func() *win.Win {
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.findMonitor(mon1).Wsman.Focused().GetFocusedWin()
	}

	// The director's own switch issues a synthetic Activate for the
	// focused window (w2); the next set_active_win must be swallowed as
	// a no-op, so focus stays on w2 rather than moving to w1.
	require.Equal(t, CodeOK, d.SetActiveWin(ctx, w1))
	require.Equal(t, w2, focusedWin())

	// Only one activation is swallowed: the following one takes effect.
	require.Equal(t, CodeOK, d.SetActiveWin(ctx, w1))
	require.Equal(t, w1, focusedWin())
}

// TestGetMonitorByDirectionHalfPlane verifies property 7 against the
// two-side-by-side-monitor layout.
func TestGetMonitorByDirectionHalfPlane(t *testing.T) {
	d, _ := twoMonitorDirector(t)

	name, code := d.GetMonitorByDirection(workspace.Right)
	require.Equal(t, CodeOK, code)
	require.Equal(t, mon2, name)

	_, code = d.GetMonitorByDirection(workspace.Left)
	require.Equal(t, CodeNotFound, code)

	_, code = d.GetMonitorByDirection(workspace.Up)
	require.Equal(t, CodeNotFound, code)
}

func TestRemoveEmptyWsKeepsFocused(t *testing.T) {
	d, _ := twoMonitorDirector(t)
	ctx := context.Background()

	w := addWin(t, d, mon1, "Term", 1)
	require.Equal(t, CodeOK, d.SwitchToWs(ctx, "2"))
	require.Equal(t, CodeOK, d.RemoveWin(ctx, w))

	require.Equal(t, CodeOK, d.RemoveEmptyWs())

	d.mu.Lock()
	m := d.findMonitor(mon1)
	d.mu.Unlock()
	require.False(t, m.Wsman.ContainsWs("1"), "deeply-empty, non-focused workspace should be swept")
	require.True(t, m.Wsman.ContainsWs("2"), "focused workspace must survive RemoveEmptyWs regardless of emptiness")
}
