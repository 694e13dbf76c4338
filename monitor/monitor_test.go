package monitor

import (
	"testing"

	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/workspace"
)

func plainFactory() workspace.Factory {
	return workspace.FactoryFunc(func(id string) (*workspace.Workspace, error) { return workspace.New(id) })
}

func TestEnsureWorkspaceCreatesOnceAndReuses(t *testing.T) {
	m := New("A", win.Rect{W: 1920, H: 1080}, win.Rect{W: 1920, H: 1080}, nil, plainFactory(), nil)

	ws1, err := m.EnsureWorkspace("1")
	if err != nil {
		t.Fatalf("EnsureWorkspace: %v", err)
	}
	ws2, err := m.EnsureWorkspace("1")
	if err != nil || ws2 != ws1 {
		t.Fatalf("EnsureWorkspace should reuse the monitor's existing workspace once one exists")
	}
}

func TestFirstOrCurrentSwitcherPrefersCurrent(t *testing.T) {
	sw := FirstOrCurrentSwitcher{}
	if got := sw.Choose([]string{"1", "2"}, "2"); got != "2" {
		t.Fatalf("Choose with a current focus should keep it, got %q", got)
	}
	if got := sw.Choose([]string{"1", "2"}, ""); got != "1" {
		t.Fatalf("Choose with no current focus should pick the first, got %q", got)
	}
	if got := sw.Choose(nil, ""); got != "" {
		t.Fatalf("Choose with nothing available should return empty, got %q", got)
	}
}

func TestArrangeUsesWorkRect(t *testing.T) {
	m := New("A", win.Rect{W: 1920, H: 1080}, win.Rect{X: 0, Y: 20, W: 1920, H: 1060}, &Bar{Side: SideTop, Size: 20}, plainFactory(), nil)
	m.EnsureWorkspace("1")
	m.ChooseFocusWorkspace()

	w := win.New(win.NewHandle(1), "Term")
	m.Wsman.Focused().AddWin(w)
	m.Arrange()

	if w.Rect != m.WorkRect {
		t.Fatalf("sole window should be arranged to the full work rect, got %+v want %+v", w.Rect, m.WorkRect)
	}
}
