package wintree

import (
	"testing"

	"github.com/Dimfred/b3/win"
)

func newWin(id uint64) *win.Win {
	return win.New(win.NewHandle(id), "Test")
}

func TestNewTreeHasEmptyLeafRoot(t *testing.T) {
	tr := New()
	if !tr.Root.IsLeaf() {
		t.Fatalf("fresh tree root should be a leaf")
	}
	if tr.Root.Win != nil {
		t.Fatalf("fresh tree root should hold no window")
	}
}

func TestParentOfRootReturnsNil(t *testing.T) {
	tr := New()
	if p := ParentOf(tr.Root, tr.Root); p != nil {
		t.Fatalf("ParentOf(root, root) = %v, want nil", p)
	}
}

func TestParentOfFindsNestedChild(t *testing.T) {
	leaf := NewLeaf(newWin(1))
	mid := &Node{Split: Horizontal, Children: []*Node{leaf}}
	root := &Node{Split: Vertical, Children: []*Node{mid}}

	if got := ParentOf(root, leaf); got != mid {
		t.Fatalf("ParentOf(root, leaf) = %v, want mid", got)
	}
	if got := ParentOf(root, mid); got != root {
		t.Fatalf("ParentOf(root, mid) = %v, want root", got)
	}
}

func TestContainsWinMatchesByHandle(t *testing.T) {
	w := newWin(7)
	leaf := NewLeaf(w)
	root := &Node{Split: Horizontal, Children: []*Node{leaf, NewLeaf(nil)}}

	if got := ContainsWin(root, w); got != leaf {
		t.Fatalf("ContainsWin did not find leaf holding w")
	}
	if got := ContainsWin(root, newWin(99)); got != nil {
		t.Fatalf("ContainsWin found unrelated window: %v", got)
	}
}

func TestNeighbourNoRollingStopsAtEdge(t *testing.T) {
	a, b, c := NewLeaf(newWin(1)), NewLeaf(newWin(2)), NewLeaf(newWin(3))
	root := &Node{Split: Horizontal, Children: []*Node{a, b, c}}

	if got := Neighbour(root, a, Previous, false); got != nil {
		t.Fatalf("Neighbour(a, Previous, rolling=false) = %v, want nil", got)
	}
	if got := Neighbour(root, a, Next, false); got != b {
		t.Fatalf("Neighbour(a, Next) = %v, want b", got)
	}
	if got := Neighbour(root, c, Next, false); got != nil {
		t.Fatalf("Neighbour(c, Next, rolling=false) = %v, want nil", got)
	}
}

func TestNeighbourRollingWrapsAround(t *testing.T) {
	a, b, c := NewLeaf(newWin(1)), NewLeaf(newWin(2)), NewLeaf(newWin(3))
	root := &Node{Split: Horizontal, Children: []*Node{a, b, c}}

	if got := Neighbour(root, a, Previous, true); got != c {
		t.Fatalf("Neighbour(a, Previous, rolling=true) = %v, want c", got)
	}
	if got := Neighbour(root, c, Next, true); got != a {
		t.Fatalf("Neighbour(c, Next, rolling=true) = %v, want a", got)
	}
}

func TestReorgDropsEmptyInternalSubtree(t *testing.T) {
	emptyChild := &Node{Split: Horizontal, Children: []*Node{NewLeaf(nil), NewLeaf(nil)}}
	occupied := NewLeaf(newWin(1))
	root := &Node{Split: Vertical, Children: []*Node{emptyChild, occupied}}

	Reorg(root)

	if len(root.Children) != 1 || root.Children[0] != occupied {
		t.Fatalf("Reorg did not drop the empty internal subtree: %+v", root.Children)
	}
}

func TestReorgIsIdempotent(t *testing.T) {
	root := &Node{Split: Horizontal, Children: []*Node{
		NewLeaf(newWin(1)),
		{Split: Vertical, Children: []*Node{NewLeaf(nil)}},
	}}
	Reorg(root)
	before := len(root.Children)
	Reorg(root)
	if len(root.Children) != before {
		t.Fatalf("Reorg is not idempotent: %d children then %d", before, len(root.Children))
	}
}

func TestMaximizedFindsFirstMaximizedWin(t *testing.T) {
	w1 := newWin(1)
	w2 := newWin(2)
	w2.State = win.Maximized
	root := &Node{Split: Horizontal, Children: []*Node{NewLeaf(w1), NewLeaf(w2)}}

	if got := Maximized(root); got != w2 {
		t.Fatalf("Maximized = %v, want w2", got)
	}
}

func TestWinAtPointFindsContainingRect(t *testing.T) {
	w1 := newWin(1)
	w1.Rect = win.Rect{X: 0, Y: 0, W: 100, H: 100}
	w2 := newWin(2)
	w2.Rect = win.Rect{X: 100, Y: 0, W: 100, H: 100}
	root := &Node{Split: Horizontal, Children: []*Node{NewLeaf(w1), NewLeaf(w2)}}

	if got := WinAtPoint(root, 50, 50); got != w1 {
		t.Fatalf("WinAtPoint(50,50) = %v, want w1", got)
	}
	if got := WinAtPoint(root, 150, 50); got != w2 {
		t.Fatalf("WinAtPoint(150,50) = %v, want w2", got)
	}
	if got := WinAtPoint(root, 500, 500); got != nil {
		t.Fatalf("WinAtPoint(500,500) = %v, want nil", got)
	}
}

func TestIsEmptyDeep(t *testing.T) {
	root := &Node{Split: Horizontal, Children: []*Node{
		{Split: Vertical, Children: []*Node{NewLeaf(nil)}},
		NewLeaf(nil),
	}}
	if !IsEmpty(root, true) {
		t.Fatalf("deeply-empty tree reported non-empty")
	}
	root.Children[0].Children[0].Win = newWin(1)
	if IsEmpty(root, true) {
		t.Fatalf("tree with a window reported empty")
	}
}
