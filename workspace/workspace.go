// Package workspace implements one named workspace: a WinTree root, a
// focused-leaf pointer, a floating-window list, and an owning
// WsManager per monitor.
//
// Grounded on texel/workspace.go's Workspace (tree + navigation +
// split/close operations), generalized from a terminal-pane tiler to
// the spec's window manager: fractional pane ratios and tcell-specific
// event plumbing are dropped (not asked for by the spec), the split
// ratio concept is replaced with equal-share strips per spec.md's
// arrange algorithm, and neighbour climbing follows texel/tree.go's
// findNeighbor, generalized to an explicit axis instead of four
// direction-specific switch cases.
package workspace

import (
	"errors"

	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/wintree"
)

// Direction is a user-facing compass direction for focus/move commands.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// axis returns the split orientation that Direction moves along.
func (d Direction) axis() wintree.SplitMode {
	switch d {
	case Up, Down:
		return wintree.Vertical
	default:
		return wintree.Horizontal
	}
}

// relDir returns whether Direction steps to the previous or next sibling.
func (d Direction) relDir() wintree.RelDir {
	switch d {
	case Up, Left:
		return wintree.Previous
	default:
		return wintree.Next
	}
}

var (
	// ErrNoTarget is returned by operations with no target, e.g. no
	// focused window.
	ErrNoTarget = errors.New("workspace: no target")
	// ErrEmptyName rejects a workspace created with no id.
	ErrEmptyName = errors.New("workspace: empty name")
)

// Workspace is a named virtual desktop bound to one monitor.
type Workspace struct {
	Name     string
	tree     *wintree.Tree
	focused  *wintree.Node
	floating []*win.Win
	// focusedFloating tracks the active window while it's floating
	// (outside the tree, so it has no leaf for `focused` to point at).
	// At most one of focused.Win and focusedFloating is meaningful at
	// a time.
	focusedFloating *win.Win
	area            win.Rect
}

// New creates an empty workspace with the given id.
func New(name string) (*Workspace, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Workspace{Name: name, tree: wintree.New()}, nil
}

// SetArea updates the workspace's work-area rectangle (derived from its
// monitor's work area) and re-arranges.
func (w *Workspace) SetArea(area win.Rect) {
	w.area = area
	w.Arrange(area)
}

// Area returns the workspace's current work-area rectangle.
func (w *Workspace) Area() win.Rect { return w.area }

// Tree exposes the underlying split tree for callers that need direct
// structural access (director cross-monitor moves, tests).
func (w *Workspace) Tree() *wintree.Tree { return w.tree }

// IsEmpty reports whether the workspace holds no window at all: its
// tree is deeply empty and its floating list is empty. A workspace
// holding only floating windows is not empty.
func (w *Workspace) IsEmpty() bool {
	return wintree.IsEmpty(w.tree.Root, true) && len(w.floating) == 0
}

// AddWin inserts w into the currently focused leaf's parent, or at root
// if the workspace is empty.
func (w *Workspace) AddWin(nw *win.Win) {
	if w.tree.Root.Win == nil && len(w.tree.Root.Children) == 0 {
		w.tree.Root.Win = nw
		w.focused = w.tree.Root
		return
	}

	if w.focused == nil {
		// No focus recorded (shouldn't normally happen on a non-empty
		// tree) — fall back to the first leaf found.
		wintree.Traverse(w.tree.Root, func(n *wintree.Node) {
			if w.focused == nil && n.IsLeaf() {
				w.focused = n
			}
		})
	}
	leaf := w.focused

	parent := wintree.ParentOf(w.tree.Root, leaf)
	newLeaf := wintree.NewLeaf(nw)
	if parent == nil {
		// leaf is the root, still holding a single window: split it
		// into an internal node using the workspace's default
		// (horizontal) orientation.
		oldLeaf := &wintree.Node{Win: leaf.Win}
		w.tree.Root.Win = nil
		w.tree.Root.Split = wintree.Horizontal
		w.tree.Root.Children = []*wintree.Node{oldLeaf, newLeaf}
	} else {
		parent.AddChild(newLeaf)
	}
	w.focused = newLeaf
}

// RemoveWin detaches the leaf holding w, if found, reorganizes the
// tree, and clears or reassigns focus if the removed leaf was focused.
// Returns ErrNoTarget if w is not present.
func (w *Workspace) RemoveWin(target *win.Win) error {
	leaf := wintree.ContainsWin(w.tree.Root, target)
	if leaf == nil {
		for i, f := range w.floating {
			if f.Equal(target) {
				w.floating = append(w.floating[:i], w.floating[i+1:]...)
				return nil
			}
		}
		return ErrNoTarget
	}

	wasFocused := leaf == w.focused

	if leaf == w.tree.Root {
		w.tree.Root.Win = nil
	} else if err := wintree.RemoveSubtree(w.tree.Root, leaf); err != nil {
		return err
	}
	wintree.Reorg(w.tree.Root)

	if wasFocused {
		w.focused = nil
		wintree.Traverse(w.tree.Root, func(n *wintree.Node) {
			if w.focused == nil && n.Win != nil {
				w.focused = n
			}
		})
	}
	return nil
}

// SetFocusedWin marks the leaf or floating window holding target as
// focused, if found.
func (w *Workspace) SetFocusedWin(target *win.Win) bool {
	if leaf := wintree.ContainsWin(w.tree.Root, target); leaf != nil {
		w.focused = leaf
		w.focusedFloating = nil
		return true
	}
	for _, f := range w.floating {
		if f.Equal(target) {
			w.focused = nil
			w.focusedFloating = f
			return true
		}
	}
	return false
}

// GetFocusedWin returns the window at the focused leaf, falling back to
// the focused floating window, or nil if neither is set.
func (w *Workspace) GetFocusedWin() *win.Win {
	if w.focused != nil && w.focused.Win != nil {
		return w.focused.Win
	}
	return w.focusedFloating
}

// FocusedLeaf exposes the raw focused node for director-level cross
// monitor bookkeeping.
func (w *Workspace) FocusedLeaf() *wintree.Node { return w.focused }

// FloatingWins returns the workspace's floating windows.
func (w *Workspace) FloatingWins() []*win.Win { return w.floating }

// AddFloating moves target into the floating list and marks it
// focused; the caller is responsible for having already removed it
// from the tiling tree, if it was tiled.
func (w *Workspace) AddFloating(target *win.Win) {
	w.floating = append(w.floating, target)
	w.focused = nil
	w.focusedFloating = target
}

// RemoveFloating removes target from the floating list, if present.
func (w *Workspace) RemoveFloating(target *win.Win) bool {
	for i, f := range w.floating {
		if f.Equal(target) {
			w.floating = append(w.floating[:i], w.floating[i+1:]...)
			if w.focusedFloating == f {
				w.focusedFloating = nil
			}
			return true
		}
	}
	return false
}

// ToggleFloating flips the floating state of w (which must be the
// workspace's currently focused window, tiled or floating), moving it
// between the split tree and the floating list. It reports the new
// Floating value, or ok=false if w is not the focused window.
func (w *Workspace) ToggleFloating(target *win.Win) (floating bool, ok bool) {
	if w.GetFocusedWin() != target {
		return false, false
	}
	if target.Floating {
		w.RemoveFloating(target)
		target.Floating = false
		w.AddWin(target)
		return false, true
	}
	_ = w.RemoveWin(target)
	target.Floating = true
	w.AddFloating(target)
	return true, true
}

// Split replaces the focused leaf with an internal node of mode,
// containing the old leaf as its sole child.
func (w *Workspace) Split(mode wintree.SplitMode) error {
	if w.focused == nil {
		return ErrNoTarget
	}
	old := &wintree.Node{Win: w.focused.Win}
	w.focused.Win = nil
	w.focused.Split = mode
	w.focused.Children = []*wintree.Node{old}
	w.focused = old
	return nil
}

// neighbourLeaf climbs from the focused leaf through ancestors until it
// finds one whose split mode matches dir's axis and has a usable
// sibling step (applying rolling at that level), per
// texel/tree.go's findNeighbor climb.
func (w *Workspace) neighbourLeaf(dir Direction, rolling bool) *wintree.Node {
	if w.focused == nil {
		return nil
	}
	axis := dir.axis()
	rel := dir.relDir()

	curr := w.focused
	for {
		parent := wintree.ParentOf(w.tree.Root, curr)
		if parent == nil {
			return nil
		}
		if parent.Split == axis {
			if nb := wintree.Neighbour(w.tree.Root, curr, rel, rolling); nb != nil {
				return firstLeaf(nb)
			}
		}
		curr = parent
	}
}

// GetWinRelToFocused returns the window at the neighbour leaf found by
// neighbourLeaf, or nil if there is none.
func (w *Workspace) GetWinRelToFocused(dir Direction, rolling bool) *win.Win {
	leaf := w.neighbourLeaf(dir, rolling)
	if leaf == nil {
		return nil
	}
	return leaf.Win
}

// MoveFocusedWin swaps the focused window with its tree neighbour in
// dir, keeping that window focused (now at the neighbour's former tree
// position). It reports whether a neighbour was found. Grounded
// directly on texel/tree.go's SwapActivePane+MoveActive pair.
func (w *Workspace) MoveFocusedWin(dir Direction, rolling bool) bool {
	if w.focused == nil || w.focused.Win == nil {
		return false
	}
	nb := w.neighbourLeaf(dir, rolling)
	if nb == nil {
		return false
	}
	w.focused.Win, nb.Win = nb.Win, w.focused.Win
	w.focused = nb
	return true
}

func firstLeaf(n *wintree.Node) *wintree.Node {
	var found *wintree.Node
	wintree.Traverse(n, func(cur *wintree.Node) {
		if found == nil && cur.IsLeaf() {
			found = cur
		}
	})
	return found
}

// Arrange recomputes every leaf's rectangle within area, per the spec's
// equal-strip algorithm: HORIZONTAL splits divide into equal-width
// vertical strips left to right, VERTICAL splits into equal-height
// horizontal strips top to bottom. A MAXIMIZED leaf takes the entire
// workspace area and suppresses its NORMAL siblings on that area;
// MINIMIZED leaves are skipped. Floating windows keep their prior rect.
func (w *Workspace) Arrange(area win.Rect) {
	w.area = area
	if w.tree.Root == nil {
		return
	}
	if wintree.Maximized(w.tree.Root) != nil {
		arrangeNode(w.tree.Root, area, true)
		// A MAXIMIZED leaf covers the whole workspace area, not its strip.
		wintree.Traverse(w.tree.Root, func(n *wintree.Node) {
			if n.Win != nil && n.Win.State == win.Maximized {
				n.Win.Rect = area
			}
		})
		return
	}
	arrangeNode(w.tree.Root, area, false)
}

func arrangeNode(n *wintree.Node, area win.Rect, suppressNormal bool) {
	if n == nil {
		return
	}
	if n.Win != nil {
		switch n.Win.State {
		case win.Maximized:
			n.Win.Rect = area
		case win.Minimized:
			// skipped: no rectangle assigned
		default:
			if !suppressNormal {
				n.Win.Rect = area
			}
		}
		return
	}

	count := len(n.Children)
	if count == 0 {
		return
	}
	if n.Split == wintree.Horizontal {
		stripW := area.W / count
		x := area.X
		for i, c := range n.Children {
			w := stripW
			if i == count-1 {
				w = area.X + area.W - x
			}
			arrangeNode(c, win.Rect{X: x, Y: area.Y, W: w, H: area.H}, suppressNormal)
			x += w
		}
	} else {
		stripH := area.H / count
		y := area.Y
		for i, c := range n.Children {
			h := stripH
			if i == count-1 {
				h = area.Y + area.H - y
			}
			arrangeNode(c, win.Rect{X: area.X, Y: y, W: area.W, H: h}, suppressNormal)
			y += h
		}
	}
}
