// Package wintree implements the recursive split container tree that
// backs one workspace. A Node is either a LEAF, holding at most one
// *win.Win, or an INTERNAL node with an ordered, owned list of children
// and a split mode.
//
// Grounded on texel/tree.go's Node/Tree pair (the teacher's own split
// tree), but adapted: the teacher stores a Parent pointer on every
// Node; per the spec's design notes ("storing parent pointers creates
// aliasing that fights single-owner models; a top-down search is
// simpler and fast enough") this tree looks up a node's parent by
// walking down from the root instead, and drops the teacher's
// animation/resize-ratio machinery, which the spec does not ask for.
package wintree

import (
	"errors"

	"github.com/Dimfred/b3/win"
)

// SplitMode is the orientation an INTERNAL node divides its children's
// area along.
type SplitMode int

const (
	Horizontal SplitMode = iota
	Vertical
)

// RelDir is the direction requested from wintree.Neighbour.
type RelDir int

const (
	Previous RelDir = iota
	Next
)

// ErrNotFound is returned by operations that locate a node by identity
// when it is not a descendant of the subtree searched.
var ErrNotFound = errors.New("wintree: node not found")

// Node is a tagged-variant tree node: exactly one of (Win != nil) or
// (len(Children) > 0) holds for any node reachable from a Tree's root,
// with the sole exception of a brand-new empty leaf (Win == nil,
// Children == nil).
type Node struct {
	Win      *win.Win  // set only on a leaf
	Split    SplitMode // meaningful only on an internal node
	Children []*Node   // non-empty only on an internal node
}

// IsLeaf reports whether n has no children, i.e. is a leaf (empty or
// holding a window).
func (n *Node) IsLeaf() bool {
	return n == nil || len(n.Children) == 0
}

// NewLeaf returns an empty leaf, optionally holding w.
func NewLeaf(w *win.Win) *Node {
	return &Node{Win: w}
}

// Tree owns the root Node of one workspace's split container.
type Tree struct {
	Root *Node
}

// New returns a tree with an empty leaf root.
func New() *Tree {
	return &Tree{Root: NewLeaf(nil)}
}

// Traverse runs a depth-first pre-order walk over the subtree rooted at
// n, calling visit for every node including n itself.
func Traverse(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Traverse(c, visit)
	}
}

// AddChild appends child to n, which must be an internal node (or a
// node about to become one).
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// ParentOf returns the parent of target within the subtree rooted at
// root, or nil if target is root itself or not found. O(tree size).
func ParentOf(root, target *Node) *Node {
	if root == nil || target == nil || root == target {
		return nil
	}
	for _, c := range root.Children {
		if c == target {
			return root
		}
		if p := ParentOf(c, target); p != nil {
			return p
		}
	}
	return nil
}

// RemoveSubtree detaches node from its position under root by identity.
// It returns ErrNotFound if node is not a descendant of root (or is
// root itself, which cannot be detached from within its own tree).
func RemoveSubtree(root, node *Node) error {
	parent := ParentOf(root, node)
	if parent == nil {
		return ErrNotFound
	}
	for i, c := range parent.Children {
		if c == node {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ContainsWin returns the leaf under n whose Win matches w by handle,
// or nil if none does.
func ContainsWin(n *Node, w *win.Win) *Node {
	if n == nil || w == nil {
		return nil
	}
	var found *Node
	Traverse(n, func(cur *Node) {
		if found != nil {
			return
		}
		if cur.Win != nil && cur.Win.H == w.H {
			found = cur
		}
	})
	return found
}

// Neighbour returns the sibling of node adjacent to it in dir, among
// node's siblings in its parent's child list. If node has no parent
// (it is the tree root), or the move runs off the end of the child
// list without rolling, it returns nil. Ties/order are the parent's
// stable child-list order.
func Neighbour(root, node *Node, dir RelDir, rolling bool) *Node {
	parent := ParentOf(root, node)
	if parent == nil {
		return nil
	}
	idx := indexOf(parent, node)
	if idx < 0 {
		return nil
	}
	n := len(parent.Children)
	switch dir {
	case Next:
		if idx+1 < n {
			return parent.Children[idx+1]
		}
		if rolling {
			return parent.Children[0]
		}
	case Previous:
		if idx-1 >= 0 {
			return parent.Children[idx-1]
		}
		if rolling {
			return parent.Children[n-1]
		}
	}
	return nil
}

func indexOf(parent, node *Node) int {
	for i, c := range parent.Children {
		if c == node {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether n holds no Win. If deep is false, only n
// itself (a leaf) or n's immediate children are checked; if deep is
// true the entire subtree is checked.
func IsEmpty(n *Node, deep bool) bool {
	if n == nil {
		return true
	}
	if n.Win != nil {
		return false
	}
	if len(n.Children) == 0 {
		return true
	}
	if !deep {
		for _, c := range n.Children {
			if c.Win != nil {
				return false
			}
		}
		return true
	}
	empty := true
	Traverse(n, func(cur *Node) {
		if cur.Win != nil {
			empty = false
		}
	})
	return empty
}

// Reorg recursively removes internal children of n whose entire
// subtree holds no Win. It is idempotent: Reorg(Reorg(n)) leaves the
// tree structurally unchanged.
func Reorg(n *Node) {
	if n == nil || n.Win != nil {
		return
	}
	kept := n.Children[:0:0]
	for _, c := range n.Children {
		if !c.IsLeaf() {
			Reorg(c)
		}
		if IsEmpty(c, true) && !c.IsLeaf() {
			continue // drop: internal child with an empty deep subtree
		}
		if c.IsLeaf() && c.Win == nil && len(n.Children) > 1 {
			continue // drop: stray empty leaf alongside siblings
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

// Maximized returns the first reachable Win (pre-order) whose State is
// win.Maximized, or nil if none.
func Maximized(n *Node) *win.Win {
	var found *win.Win
	Traverse(n, func(cur *Node) {
		if found != nil {
			return
		}
		if cur.Win != nil && cur.Win.State == win.Maximized {
			found = cur.Win
		}
	})
	return found
}

// WinAtPoint returns the first leaf (pre-order) whose Win's rectangle
// contains (x,y), or nil if none. This is the canonical implementation;
// there is no separate public wrapper to shadow it.
func WinAtPoint(n *Node, x, y int) *win.Win {
	var found *win.Win
	Traverse(n, func(cur *Node) {
		if found != nil {
			return
		}
		if cur.Win != nil && cur.Win.Rect.Contains(x, y) {
			found = cur.Win
		}
	})
	return found
}
