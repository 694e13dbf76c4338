// Package rule defines the external rule-engine contract the director
// consumes. The matching language itself (predicates, config syntax)
// is out of scope (spec.md §1); only the applies/exec contract is
// consumed here.
package rule

import "github.com/Dimfred/b3/win"

// Director is the minimal surface a Rule's Exec needs from the
// director, kept as an interface so rule implementations don't import
// the director package (which would create an import cycle, since the
// director holds the rule list).
type Director interface {
	ActiveWinToggleFloating() int
	ToggleActiveWinFullscreen() int
	MoveActiveWinToWs(id string) int
}

// Rule is a predicate + action over (director, window), fired in
// insertion order for every window added, with no isolation between
// rules — later rules see state left by earlier ones.
type Rule interface {
	Applies(d Director, w *win.Win) bool
	Exec(d Director, w *win.Win)
}

// Func adapts two plain functions into a Rule.
type Func struct {
	AppliesFunc func(d Director, w *win.Win) bool
	ExecFunc    func(d Director, w *win.Win)
}

func (f Func) Applies(d Director, w *win.Win) bool { return f.AppliesFunc(d, w) }
func (f Func) Exec(d Director, w *win.Win)         { f.ExecFunc(d, w) }
