package workspace

import (
	"errors"

	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/wintree"
)

// ErrUnknownWorkspace is returned when an operation names a workspace
// id the WsManager does not hold.
var ErrUnknownWorkspace = errors.New("workspace: unknown id")

// ErrFocusedWorkspace is returned by Remove when asked to remove the
// currently focused workspace.
var ErrFocusedWorkspace = errors.New("workspace: cannot remove focused workspace")

// Factory builds a fresh Workspace for an id; the director never
// manufactures workspaces itself (spec.md §6).
type Factory interface {
	New(id string) (*Workspace, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(id string) (*Workspace, error)

func (f FactoryFunc) New(id string) (*Workspace, error) { return f(id) }

// WsManager is the set of workspaces bound to one monitor, in insertion
// (= display) order, with a focused workspace pointer.
//
// Grounded on texel/desktop.go's Desktop.workspaces map plus
// SwitchToWorkspace, reshaped into an ordered slice (insertion order
// matters for display per spec.md §3) behind a small factory interface
// instead of Desktop's built-in newWorkspace constructor call.
type WsManager struct {
	factory Factory
	order   []string
	byID    map[string]*Workspace
	focused string
}

// New creates an empty WsManager backed by factory.
func New(factory Factory) *WsManager {
	return &WsManager{factory: factory, byID: make(map[string]*Workspace)}
}

// Add returns the existing workspace for id if present (idempotent),
// else manufactures and registers a new one via the factory.
func (m *WsManager) Add(id string) (*Workspace, error) {
	if ws, ok := m.byID[id]; ok {
		return ws, nil
	}
	ws, err := m.factory.New(id)
	if err != nil {
		return nil, err
	}
	m.byID[id] = ws
	m.order = append(m.order, id)
	if m.focused == "" {
		m.focused = id
	}
	return ws, nil
}

// Remove removes the named workspace. It fails if the id is unknown or
// names the currently focused workspace.
func (m *WsManager) Remove(id string) error {
	if _, ok := m.byID[id]; !ok {
		return ErrUnknownWorkspace
	}
	if id == m.focused {
		return ErrFocusedWorkspace
	}
	delete(m.byID, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ContainsWs reports whether id is a known workspace.
func (m *WsManager) ContainsWs(id string) bool {
	_, ok := m.byID[id]
	return ok
}

// Get returns the named workspace, or nil if unknown.
func (m *WsManager) Get(id string) *Workspace {
	return m.byID[id]
}

// FindWin returns the workspace (linear scan, insertion order) holding
// w, either tiled or floating, or nil if none does.
func (m *WsManager) FindWin(w *win.Win) *Workspace {
	if w == nil {
		return nil
	}
	for _, id := range m.order {
		ws := m.byID[id]
		if ws == nil {
			continue
		}
		if wintree.ContainsWin(ws.tree.Root, w) != nil {
			return ws
		}
		for _, f := range ws.floating {
			if f.Equal(w) {
				return ws
			}
		}
	}
	return nil
}

// SetFocusedWs sets id as the focused workspace. Returns -1 if it was
// already focused, 0 on switch, >0 if id is unknown.
func (m *WsManager) SetFocusedWs(id string) int {
	if id == m.focused {
		return -1
	}
	if !m.ContainsWs(id) {
		return 1
	}
	m.focused = id
	return 0
}

// Focused returns the currently focused workspace, or nil if none has
// been added yet.
func (m *WsManager) Focused() *Workspace {
	return m.byID[m.focused]
}

// FocusedID returns the currently focused workspace's id.
func (m *WsManager) FocusedID() string { return m.focused }

// Order returns workspace ids in insertion (display) order.
func (m *WsManager) Order() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// RemoveEmpty removes every workspace (other than the focused one)
// that holds no window: a deeply empty tree and no floating windows.
func (m *WsManager) RemoveEmpty() {
	for _, id := range m.Order() {
		if id == m.focused {
			continue
		}
		ws := m.byID[id]
		if ws != nil && ws.IsEmpty() {
			_ = m.Remove(id)
		}
	}
}
