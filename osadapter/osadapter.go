// Package osadapter defines the OS adapter contract the director calls
// out to (enumerate monitors, move/resize windows, synthesize
// activation, broadcast repaint) and an in-memory Fake implementation
// used by tests and cmd/wmdemo. A real win32/X11/Wayland adapter is
// out of scope per spec.md §1.
package osadapter

import (
	"context"
	"errors"
	"sync"

	"github.com/Dimfred/b3/win"
)

// MonitorInfo is what EnumerateMonitors yields for one output.
type MonitorInfo struct {
	Name string
	Rect win.Rect
	Work win.Rect
}

// Adapter is the required OS capability surface (spec.md §6).
type Adapter interface {
	EnumerateMonitors(ctx context.Context) ([]MonitorInfo, error)
	GetState(ctx context.Context, h win.Handle) (win.State, error)
	SetState(ctx context.Context, h win.Handle, s win.State) error
	GetRect(ctx context.Context, h win.Handle) (win.Rect, error)
	SetRect(ctx context.Context, h win.Handle, r win.Rect) error
	Close(ctx context.Context, h win.Handle) error
	Activate(ctx context.Context, h win.Handle) error
	// BroadcastRepaint hints every top-level window on monitorName's
	// output to redraw its frame.
	BroadcastRepaint(ctx context.Context, monitorName string) error
}

// ErrUnknownWindow is returned by Fake operations on an untracked handle.
var ErrUnknownWindow = errors.New("osadapter: unknown window")

// Fake is an in-memory Adapter for tests and the demo CLI. It never
// talks to a real display server.
type Fake struct {
	mu        sync.Mutex
	monitors  []MonitorInfo
	states    map[win.Handle]win.State
	rects     map[win.Handle]win.Rect
	closed    map[win.Handle]bool
	Activated []win.Handle // record of Activate calls, for assertions
	Repaints  int
}

// NewFake returns a Fake seeded with the given monitors.
func NewFake(monitors ...MonitorInfo) *Fake {
	return &Fake{
		monitors: monitors,
		states:   make(map[win.Handle]win.State),
		rects:    make(map[win.Handle]win.Rect),
		closed:   make(map[win.Handle]bool),
	}
}

func (f *Fake) EnumerateMonitors(ctx context.Context) ([]MonitorInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]MonitorInfo, len(f.monitors))
	copy(out, f.monitors)
	return out, nil
}

func (f *Fake) GetState(ctx context.Context, h win.Handle) (win.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.states[h]
	if !ok {
		return win.Normal, ErrUnknownWindow
	}
	return s, nil
}

func (f *Fake) SetState(ctx context.Context, h win.Handle, s win.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[h] = s
	return nil
}

func (f *Fake) GetRect(ctx context.Context, h win.Handle) (win.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rects[h]
	if !ok {
		return win.Rect{}, ErrUnknownWindow
	}
	return r, nil
}

func (f *Fake) SetRect(ctx context.Context, h win.Handle, r win.Rect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rects[h] = r
	return nil
}

func (f *Fake) Close(ctx context.Context, h win.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed[h] = true
	return nil
}

func (f *Fake) Activate(ctx context.Context, h win.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Activated = append(f.Activated, h)
	return nil
}

func (f *Fake) BroadcastRepaint(ctx context.Context, monitorName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Repaints++
	return nil
}

// Closed reports whether Close was called for h.
func (f *Fake) Closed(h win.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed[h]
}
