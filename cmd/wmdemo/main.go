// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/wmdemo/main.go
// Summary: Manual exercise CLI for the director, wired against
// osadapter.Fake instead of a real display server.
//
// Grounded on texelation's cmd/ cobra entry point shape, generalized
// from "launch a terminal multiplexer" to "seed a fake two-monitor
// desktop and let an operator drive director commands from a shell".
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dimfred/b3/config"
	"github.com/Dimfred/b3/director"
	"github.com/Dimfred/b3/metrics"
	"github.com/Dimfred/b3/monitor"
	"github.com/Dimfred/b3/osadapter"
	"github.com/Dimfred/b3/win"
	"github.com/Dimfred/b3/wintree"
	"github.com/Dimfred/b3/workspace"
)

func wintreeModeFromArg(arg string) wintree.SplitMode {
	if arg == "v" {
		return wintree.Vertical
	}
	return wintree.Horizontal
}

func defaultFactory() workspace.Factory {
	return workspace.FactoryFunc(func(id string) (*workspace.Workspace, error) {
		return workspace.New(id)
	})
}

func newDemoDirector() (*director.Director, *osadapter.Fake) {
	adapter := osadapter.NewFake(
		osadapter.MonitorInfo{
			Name: `\\.\DISPLAY1`,
			Rect: win.Rect{X: 0, Y: 0, W: 1920, H: 1080},
			Work: win.Rect{X: 0, Y: 0, W: 1920, H: 1080},
		},
		osadapter.MonitorInfo{
			Name: `\\.\DISPLAY2`,
			Rect: win.Rect{X: 1920, Y: 0, W: 1920, H: 1080},
			Work: win.Rect{X: 1920, Y: 0, W: 1920, H: 1080},
		},
	)
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	d := director.New(adapter, defaultFactory(), monitor.FirstOrCurrentSwitcher{}, cfg, metrics.Noop())
	d.Refresh(context.Background())
	return d, adapter
}

func main() {
	d, adapter := newDemoDirector()
	ctx := context.Background()
	nextID := uint64(1)

	root := &cobra.Command{
		Use:   "wmdemo",
		Short: "Drive a director against a fake two-monitor desktop",
	}

	root.AddCommand(&cobra.Command{
		Use:   "add [monitor] [class]",
		Short: "Add a window to monitor, created fresh from the fake adapter",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			h := win.NewHandle(nextID)
			nextID++
			w := win.New(h, args[1])
			code := d.AddWin(ctx, args[0], w)
			fmt.Printf("add_win(%s, %s) -> %s, handle=%s\n", args[0], args[1], code, h)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "split [h|v]",
		Short: "Split the focused window",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mode := wintreeModeFromArg(args[0])
			fmt.Printf("split(%s) -> %s\n", args[0], d.Split(ctx, mode))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "toggle-floating",
		Short: "Toggle floating on the focused window",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("active_win_toggle_floating ->", d.ActiveWinToggleFloating(ctx))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "toggle-fullscreen",
		Short: "Toggle fullscreen on the focused window",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("toggle_active_win_fullscreen ->", d.ToggleActiveWinFullscreen(ctx))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "close",
		Short: "Close the focused window",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("close_active_win ->", d.CloseActiveWin(ctx))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print fake-adapter call counts",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("activations=%d repaints=%d\n", len(adapter.Activated), adapter.Repaints)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
