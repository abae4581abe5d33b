// Package rampart is a retained-mode UI control layer for [Ebitengine].
//
// Rampart owns the control tree, routes pointer and keyboard input, scales a
// fixed-resolution back buffer into an arbitrarily sized window, and
// dispatches per-frame update/draw hooks. It is aimed at games that render
// at a fixed logical resolution and want windowed UI (menus, list boxes, HUD
// panels) with classic desktop semantics: z-ordered hit testing, input
// focus, exclusive capture, and event bubbling.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	mgr := rampart.NewManager(800, 600)
//	// ... add controls ...
//	if err := rampart.Run(mgr, rampart.Config{Title: "My Game"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Manager.Update], [Manager.Draw], and [Manager.NotifyClientSize] directly.
//
// # Control tree
//
// Every UI element is a [Control]; most embed [ControlBase], which supplies
// geometry, visibility and input flags, parent/child links, and per-kind
// input hooks. Top-level controls are registered on the [Manager] with
// [Manager.Add]; registration order is paint order, so later controls draw
// on top and win hit testing.
//
//	panel := rampart.NewControl("sidebar")
//	panel.SetRect(rampart.Rect{X: 8, Y: 8, Width: 200, Height: 584})
//	mgr.Add(panel)
//
// # Input routing
//
// Each frame the manager picks a single active control by hit testing the
// registered controls topmost-first, then bubbles press/release/scroll
// events up the parent chain. A control that declares a kind in its
// Consumes mask short-circuits the walk; a control with Passthrough set is
// skipped and cedes hit testing to whatever lies beneath it. Hit testing
// covers the registered top-level controls; containers route clicks to
// their children by calling [Manager.DelegateActive] (or [Manager.SetActive]
// directly) from their update hook. See [InputEvent].
//
// # Scaling
//
// The manager renders all controls into a back buffer at the logical
// resolution and the [Scaler] blits that buffer into the window, letterboxed
// and optionally restricted to integer ratios. Integer ratios above 1.5 use
// a 2x supersampled intermediate to avoid shimmering.
//
// # Editor overlay
//
// A built-in layout editor (toggled with the configured key, F12 by default)
// lets you drag and resize controls at runtime, copy a layout descriptor to
// the clipboard, and persist the result as TOML via [Manager.SaveLayout].
//
// [Ebitengine]: https://ebitengine.org
package rampart
