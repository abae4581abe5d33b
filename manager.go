package rampart

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Manager owns the control tree, the cursor, the render scaler, and the
// per-frame update/draw dispatch. It assumes exclusive single-threaded
// access from the owning (render) thread; the only cross-thread entry point
// is Defer.
type Manager struct {
	scaler Scaler
	cursor Cursor

	backend  InputBackend
	platform Platform
	sink     EventSink

	controls []Control // registration order
	ordered  []Control // sorted by (detached, update order, registration)
	names    map[string]Control
	regIndex map[Control]int

	focused  bool
	active   Control
	selected Control

	// Click latches, maintained per dispatch target rather than per node.
	// Switching targets mid-drag abandons them.
	latchTarget Control
	leftOn      bool
	rightOn     bool
	middleOn    bool

	ev InputEvent // shared record reused across bubbling passes

	heldKeys        []ebiten.Key
	justPressedKeys []ebiten.Key

	// Deferred callback queue. Producers on any goroutine append under the
	// lock; the frame drains by swapping the slice and invoking without
	// the lock, so enqueues during invocation land in the next frame.
	mu       sync.Mutex
	deferred []func()
	spare    []func()

	editor editor
	toasts []toast

	injectQueue []injectedFrame
	testRunner  *TestRunner

	screenshotQueue []string

	// ClearColor fills the back buffer at the start of every draw.
	ClearColor Color

	// ScreenshotDir is where queued screenshots are written as PNGs.
	ScreenshotDir string

	// EditorKey toggles the editor overlay state machine.
	EditorKey ebiten.Key

	debug bool
}

// NewManager creates a manager rendering at the given fixed logical
// resolution. The client size starts equal to the logical resolution until
// NotifyClientSize reports otherwise.
func NewManager(logicalW, logicalH int) *Manager {
	m := &Manager{
		backend:       NewEbitenBackend(),
		platform:      NewEbitenPlatform(),
		names:         make(map[string]Control),
		regIndex:      make(map[Control]int),
		ScreenshotDir: "screenshots",
		EditorKey:     ebiten.KeyF12,
	}
	m.scaler.Recompute(logicalW, logicalH, logicalW, logicalH, false)
	m.editor.init()
	return m
}

// SetBackend replaces the input backend. Pass a fake in tests.
func (m *Manager) SetBackend(b InputBackend) { m.backend = b }

// SetPlatform replaces the window/platform backend.
func (m *Manager) SetPlatform(p Platform) { m.platform = p }

// SetEventSink sets the optional routed-event observer.
func (m *Manager) SetEventSink(s EventSink) { m.sink = s }

// SetDebugMode enables per-frame timing logs on stderr.
func (m *Manager) SetDebugMode(enabled bool) { m.debug = enabled }

// EditorMode returns the layout editor's current state.
func (m *Manager) EditorMode() EditorMode { return m.editor.mode }

// ToggleEditor advances the layout editor state machine, exactly as pressing
// EditorKey does.
func (m *Manager) ToggleEditor() { m.editor.toggle() }

// Cursor returns the manager's pointer state for the current frame.
func (m *Manager) Cursor() *Cursor { return &m.cursor }

// Scaler returns the render scaler.
func (m *Manager) Scaler() *Scaler { return &m.scaler }

// HasFocus reports whether the window had input focus this frame.
func (m *Manager) HasFocus() bool { return m.focused }

// SetFullscreen toggles fullscreen through the platform backend.
func (m *Manager) SetFullscreen(enabled bool) { m.platform.SetFullscreen(enabled) }

// RefreshClientSize polls the platform for the current client size and
// recomputes the scaler if it changed. Hosts that drive the manager without
// Run can call this instead of NotifyClientSize.
func (m *Manager) RefreshClientSize() {
	w, h := m.platform.ClientSize()
	m.NotifyClientSize(w, h)
}

// --- Registration ---

// Add registers a top-level control. Registration order is paint order:
// later controls draw on top and win hit testing. Panics if c is nil or a
// control with the same name is already registered, since duplicate
// registration corrupts the z-order invariants.
func (m *Manager) Add(c Control) {
	if c == nil {
		panic("rampart: cannot add nil control")
	}
	name := c.UI().Name()
	if _, dup := m.names[name]; dup {
		panic(fmt.Sprintf("rampart: control %q already registered", name))
	}
	m.names[name] = c
	m.regIndex[c] = len(m.controls)
	m.controls = append(m.controls, c)
	if m.debug {
		debugCheckSubtree(c)
	}
	m.resort()
}

func debugCheckSubtree(c Control) {
	debugCheckChildCount(c.UI())
	for _, child := range c.UI().Children() {
		debugCheckTreeDepth(child)
		debugCheckSubtree(child)
	}
}

// Remove unregisters a top-level control. Children are not touched; their
// lifetime is the caller's responsibility. Panics if c was never registered.
func (m *Manager) Remove(c Control) {
	idx, ok := m.regIndex[c]
	if !ok {
		panic(fmt.Sprintf("rampart: control %q is not registered", c.UI().Name()))
	}
	copy(m.controls[idx:], m.controls[idx+1:])
	m.controls[len(m.controls)-1] = nil
	m.controls = m.controls[:len(m.controls)-1]
	delete(m.names, c.UI().Name())
	delete(m.regIndex, c)
	for i := idx; i < len(m.controls); i++ {
		m.regIndex[m.controls[i]] = i
	}
	if m.active != nil && withinSubtree(c, m.active) {
		m.active = nil
	}
	if m.selected != nil && withinSubtree(c, m.selected) {
		m.selected = nil
	}
	if m.latchTarget != nil && withinSubtree(c, m.latchTarget) {
		m.clearLatches(nil)
	}
	m.resort()
}

// Get returns the registered top-level control with the given name, or nil.
func (m *Manager) Get(name string) Control { return m.names[name] }

// Controls returns the registered top-level controls in registration order.
// The returned slice MUST NOT be mutated.
func (m *Manager) Controls() []Control { return m.controls }

// resort rebuilds the ordered pass list. Attached controls come first,
// sorted by UpdateOrder then registration order; detached controls follow.
// Recomputed only on structural change, never per frame.
func (m *Manager) resort() {
	m.ordered = append(m.ordered[:0], m.controls...)
	sort.SliceStable(m.ordered, func(i, j int) bool {
		a, b := m.ordered[i].UI(), m.ordered[j].UI()
		if a.Detached != b.Detached {
			return !a.Detached
		}
		if a.UpdateOrder != b.UpdateOrder {
			return a.UpdateOrder < b.UpdateOrder
		}
		return m.regIndex[m.ordered[i]] < m.regIndex[m.ordered[j]]
	})
}

// Reorder re-sorts the pass list after a control's Detached or UpdateOrder
// field changed. Structural mutations (Add/Remove) re-sort automatically.
func (m *Manager) Reorder() { m.resort() }

// --- Focus ---

// Select gives c persistent input focus. The selected control is routed
// events regardless of hit testing, and monopolizes routing entirely while
// it requires exclusive capture and a button is held. Pass nil to clear.
func (m *Manager) Select(c Control) { m.selected = c }

// Selected returns the control holding input focus, or nil.
func (m *Manager) Selected() Control { return m.selected }

// Active returns this frame's active control, or nil.
func (m *Manager) Active() Control { return m.active }

// --- Keyboard ---

// KeyDown reports whether the given key was held this frame.
func (m *Manager) KeyDown(k ebiten.Key) bool { return containsKey(m.heldKeys, k) }

// KeyJustPressed reports whether the given key transitioned to held this
// frame.
func (m *Manager) KeyJustPressed(k ebiten.Key) bool { return containsKey(m.justPressedKeys, k) }

func containsKey(keys []ebiten.Key, k ebiten.Key) bool {
	for _, h := range keys {
		if h == k {
			return true
		}
	}
	return false
}

// --- Deferred callbacks ---

// Defer enqueues fn to run on the owning thread at the start of the next
// frame. Safe to call from any goroutine. Callbacks enqueued while the
// current batch executes run next frame, never concurrently with it.
func (m *Manager) Defer(fn func()) {
	m.mu.Lock()
	m.deferred = append(m.deferred, fn)
	m.mu.Unlock()
}

func (m *Manager) drainDeferred() {
	m.mu.Lock()
	batch := m.deferred
	m.deferred = m.spare[:0]
	m.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	m.spare = batch[:0]
}

// --- Frame sequence ---

// Update runs one frame: drain deferred callbacks, poll input, resolve the
// active control and run every control's update, dispatch routed events,
// advance the editor overlay and notifications.
func (m *Manager) Update() {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	m.drainDeferred()

	if m.testRunner != nil {
		m.testRunner.step(m)
	}

	snap := m.nextSnapshot()
	m.focused = snap.Focused
	m.heldKeys = snap.HeldKeys
	m.justPressedKeys = snap.JustPressedKeys
	m.cursor.apply(snap, &m.scaler)

	if m.KeyJustPressed(m.EditorKey) {
		m.editor.toggle()
	}

	m.routeFrame()
	m.dispatchEvents()
	m.invalidateCapture()

	dt := 1.0 / float64(ebiten.TPS())
	m.editor.update(m)
	m.updateToasts(dt)

	if m.debug {
		m.logFrame("update", time.Since(t0))
	}
}

// nextSnapshot returns the next injected frame if one is queued, otherwise
// the live backend snapshot.
func (m *Manager) nextSnapshot() InputSnapshot {
	if len(m.injectQueue) > 0 {
		f := m.injectQueue[0]
		copy(m.injectQueue, m.injectQueue[1:])
		m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]
		return f.snapshot()
	}
	return m.backend.Snapshot()
}

// NotifyClientSize reports the current physical client size. The scaler is
// recomputed only when the size actually changed, never mid-frame; call
// this from ebiten.Game.Layout.
func (m *Manager) NotifyClientSize(w, h int) {
	if w == m.scaler.ClientW && h == m.scaler.ClientH {
		return
	}
	m.scaler.Recompute(m.scaler.LogicalW, m.scaler.LogicalH, w, h, m.scaler.IntegerOnly)
}

// SetResolution changes the logical back-buffer resolution.
func (m *Manager) SetResolution(w, h int) {
	if w == m.scaler.LogicalW && h == m.scaler.LogicalH {
		return
	}
	m.scaler.Recompute(w, h, m.scaler.ClientW, m.scaler.ClientH, m.scaler.IntegerOnly)
}

// SetIntegerScaling restricts the scale ratio to whole integers when the
// client area is at least as large as the logical resolution.
func (m *Manager) SetIntegerScaling(enabled bool) {
	if enabled == m.scaler.IntegerOnly {
		return
	}
	m.scaler.Recompute(m.scaler.LogicalW, m.scaler.LogicalH, m.scaler.ClientW, m.scaler.ClientH, enabled)
}

// --- Draw ---

// Draw renders every visible control into the logical back buffer and
// presents it, scaled and letterboxed, onto screen.
func (m *Manager) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	buf := m.scaler.Buffer()
	buf.Fill(m.ClearColor.toRGBA())

	// Attached controls first, then detached on top.
	for _, c := range m.ordered {
		if !c.UI().Detached {
			m.drawControl(c, buf)
		}
	}
	for _, c := range m.ordered {
		if c.UI().Detached {
			m.drawControl(c, buf)
		}
	}

	m.drawToasts(buf)
	m.editor.draw(m, buf)
	m.flushScreenshots(buf)

	m.scaler.Present(screen)

	if m.debug {
		m.logFrame("draw", time.Since(t0))
	}
}

func (m *Manager) drawControl(c Control, dst *ebiten.Image) {
	if !c.UI().Visible {
		return
	}
	c.Draw(dst)
	for _, child := range c.UI().Children() {
		m.drawControl(child, dst)
	}
}

// --- Per-control isolation ---

// safeUpdate runs one control's update under recover so a failing control
// cannot prevent its siblings from updating this frame.
func (m *Manager) safeUpdate(c Control) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[rampart] control %q update panicked: %v\n", c.UI().Name(), r)
		}
	}()
	m.initControl(c)
	c.Update(m)
}

// initControl runs the one-time init hook before a control's first update.
func (m *Manager) initControl(c Control) {
	b := c.UI()
	if b.initialized {
		return
	}
	b.initialized = true
	if b.OnInit != nil {
		b.OnInit(m)
	}
}
