package rampart

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeBackend feeds scripted snapshots to the manager. Once the script runs
// out it keeps returning an idle focused frame.
type fakeBackend struct {
	frames []InputSnapshot
	i      int
}

func (f *fakeBackend) Snapshot() InputSnapshot {
	if f.i < len(f.frames) {
		s := f.frames[f.i]
		f.i++
		return s
	}
	return InputSnapshot{Focused: true}
}

func (f *fakeBackend) push(s InputSnapshot) {
	s.Focused = true
	f.frames = append(f.frames, s)
}

type fakePlatform struct {
	clipboard string
	clipErr   error
}

func (p *fakePlatform) ClientSize() (int, int)        { return 640, 480 }
func (p *fakePlatform) SetFullscreen(bool)            {}
func (p *fakePlatform) WriteClipboard(s string) error { p.clipboard = s; return p.clipErr }

// newTestManager returns a manager wired to fakes, with the editor hidden so
// overlay hit testing cannot interfere with router tests.
func newTestManager() (*Manager, *fakeBackend) {
	m := NewManager(640, 480)
	b := &fakeBackend{}
	m.SetBackend(b)
	m.SetPlatform(&fakePlatform{})
	m.editor.mode = EditorHidden
	m.editor.overlayVisible = false
	return m, b
}

func namedRect(name string, x, y, w, h float64) *ControlBase {
	c := NewControl(name)
	c.SetRect(Rect{X: x, Y: y, Width: w, Height: h})
	return c
}

func TestTopmostWinsHitTesting(t *testing.T) {
	m, b := newTestManager()
	a := namedRect("a", 0, 0, 100, 100)
	bb := namedRect("b", 50, 50, 100, 100)
	m.Add(a)
	m.Add(bb)

	// Inside both rectangles. B registered later, so B wins.
	b.push(InputSnapshot{CursorX: 75, CursorY: 75})
	m.Update()

	if m.Active() == nil || m.Active().UI() != bb.UI() {
		t.Fatalf("active = %v, want b", controlName(m.Active()))
	}
}

func TestZeroAreaNeverHit(t *testing.T) {
	m, b := newTestManager()
	c := namedRect("flat", 10, 10, 0, 100)
	m.Add(c)

	b.push(InputSnapshot{CursorX: 10, CursorY: 50})
	m.Update()

	if m.Active() != nil {
		t.Fatalf("active = %v, want none", controlName(m.Active()))
	}
}

func TestDisabledControlSkipped(t *testing.T) {
	m, b := newTestManager()
	under := namedRect("under", 0, 0, 100, 100)
	over := namedRect("over", 0, 0, 100, 100)
	over.Enabled = false
	m.Add(under)
	m.Add(over)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50})
	m.Update()

	if m.Active() == nil || m.Active().UI() != under.UI() {
		t.Fatalf("active = %v, want under", controlName(m.Active()))
	}
}

func TestUnfocusedWindowRoutesNothing(t *testing.T) {
	m, b := newTestManager()
	c := namedRect("c", 0, 0, 100, 100)
	m.Add(c)

	b.frames = append(b.frames, InputSnapshot{CursorX: 50, CursorY: 50}) // Focused false
	m.Update()

	if m.Active() != nil {
		t.Fatalf("active = %v, want none while unfocused", controlName(m.Active()))
	}
}

func TestPassthroughCedesActivity(t *testing.T) {
	m, b := newTestManager()
	under := namedRect("under", 0, 0, 100, 100)
	var underDowns int
	under.OnLeftDown = func(ev *InputEvent) { underDowns++ }

	over := namedRect("over", 0, 0, 100, 100)
	over.Passthrough = true
	var overDowns int
	over.OnLeftDown = func(ev *InputEvent) { overDowns++ }

	m.Add(under)
	m.Add(over)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	m.Update()

	if m.Active() == nil || m.Active().UI() != under.UI() {
		t.Fatalf("active = %v, want under", controlName(m.Active()))
	}
	if underDowns != 1 || overDowns != 0 {
		t.Errorf("downs: under=%d over=%d, want 1/0", underDowns, overDowns)
	}
}

func TestClickSynthesis(t *testing.T) {
	m, b := newTestManager()
	c := namedRect("c", 0, 0, 100, 100)
	var downs, clicks int
	c.OnLeftDown = func(ev *InputEvent) { downs++ }
	c.OnLeftClick = func(ev *InputEvent) { clicks++ }
	m.Add(c)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	b.push(InputSnapshot{CursorX: 50, CursorY: 50})
	m.Update()
	m.Update()
	if downs != 1 {
		t.Fatalf("downs after hold = %d, want 1 (edge-triggered)", downs)
	}
	if clicks != 0 {
		t.Fatalf("clicks before release = %d, want 0", clicks)
	}
	m.Update()
	if clicks != 1 {
		t.Fatalf("clicks after release = %d, want 1", clicks)
	}
}

func TestLatchAbandonedOnTargetSwitch(t *testing.T) {
	m, b := newTestManager()
	a := namedRect("a", 0, 0, 50, 50)
	bb := namedRect("b", 100, 0, 50, 50)
	var aClicks, bClicks int
	a.OnLeftClick = func(ev *InputEvent) { aClicks++ }
	bb.OnLeftClick = func(ev *InputEvent) { bClicks++ }
	m.Add(a)
	m.Add(bb)

	// Press on a, drag to b, release over b.
	b.push(InputSnapshot{CursorX: 25, CursorY: 25, LeftDown: true})
	b.push(InputSnapshot{CursorX: 125, CursorY: 25, LeftDown: true})
	b.push(InputSnapshot{CursorX: 125, CursorY: 25})
	m.Update()
	m.Update()
	m.Update()

	if aClicks != 0 || bClicks != 0 {
		t.Errorf("clicks: a=%d b=%d, want none after mid-drag target switch", aClicks, bClicks)
	}
}

func TestExclusiveCaptureMonopolizesRouting(t *testing.T) {
	m, b := newTestManager()
	a := namedRect("a", 0, 0, 50, 50)
	a.ExclusiveInput = true
	var aDowns, aClicks int
	a.OnLeftDown = func(ev *InputEvent) { aDowns++ }
	a.OnLeftClick = func(ev *InputEvent) { aClicks++ }

	bb := namedRect("b", 100, 0, 50, 50)
	var bDowns int
	bb.OnLeftDown = func(ev *InputEvent) { bDowns++ }

	m.Add(a)
	m.Add(bb)
	m.Select(a)

	// Press on a, drag off it over b while held, then release over b.
	b.push(InputSnapshot{CursorX: 25, CursorY: 25, LeftDown: true})
	b.push(InputSnapshot{CursorX: 125, CursorY: 25, LeftDown: true})
	b.push(InputSnapshot{CursorX: 125, CursorY: 25})
	m.Update()
	m.Update()
	if bDowns != 0 {
		t.Fatalf("b received %d downs while a held exclusive capture", bDowns)
	}
	m.Update()

	if aDowns != 1 || aClicks != 1 {
		t.Errorf("a: downs=%d clicks=%d, want 1/1 (drag completes on holder)", aDowns, aClicks)
	}
	if m.Selected() != nil {
		t.Errorf("selection not released after all buttons up")
	}

	// Normal hit testing restored.
	b.push(InputSnapshot{CursorX: 125, CursorY: 25, LeftDown: true})
	m.Update()
	if bDowns != 1 {
		t.Errorf("b downs after release = %d, want 1", bDowns)
	}
}

func TestExclusiveCaptureSuppressesForeignPress(t *testing.T) {
	m, b := newTestManager()
	a := namedRect("a", 0, 0, 50, 50)
	a.ExclusiveInput = true
	bb := namedRect("b", 100, 0, 50, 50)
	var bDowns, bClicks int
	bb.OnLeftDown = func(ev *InputEvent) { bDowns++ }
	bb.OnLeftClick = func(ev *InputEvent) { bClicks++ }
	m.Add(a)
	m.Add(bb)

	// Hold right on a to keep capture alive, then left-press over b.
	m.Select(a)
	b.push(InputSnapshot{CursorX: 25, CursorY: 25, RightDown: true})
	b.push(InputSnapshot{CursorX: 125, CursorY: 25, RightDown: true, LeftDown: true})
	b.push(InputSnapshot{CursorX: 125, CursorY: 25})
	m.Update()
	m.Update()
	m.Update()

	if bDowns != 0 || bClicks != 0 {
		t.Errorf("b: downs=%d clicks=%d, want 0/0 under exclusive capture", bDowns, bClicks)
	}
}

func TestBubblingShortCircuit(t *testing.T) {
	m, b := newTestManager()

	root := namedRect("root", 0, 0, 200, 200)
	mid := namedRect("mid", 0, 0, 200, 200)
	leaf := namedRect("leaf", 0, 0, 200, 200)
	root.AddChild(mid)
	mid.AddChild(leaf)

	var order []string
	leaf.OnLeftClick = func(ev *InputEvent) { order = append(order, "leaf") }
	mid.OnLeftClick = func(ev *InputEvent) { order = append(order, "mid") }
	root.OnLeftClick = func(ev *InputEvent) { order = append(order, "root") }
	mid.Consumes = ConsumeLeft

	// The container delegates activity to its nested leaf during update.
	root.OnUpdate = func(m *Manager) { m.SetActive(leaf) }
	m.Add(root)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	b.push(InputSnapshot{CursorX: 50, CursorY: 50})
	m.Update()
	m.Update()

	if len(order) != 2 || order[0] != "leaf" || order[1] != "mid" {
		t.Fatalf("click order = %v, want [leaf mid]", order)
	}
}

func TestBubblingSkipsPassthroughAncestor(t *testing.T) {
	m, b := newTestManager()

	root := namedRect("root", 0, 0, 200, 200)
	mid := namedRect("mid", 0, 0, 200, 200)
	mid.Passthrough = true
	leaf := namedRect("leaf", 0, 0, 200, 200)
	root.AddChild(mid)
	mid.AddChild(leaf)

	var order []string
	leaf.OnLeftDown = func(ev *InputEvent) { order = append(order, "leaf") }
	mid.OnLeftDown = func(ev *InputEvent) { order = append(order, "mid") }
	root.OnLeftDown = func(ev *InputEvent) { order = append(order, "root") }

	root.OnUpdate = func(m *Manager) { m.SetActive(leaf) }
	m.Add(root)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	m.Update()

	if len(order) != 2 || order[0] != "leaf" || order[1] != "root" {
		t.Fatalf("down order = %v, want [leaf root]", order)
	}
}

func TestDelegateActiveRoutesChildClicks(t *testing.T) {
	m, b := newTestManager()

	panel := namedRect("panel", 0, 0, 200, 100)
	var panelClicks int
	panel.OnLeftClick = func(ev *InputEvent) { panelClicks++ }
	panel.OnUpdate = func(m *Manager) { m.DelegateActive(panel) }

	ok := namedRect("ok", 20, 20, 60, 30)
	ok.Consumes = ConsumeLeft
	var okClicks int
	ok.OnLeftClick = func(ev *InputEvent) { okClicks++ }
	panel.AddChild(ok)

	ghost := namedRect("ghost", 120, 20, 60, 30)
	ghost.Passthrough = true
	var ghostClicks int
	ghost.OnLeftClick = func(ev *InputEvent) { ghostClicks++ }
	panel.AddChild(ghost)

	m.Add(panel)

	click := func(x, y float64) {
		b.push(InputSnapshot{CursorX: x, CursorY: y, LeftDown: true})
		b.push(InputSnapshot{CursorX: x, CursorY: y})
		m.Update()
		m.Update()
	}

	// A click over the child lands on the child; it consumes left input,
	// so the panel never sees it.
	click(50, 35)
	if okClicks != 1 || panelClicks != 0 {
		t.Fatalf("ok=%d panel=%d after child click, want 1/0", okClicks, panelClicks)
	}

	// Delegation skips the passthrough child; the panel gets the click.
	click(150, 35)
	if ghostClicks != 0 || panelClicks != 1 {
		t.Fatalf("ghost=%d panel=%d after passthrough click, want 0/1", ghostClicks, panelClicks)
	}

	// Clicks on the bare panel still work.
	click(10, 90)
	if panelClicks != 2 {
		t.Fatalf("panel=%d after background click, want 2", panelClicks)
	}
}

func TestDelegateActiveDescendsToDeepestChild(t *testing.T) {
	m, b := newTestManager()

	panel := namedRect("panel", 0, 0, 200, 200)
	panel.OnUpdate = func(m *Manager) { m.DelegateActive(panel) }
	box := namedRect("box", 20, 20, 100, 100)
	box.Consumes = ConsumeLeft
	inner := namedRect("inner", 10, 10, 40, 40)
	panel.AddChild(box)
	box.AddChild(inner)

	var order []string
	inner.OnLeftDown = func(ev *InputEvent) { order = append(order, "inner") }
	box.OnLeftDown = func(ev *InputEvent) { order = append(order, "box") }
	panel.OnLeftDown = func(ev *InputEvent) { order = append(order, "panel") }

	m.Add(panel)

	// Inside the grandchild: it becomes the target and the event bubbles
	// up to the consuming box, never reaching the panel.
	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	m.Update()

	if len(order) != 2 || order[0] != "inner" || order[1] != "box" {
		t.Fatalf("down order = %v, want [inner box]", order)
	}
}

func TestPassthroughVacateAppliesToDelegatedControl(t *testing.T) {
	m, b := newTestManager()

	under := namedRect("under", 0, 0, 100, 100)
	var underDowns int
	under.OnLeftDown = func(ev *InputEvent) { underDowns++ }

	container := namedRect("container", 0, 0, 100, 100)
	ghost := namedRect("ghost", 0, 0, 100, 100)
	ghost.Passthrough = true
	container.AddChild(ghost)
	container.OnUpdate = func(m *Manager) { m.SetActive(ghost) }

	m.Add(under)
	m.Add(container)

	// The container hands activity to its passthrough child; the vacate
	// check reads the delegate's flag, so the slot falls through to the
	// control beneath the container.
	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	m.Update()

	if m.Active() == nil || m.Active().UI() != under.UI() {
		t.Fatalf("active = %v, want under", controlName(m.Active()))
	}
	if underDowns != 1 {
		t.Fatalf("under downs = %d, want 1", underDowns)
	}
}

func TestHookCanMarkHandled(t *testing.T) {
	m, b := newTestManager()

	parent := namedRect("parent", 0, 0, 200, 200)
	child := namedRect("child", 0, 0, 200, 200)
	parent.AddChild(child)

	var parentDowns int
	child.OnLeftDown = func(ev *InputEvent) { ev.Handled = true }
	parent.OnLeftDown = func(ev *InputEvent) { parentDowns++ }
	parent.OnUpdate = func(m *Manager) { m.SetActive(child) }
	m.Add(parent)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	m.Update()

	if parentDowns != 0 {
		t.Errorf("parent downs = %d, want 0 after child marked handled", parentDowns)
	}
}

func TestScrollDeliveredEveryNonzeroFrame(t *testing.T) {
	m, b := newTestManager()
	c := namedRect("c", 0, 0, 100, 100)
	var scrolls int
	var lastY float64
	c.OnScroll = func(ev *InputEvent) { scrolls++; lastY = ev.ScrollY }
	m.Add(c)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50, WheelY: -3})
	b.push(InputSnapshot{CursorX: 50, CursorY: 50, WheelY: -1})
	b.push(InputSnapshot{CursorX: 50, CursorY: 50})
	m.Update()
	m.Update()
	m.Update()

	if scrolls != 2 {
		t.Fatalf("scrolls = %d, want 2 (level-triggered)", scrolls)
	}
	if lastY != -1 {
		t.Errorf("last ScrollY = %v, want -1", lastY)
	}
}

type recordingSink struct {
	events []RoutedEvent
}

func (s *recordingSink) HandleEvent(e RoutedEvent) { s.events = append(s.events, e) }

func TestEventSinkObservesRoutedEvents(t *testing.T) {
	m, b := newTestManager()
	sink := &recordingSink{}
	m.SetEventSink(sink)

	c := namedRect("c", 0, 0, 100, 100)
	c.Consumes = ConsumeLeft
	m.Add(c)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50, LeftDown: true})
	b.push(InputSnapshot{CursorX: 50, CursorY: 50})
	m.Update()
	m.Update()

	if len(sink.events) != 2 {
		t.Fatalf("sink saw %d events, want 2", len(sink.events))
	}
	if sink.events[0].Kind != InputLeftDown || sink.events[1].Kind != InputLeftClick {
		t.Errorf("kinds = %v, %v", sink.events[0].Kind, sink.events[1].Kind)
	}
	if sink.events[0].TargetName != "c" || !sink.events[0].Handled {
		t.Errorf("event 0: %+v", sink.events[0])
	}
}

func TestDetachedControlUpdatesButNeverHits(t *testing.T) {
	m, b := newTestManager()
	det := namedRect("det", 0, 0, 100, 100)
	det.Detached = true
	var updates int
	det.OnUpdate = func(m *Manager) { updates++ }
	m.Add(det)

	b.push(InputSnapshot{CursorX: 50, CursorY: 50})
	m.Update()

	if updates != 1 {
		t.Errorf("detached updates = %d, want 1", updates)
	}
	if m.Active() != nil {
		t.Errorf("active = %v, want none for detached", controlName(m.Active()))
	}
}

func TestKeyStateFromSnapshot(t *testing.T) {
	m, b := newTestManager()
	b.push(InputSnapshot{
		HeldKeys:        []ebiten.Key{ebiten.KeyArrowDown},
		JustPressedKeys: []ebiten.Key{ebiten.KeyArrowDown},
	})
	b.push(InputSnapshot{
		HeldKeys: []ebiten.Key{ebiten.KeyArrowDown},
	})
	m.Update()
	if !m.KeyDown(ebiten.KeyArrowDown) || !m.KeyJustPressed(ebiten.KeyArrowDown) {
		t.Fatalf("frame 1: want held and just-pressed")
	}
	m.Update()
	if !m.KeyDown(ebiten.KeyArrowDown) || m.KeyJustPressed(ebiten.KeyArrowDown) {
		t.Fatalf("frame 2: want held only")
	}
}
