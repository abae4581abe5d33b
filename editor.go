package rampart

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EditorMode is the state of the interactive layout editor.
type EditorMode uint8

const (
	// EditorViewing shows the overlay panel but leaves controls untouched.
	EditorViewing EditorMode = iota
	// EditorEditing allows dragging and resizing controls with the pointer.
	EditorEditing
	// EditorHidden disables the overlay entirely.
	EditorHidden
)

// resizeDir identifies which edge or corner a resize drag started from.
type resizeDir uint8

const (
	resizeNone resizeDir = 0
	resizeN    resizeDir = 1 << 0
	resizeS    resizeDir = 1 << 1
	resizeW    resizeDir = 1 << 2
	resizeE    resizeDir = 1 << 3
)

type editDragState uint8

const (
	editIdle editDragState = iota
	editDragging
	editResizing
)

// editEdgeThreshold is the pixel distance from an edge within which a press
// starts a resize instead of a move.
const editEdgeThreshold = 6

// editMinDim is the smallest width or height a resize can produce.
const editMinDim = 10

// editor is the manager's built-in layout editor overlay. Toggled by
// Manager.EditorKey, it cycles Viewing, Editing, Hidden. While Editing the
// pointer drags and resizes the control under the cursor; the drag sub-state
// is latched at press time and persists until the primary button is
// released, regardless of where the cursor travels. The overlay panel itself
// can always be dragged, and a secondary click on it while Editing copies
// the hovered target's layout descriptor to the clipboard.
type editor struct {
	mode           EditorMode
	overlayVisible bool

	drag   editDragState
	dir    resizeDir
	target Control

	// Rectangle and cursor position captured at drag start. All mutation is
	// recomputed from these originals each frame, so reversing the cursor
	// restores the starting rectangle bit for bit.
	startRect      Rect
	startX, startY float64

	panelRect     Rect
	panelDragging bool
	panelOffX     float64
	panelOffY     float64
}

func (e *editor) init() {
	e.overlayVisible = true
	e.panelRect = Rect{X: 8, Y: 8, Width: 200, Height: 64}
}

// toggle advances the editor state machine one step.
func (e *editor) toggle() {
	switch e.mode {
	case EditorViewing:
		if e.overlayVisible {
			e.mode = EditorEditing
		} else {
			e.overlayVisible = true
		}
	case EditorEditing:
		e.mode = EditorHidden
		e.overlayVisible = false
	case EditorHidden:
		e.mode = EditorViewing
		e.overlayVisible = true
	}
}

func (e *editor) update(m *Manager) {
	if e.mode == EditorHidden {
		return
	}

	cur := &m.cursor

	// The panel drag is available in every visible state and wins over
	// control dragging when the press lands on the panel.
	if e.panelDragging {
		e.panelRect.X = cur.X - e.panelOffX
		e.panelRect.Y = cur.Y - e.panelOffY
		if !cur.Left.Down {
			e.panelDragging = false
		}
		return
	}
	overPanel := e.panelRect.Contains(cur.X, cur.Y)
	if cur.Left.Pressed && overPanel {
		e.panelDragging = true
		e.panelOffX = cur.X - e.panelRect.X
		e.panelOffY = cur.Y - e.panelRect.Y
		return
	}

	if e.mode != EditorEditing {
		return
	}

	if cur.Right.Pressed && overPanel {
		e.copyDescriptor(m)
		return
	}

	switch e.drag {
	case editIdle:
		if cur.Left.Pressed {
			e.beginDrag(m, cur.X, cur.Y)
		}
	case editDragging, editResizing:
		e.continueDrag(m, cur.X, cur.Y)
		if !cur.Left.Down {
			e.drag = editIdle
			e.dir = resizeNone
		}
	}
}

// beginDrag latches the drag sub-state from the press position: near an edge
// or corner of the hit control it starts a resize in that direction,
// otherwise a move. The decision is made once, at press time only.
func (e *editor) beginDrag(m *Manager, x, y float64) {
	c := hitTest(m, x, y)
	if c == nil {
		return
	}
	e.target = c
	e.startRect = c.UI().Rect()
	e.startX, e.startY = x, y

	r := c.UI().WindowRect()
	e.dir = resizeNone
	if x-r.X < editEdgeThreshold {
		e.dir |= resizeW
	} else if r.Right()-x < editEdgeThreshold {
		e.dir |= resizeE
	}
	if y-r.Y < editEdgeThreshold {
		e.dir |= resizeN
	} else if r.Bottom()-y < editEdgeThreshold {
		e.dir |= resizeS
	}

	if e.dir == resizeNone {
		e.drag = editDragging
	} else {
		e.drag = editResizing
	}
}

func (e *editor) continueDrag(m *Manager, x, y float64) {
	c := e.target
	if c == nil {
		return
	}
	b := c.UI()

	// Cursor deltas are in back-buffer pixels; the control's rectangle is in
	// local units scaled by the ancestor chain.
	s := 1.0
	if b.parent != nil {
		s = b.parent.UI().cumulativeScale()
	}
	dx := (x - e.startX) / s
	dy := (y - e.startY) / s

	if e.drag == editDragging {
		b.X = e.startRect.X + dx
		b.Y = e.startRect.Y + dy
		return
	}

	if e.dir&resizeW != 0 {
		b.X = e.startRect.X + dx
		b.Width = maxFloat(editMinDim, e.startRect.Width-dx)
	}
	if e.dir&resizeE != 0 {
		b.Width = maxFloat(editMinDim, e.startRect.Width+dx)
	}
	if e.dir&resizeN != 0 {
		b.Y = e.startRect.Y + dy
		b.Height = maxFloat(editMinDim, e.startRect.Height-dy)
	}
	if e.dir&resizeS != 0 {
		b.Height = maxFloat(editMinDim, e.startRect.Height+dy)
	}
}

// copyDescriptor writes the hovered target's layout descriptor to the
// clipboard. Clipboard failures are cosmetic and swallowed.
func (e *editor) copyDescriptor(m *Manager) {
	if e.target == nil || m.platform == nil {
		return
	}
	_ = m.platform.WriteClipboard(layoutDescriptor(e.target, m))
}

// layoutDescriptor renders a human-readable summary of a control's layout:
// name, position, size, and the distances from its right and bottom edges to
// its parent's. Top-level controls measure against the logical resolution.
func layoutDescriptor(c Control, m *Manager) string {
	b := c.UI()
	var pw, ph float64
	if b.parent != nil {
		p := b.parent.UI()
		pw, ph = p.Width, p.Height
	} else {
		pw, ph = float64(m.scaler.LogicalW), float64(m.scaler.LogicalH)
	}
	return fmt.Sprintf("%s x=%.0f y=%.0f w=%.0f h=%.0f right=%.0f bottom=%.0f",
		b.Name(), b.X, b.Y, b.Width, b.Height,
		pw-(b.X+b.Width), ph-(b.Y+b.Height))
}

// hitTest returns the deepest visible control under the point, scanning
// top-level controls topmost first and descending into children. Detached
// controls scan first since they draw above everything.
func hitTest(m *Manager, x, y float64) Control {
	for i := len(m.ordered) - 1; i >= 0; i-- {
		c := m.ordered[i]
		if !c.UI().Visible {
			continue
		}
		if hit := hitTestControl(c, x, y); hit != nil {
			return hit
		}
	}
	return nil
}

func hitTestControl(c Control, x, y float64) Control {
	if !c.UI().WindowRect().Contains(x, y) {
		return nil
	}
	children := c.UI().Children()
	for i := len(children) - 1; i >= 0; i-- {
		if !children[i].UI().Visible {
			continue
		}
		if hit := hitTestControl(children[i], x, y); hit != nil {
			return hit
		}
	}
	return c
}

func (e *editor) draw(m *Manager, dst *ebiten.Image) {
	if !e.overlayVisible {
		return
	}

	// Outline the drag target while editing.
	if e.mode == EditorEditing && e.target != nil {
		r := e.target.UI().WindowRect()
		vector.StrokeRect(dst, float32(r.X), float32(r.Y),
			float32(r.Width), float32(r.Height), 1,
			Color{R: 1, G: 0.5, B: 0, A: 1}.toRGBA(), false)
	}

	p := e.panelRect
	vector.DrawFilledRect(dst, float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		Color{R: 0, G: 0, B: 0, A: 0.7}.toRGBA(), false)
	vector.StrokeRect(dst, float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height), 1,
		Color{R: 1, G: 1, B: 1, A: 0.5}.toRGBA(), false)

	text := "rampart editor: " + e.modeLabel()
	if e.target != nil {
		text += "\n" + layoutDescriptor(e.target, m)
	}
	ebitenutil.DebugPrintAt(dst, text, int(p.X)+4, int(p.Y)+4)
}

func (e *editor) modeLabel() string {
	switch e.mode {
	case EditorEditing:
		return "editing"
	case EditorHidden:
		return "hidden"
	default:
		return "viewing"
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
