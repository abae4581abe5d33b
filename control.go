package rampart

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Control is the capability interface every UI element implements. Custom
// controls embed ControlBase (which satisfies all three methods) and
// override Update and/or Draw as needed. The router and the draw pass only
// ever depend on this interface, never on concrete types.
type Control interface {
	// UI returns the embedded base carrying geometry, flags, hierarchy,
	// and input hooks.
	UI() *ControlBase

	// Update runs the control's per-frame logic. Called once per frame in
	// descending z-order, after the control has been considered for
	// active-control candidacy.
	Update(m *Manager)

	// Draw renders the control onto the logical back buffer at its window
	// rectangle. Children are drawn by the manager after their parent.
	Draw(dst *ebiten.Image)
}

// ControlBase is the fundamental control node. A single flat struct carries
// geometry, flags, and nil-able input hooks for all control types to avoid
// interface dispatch on the hot path.
type ControlBase struct {
	name string

	// Local geometry, relative to the parent's window rectangle.
	X, Y, Width, Height float64

	// Scale multiplies the geometry of all descendants (and their sizes).
	// It does not affect this control's own window rectangle.
	Scale float64

	// Alpha multiplies the background fill opacity.
	Alpha float64

	Visible      bool
	Enabled      bool
	InputEnabled bool

	// Passthrough controls never keep the active slot: once their own
	// update has run, hit testing falls through to whatever lies beneath
	// them, and bubbling walks skip them entirely.
	Passthrough bool

	// ExclusiveInput makes this control monopolize event routing while it
	// is the selected control and a button from the original press is
	// held.
	ExclusiveInput bool

	// Detached removes the control from normal z-ordering; it is updated
	// and drawn out of band, after (and above) all attached controls.
	Detached bool

	// UpdateOrder breaks z-order ties across attached top-level controls.
	// Lower values draw first (further back).
	UpdateOrder int

	// Consumes declares the input kinds this control owns. An owned kind
	// marks the shared event record handled during bubbling, stopping the
	// walk after this control's hook runs.
	Consumes InputMask

	// BackgroundColor and BorderColor are drawn by the default Draw when
	// their alpha is nonzero.
	BackgroundColor Color
	BorderColor     Color

	parent   Control
	children []Control

	// Input hooks. All are optional; zero cost when nil.
	OnInit        func(m *Manager)
	OnUpdate      func(m *Manager)
	OnDraw        func(dst *ebiten.Image)
	OnLeftDown    func(ev *InputEvent)
	OnLeftClick   func(ev *InputEvent)
	OnRightDown   func(ev *InputEvent)
	OnRightClick  func(ev *InputEvent)
	OnMiddleDown  func(ev *InputEvent)
	OnMiddleClick func(ev *InputEvent)
	OnScroll      func(ev *InputEvent)
	OnScrollH     func(ev *InputEvent)

	initialized bool
}

// NewControl creates a plain control with the given name. The zero geometry
// has no area, so it receives no pointer hits until sized.
func NewControl(name string) *ControlBase {
	b := &ControlBase{}
	b.init(name)
	return b
}

// init sets the default field values shared by all control constructors.
// Embedding types call it from their own constructors.
func (b *ControlBase) init(name string) {
	b.name = name
	b.Scale = 1
	b.Alpha = 1
	b.Visible = true
	b.Enabled = true
	b.InputEnabled = true
}

// UI implements Control.
func (b *ControlBase) UI() *ControlBase { return b }

// Name returns the control's registration name.
func (b *ControlBase) Name() string { return b.name }

// Update implements Control; the base behavior is the OnUpdate hook.
func (b *ControlBase) Update(m *Manager) {
	if b.OnUpdate != nil {
		b.OnUpdate(m)
	}
}

// Draw implements Control; the base behavior fills the background, strokes
// the border, and runs the OnDraw hook.
func (b *ControlBase) Draw(dst *ebiten.Image) {
	r := b.WindowRect()
	if b.BackgroundColor.A > 0 {
		c := b.BackgroundColor
		c.A *= b.Alpha
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y),
			float32(r.Width), float32(r.Height), c.toRGBA(), false)
	}
	if b.BorderColor.A > 0 {
		vector.StrokeRect(dst, float32(r.X), float32(r.Y),
			float32(r.Width), float32(r.Height), 1, b.BorderColor.toRGBA(), false)
	}
	if b.OnDraw != nil {
		b.OnDraw(dst)
	}
}

// Rect returns the local rectangle relative to the parent.
func (b *ControlBase) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// SetRect sets the local rectangle relative to the parent.
func (b *ControlBase) SetRect(r Rect) {
	b.X, b.Y, b.Width, b.Height = r.X, r.Y, r.Width, r.Height
}

// WindowRect returns the absolute rectangle in back-buffer coordinates:
// the parent's window origin plus the local rectangle, scaled by the
// cumulative scale factor of all ancestors.
func (b *ControlBase) WindowRect() Rect {
	if b.parent == nil {
		return b.Rect()
	}
	pb := b.parent.UI()
	pr := pb.WindowRect()
	s := pb.cumulativeScale()
	return Rect{
		X:      pr.X + b.X*s,
		Y:      pr.Y + b.Y*s,
		Width:  b.Width * s,
		Height: b.Height * s,
	}
}

// cumulativeScale is the product of this control's Scale and all ancestors'.
func (b *ControlBase) cumulativeScale() float64 {
	if b.parent == nil {
		return b.Scale
	}
	return b.parent.UI().cumulativeScale() * b.Scale
}

// --- Hierarchy ---

// Parent returns the parent control, or nil for a top-level control.
func (b *ControlBase) Parent() Control { return b.parent }

// Children returns the child list in insertion order (paint order, later on
// top). The returned slice MUST NOT be mutated by the caller.
func (b *ControlBase) Children() []Control { return b.children }

// AddChild appends child to this control's children. If child already has a
// parent it is removed from that parent first. Panics if child is nil or an
// ancestor of this control (cycle).
func (b *ControlBase) AddChild(child Control) {
	if child == nil {
		panic("rampart: cannot add nil child")
	}
	cb := child.UI()
	if isAncestor(child, b) {
		panic("rampart: adding child would create a cycle")
	}
	if cb.parent != nil {
		cb.parent.UI().removeChild(child)
	}
	cb.parent = holderOf(b)
	b.children = append(b.children, child)
}

// RemoveChild detaches child from this control.
// Panics if child's parent is not this control.
func (b *ControlBase) RemoveChild(child Control) {
	cb := child.UI()
	if cb.parent == nil || cb.parent.UI() != b {
		panic("rampart: child's parent is not this control")
	}
	b.removeChild(child)
	cb.parent = nil
}

func (b *ControlBase) removeChild(child Control) {
	for i, c := range b.children {
		if c.UI() == child.UI() {
			copy(b.children[i:], b.children[i+1:])
			b.children[len(b.children)-1] = nil
			b.children = b.children[:len(b.children)-1]
			return
		}
	}
}

// holderOf returns the Control whose UI() is b. When a ControlBase is
// embedded, AddChild is called on the embedded base, so the base itself is
// the only handle we have; descendants still resolve geometry correctly
// because WindowRect only ever goes through UI().
func holderOf(b *ControlBase) Control { return b }

// isAncestor reports whether candidate is base or one of base's ancestors.
func isAncestor(candidate Control, base *ControlBase) bool {
	for p := Control(base); p != nil; p = p.UI().parent {
		if p.UI() == candidate.UI() {
			return true
		}
	}
	return false
}

// inputChainEnabled reports whether c and every ancestor up to the root are
// both enabled and input-enabled.
func inputChainEnabled(c Control) bool {
	for p := c; p != nil; p = p.UI().parent {
		b := p.UI()
		if !b.Enabled || !b.InputEnabled {
			return false
		}
	}
	return true
}

// withinSubtree reports whether c equals root or is one of its descendants.
func withinSubtree(root, c Control) bool {
	for p := c; p != nil; p = p.UI().parent {
		if p.UI() == root.UI() {
			return true
		}
	}
	return false
}

// hook returns the callback registered for the given input kind, or nil.
func (b *ControlBase) hook(kind InputKind) func(*InputEvent) {
	switch kind {
	case InputLeftDown:
		return b.OnLeftDown
	case InputLeftClick:
		return b.OnLeftClick
	case InputRightDown:
		return b.OnRightDown
	case InputRightClick:
		return b.OnRightClick
	case InputMiddleDown:
		return b.OnMiddleDown
	case InputMiddleClick:
		return b.OnMiddleClick
	case InputScrollV:
		return b.OnScroll
	case InputScrollH:
		return b.OnScrollH
	default:
		return nil
	}
}
