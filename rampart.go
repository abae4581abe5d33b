package rampart

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside. A rectangle with zero or
// negative area contains nothing; such controls never receive pointer hits.
func (r Rect) Contains(x, y float64) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// MouseButton identifies a logical mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	MouseButtonNone                      // no button
)

// InputKind identifies a kind of routed input event. Each frame the router
// runs one bubbling pass per kind that fired, with a fresh Handled flag.
type InputKind uint8

const (
	InputLeftDown    InputKind = iota // left button pressed this frame
	InputLeftClick                    // left button released while latched on the target
	InputRightDown                    // right button pressed this frame
	InputRightClick                   // right button released while latched on the target
	InputMiddleDown                   // middle button pressed this frame
	InputMiddleClick                  // middle button released while latched on the target
	InputScrollV                      // nonzero vertical wheel delta
	InputScrollH                      // nonzero horizontal wheel delta

	inputKindCount
)

// InputMask is a bitmask of InputKind values used by ControlBase.Consumes to
// declare which event kinds a control owns. An owned kind marks the shared
// event record handled, which stops the bubbling walk after the control's
// hook runs.
type InputMask uint16

// Mask returns the bitmask bit for this kind.
func (k InputKind) Mask() InputMask { return 1 << k }

// Convenience masks for common Consumes declarations.
const (
	ConsumeLeft   = InputMask(1<<InputLeftDown | 1<<InputLeftClick)
	ConsumeRight  = InputMask(1<<InputRightDown | 1<<InputRightClick)
	ConsumeMiddle = InputMask(1<<InputMiddleDown | 1<<InputMiddleClick)
	ConsumeScroll = InputMask(1<<InputScrollV | 1<<InputScrollH)
	ConsumeAll    = ConsumeLeft | ConsumeRight | ConsumeMiddle | ConsumeScroll
)

// InputEvent is the shared event record passed to input hooks during a
// bubbling pass. One record is reused per kind per frame; hooks may set
// Handled to stop the walk before it reaches further ancestors.
type InputEvent struct {
	Kind InputKind

	// Cursor location in back-buffer coordinates.
	X, Y float64

	// Wheel deltas for this frame. Only meaningful for scroll kinds.
	ScrollX, ScrollY float64

	// Target is the control the bubbling walk started at (the active
	// control, or the exclusive-capture holder).
	Target Control

	// Handled stops the walk once set. The router sets it automatically
	// when a control's Consumes mask declares the kind.
	Handled bool
}

// RoutedEvent is the immutable copy of a completed bubbling pass delivered
// to an EventSink. The sink sees every pass, handled or not.
type RoutedEvent struct {
	Kind             InputKind
	TargetName       string
	X, Y             float64
	ScrollX, ScrollY float64
	Handled          bool
}

// EventSink receives a RoutedEvent after every bubbling pass. Set one on the
// Manager to observe routed input from outside the control tree, e.g. the
// Donburi adapter in rampart/ecs.
type EventSink interface {
	HandleEvent(RoutedEvent)
}
