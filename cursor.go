package rampart

// ButtonState tracks one logical mouse button for the current frame.
type ButtonState struct {
	// Down is the level state: true every frame the button is held.
	Down bool
	// Pressed is edge-triggered: true for exactly one frame per physical
	// press.
	Pressed bool
	// Released is edge-triggered: true for exactly one frame per physical
	// release.
	Released bool
}

// Cursor is the per-frame pointer state in back-buffer coordinates. The
// manager refreshes it from the InputBackend snapshot at the start of every
// frame; wheel deltas are frame-local and reset each frame.
type Cursor struct {
	// X, Y is the pointer location mapped into the logical back buffer.
	X, Y float64

	// WindowX, WindowY is the raw pointer location in window coordinates.
	WindowX, WindowY float64

	Left   ButtonState
	Right  ButtonState
	Middle ButtonState

	// WheelX, WheelY are this frame's scroll deltas.
	WheelX, WheelY float64
}

// apply folds a snapshot into the cursor, deriving press/release edges from
// level transitions so the one-frame edge invariant holds regardless of how
// the snapshot was produced (hardware or injection).
func (c *Cursor) apply(s InputSnapshot, sc *Scaler) {
	c.WindowX, c.WindowY = s.CursorX, s.CursorY
	c.X, c.Y = sc.ToBuffer(s.CursorX, s.CursorY)

	c.Left.step(s.LeftDown)
	c.Right.step(s.RightDown)
	c.Middle.step(s.MiddleDown)

	c.WheelX, c.WheelY = s.WheelX, s.WheelY
}

func (b *ButtonState) step(down bool) {
	b.Pressed = down && !b.Down
	b.Released = !down && b.Down
	b.Down = down
}

// AnyDown reports whether any button is currently held.
func (c *Cursor) AnyDown() bool {
	return c.Left.Down || c.Right.Down || c.Middle.Down
}

// AnyReleased reports whether any button was released this frame.
func (c *Cursor) AnyReleased() bool {
	return c.Left.Released || c.Right.Released || c.Middle.Released
}

// Button returns the state of the given logical button. MouseButtonNone
// yields a zero state.
func (c *Cursor) Button(b MouseButton) ButtonState {
	switch b {
	case MouseButtonLeft:
		return c.Left
	case MouseButtonRight:
		return c.Right
	case MouseButtonMiddle:
		return c.Middle
	default:
		return ButtonState{}
	}
}
