package rampart

import "github.com/hajimehoshi/ebiten/v2"

// injectedFrame is one synthetic input frame. Injected frames replace the
// live backend snapshot one frame at a time, so edges and latches behave
// exactly as they do for hardware input.
type injectedFrame struct {
	x, y           float64
	left           bool
	right          bool
	middle         bool
	wheelX, wheelY float64
	keys           []ebiten.Key
	pressedKeys    []ebiten.Key
}

func (f injectedFrame) snapshot() InputSnapshot {
	return InputSnapshot{
		CursorX:         f.x,
		CursorY:         f.y,
		LeftDown:        f.left,
		RightDown:       f.right,
		MiddleDown:      f.middle,
		WheelX:          f.wheelX,
		WheelY:          f.wheelY,
		Focused:         true,
		HeldKeys:        f.keys,
		JustPressedKeys: f.pressedKeys,
	}
}

// InjectPress queues one frame with the left button held at the given window
// coordinates. Consumed by the next Update in place of the real backend.
func (m *Manager) InjectPress(x, y float64) {
	m.injectQueue = append(m.injectQueue, injectedFrame{x: x, y: y, left: true})
}

// InjectMove queues one frame with the left button still held at the given
// window coordinates. Use between InjectPress and InjectRelease to simulate
// a drag.
func (m *Manager) InjectMove(x, y float64) {
	m.injectQueue = append(m.injectQueue, injectedFrame{x: x, y: y, left: true})
}

// InjectRelease queues one frame with no buttons held at the given window
// coordinates.
func (m *Manager) InjectRelease(x, y float64) {
	m.injectQueue = append(m.injectQueue, injectedFrame{x: x, y: y})
}

// InjectClick queues a press frame followed by a release frame at the same
// window coordinates. Consumes two frames.
func (m *Manager) InjectClick(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated held moves, and release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2 (press plus release).
func (m *Manager) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	m.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		m.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	m.InjectRelease(toX, toY)
}

// InjectWheel queues one frame with the given scroll deltas at the given
// window coordinates.
func (m *Manager) InjectWheel(x, y, dx, dy float64) {
	m.injectQueue = append(m.injectQueue, injectedFrame{x: x, y: y, wheelX: dx, wheelY: dy})
}

// InjectKey queues one frame holding the given key, with the press edge set.
// The cursor stays at the given window coordinates.
func (m *Manager) InjectKey(x, y float64, k ebiten.Key) {
	m.injectQueue = append(m.injectQueue, injectedFrame{
		x: x, y: y,
		keys:        []ebiten.Key{k},
		pressedKeys: []ebiten.Key{k},
	})
}
