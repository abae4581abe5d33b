package rampart

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSnapshot is one frame's worth of raw input state, in window
// coordinates. The core never polls hardware directly; it consumes a
// snapshot from an InputBackend once per frame.
type InputSnapshot struct {
	CursorX, CursorY float64

	LeftDown   bool
	RightDown  bool
	MiddleDown bool

	WheelX, WheelY float64

	// Focused reports whether the application window has input focus.
	// Hit testing is disabled while unfocused.
	Focused bool

	// HeldKeys is the set of keys currently held. JustPressedKeys is the
	// subset that transitioned to held this frame. Both slices are only
	// valid until the next snapshot.
	HeldKeys        []ebiten.Key
	JustPressedKeys []ebiten.Key
}

// InputBackend produces per-frame input snapshots. The default backend polls
// Ebitengine; tests substitute their own.
type InputBackend interface {
	Snapshot() InputSnapshot
}

// Platform abstracts window/platform operations the core occasionally needs
// but does not own: client-area queries, fullscreen toggles, clipboard
// writes. Failures here are cosmetic (editor conveniences) and are swallowed
// at this boundary rather than surfaced as core errors.
type Platform interface {
	ClientSize() (int, int)
	SetFullscreen(fullscreen bool)
	WriteClipboard(text string) error
}

// --- Default Ebitengine backend ---

type ebitenBackend struct {
	held    []ebiten.Key
	pressed []ebiten.Key
}

// NewEbitenBackend returns the default InputBackend that polls Ebitengine's
// mouse, wheel, focus, and keyboard state. Key slices are reused across
// frames.
func NewEbitenBackend() InputBackend {
	return &ebitenBackend{}
}

func (b *ebitenBackend) Snapshot() InputSnapshot {
	mx, my := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()
	b.held = inpututil.AppendPressedKeys(b.held[:0])
	b.pressed = inpututil.AppendJustPressedKeys(b.pressed[:0])
	return InputSnapshot{
		CursorX:         float64(mx),
		CursorY:         float64(my),
		LeftDown:        ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		RightDown:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		MiddleDown:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		WheelX:          wx,
		WheelY:          wy,
		Focused:         ebiten.IsFocused(),
		HeldKeys:        b.held,
		JustPressedKeys: b.pressed,
	}
}

// --- Default Ebitengine platform ---

type ebitenPlatform struct{}

// NewEbitenPlatform returns the default Platform backed by Ebitengine window
// functions. Ebitengine has no clipboard API, so WriteClipboard always
// reports an error; hosts with a clipboard supply their own Platform.
func NewEbitenPlatform() Platform {
	return ebitenPlatform{}
}

func (ebitenPlatform) ClientSize() (int, int) {
	return ebiten.WindowSize()
}

func (ebitenPlatform) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

var errClipboardUnavailable = errors.New("rampart: clipboard unavailable")

func (ebitenPlatform) WriteClipboard(string) error {
	return errClipboardUnavailable
}
