package rampart

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// notifyDefaultSeconds is how long a toast stays fully visible before fading.
const notifyDefaultSeconds = 3.0

// notifyFadeSeconds is the fade-out duration once a toast expires.
const notifyFadeSeconds = 0.5

// toast is one transient notification. The remaining accumulator counts the
// visible phase down; the fade tween then takes alpha to zero.
type toast struct {
	text      string
	remaining float64
	alpha     float64
	fade      *gween.Tween
}

// Notify shows a transient notification for the default duration.
func (m *Manager) Notify(text string) {
	m.NotifyFor(text, notifyDefaultSeconds)
}

// NotifyFor shows a transient notification for the given number of seconds,
// then fades it out.
func (m *Manager) NotifyFor(text string, seconds float64) {
	m.toasts = append(m.toasts, toast{
		text:      text,
		remaining: seconds,
		alpha:     1,
	})
}

func (m *Manager) updateToasts(dt float64) {
	live := m.toasts[:0]
	for i := range m.toasts {
		t := &m.toasts[i]
		if t.fade == nil {
			t.remaining -= dt
			if t.remaining <= 0 {
				t.fade = gween.New(1, 0, notifyFadeSeconds, ease.OutQuad)
			}
			live = append(live, *t)
			continue
		}
		val, done := t.fade.Update(float32(dt))
		t.alpha = float64(val)
		if !done {
			live = append(live, *t)
		}
	}
	m.toasts = live
}

// drawToasts stacks notifications along the bottom edge of the back buffer,
// newest at the bottom.
func (m *Manager) drawToasts(dst *ebiten.Image) {
	if len(m.toasts) == 0 {
		return
	}
	const rowH = 20
	baseY := float64(m.scaler.LogicalH) - 8
	for i := len(m.toasts) - 1; i >= 0; i-- {
		t := &m.toasts[i]
		y := baseY - float64(len(m.toasts)-i)*rowH
		w := float64(len(t.text)*6 + 12)
		vector.DrawFilledRect(dst, 8, float32(y), float32(w), rowH-4,
			Color{R: 0, G: 0, B: 0, A: 0.7 * t.alpha}.toRGBA(), false)
		ebitenutil.DebugPrintAt(dst, t.text, 14, int(y))
	}
}
