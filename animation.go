package rampart

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a control simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenAlpha) and call Update(dt) each frame, typically from the control's
// OnUpdate hook or a deferred per-frame callback.
//
// There is no global animation manager. Callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates a control's X and Y to the given local coordinates
// over duration seconds using the easing function.
func TweenPosition(c Control, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	b := c.UI()
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(b.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(b.Y), float32(toY), duration, fn)
	g.fields[0] = &b.X
	g.fields[1] = &b.Y
	return g
}

// TweenSize animates a control's Width and Height to the given values over
// duration seconds using the easing function.
func TweenSize(c Control, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	b := c.UI()
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(b.Width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(b.Height), float32(toH), duration, fn)
	g.fields[0] = &b.Width
	g.fields[1] = &b.Height
	return g
}

// TweenAlpha animates a control's Alpha to the target value over duration
// seconds using the easing function.
func TweenAlpha(c Control, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	b := c.UI()
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(b.Alpha), float32(to), duration, fn)
	g.fields[0] = &b.Alpha
	return g
}
