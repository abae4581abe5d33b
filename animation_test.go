package rampart

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	c := namedRect("c", 0, 0, 10, 10)
	g := TweenPosition(c, 100, 50, 1.0, ease.Linear)

	g.Update(0.5)
	if !closeTo(c.X, 50) || !closeTo(c.Y, 25) {
		t.Errorf("halfway: (%v, %v), want (50, 25)", c.X, c.Y)
	}
	if g.Done {
		t.Error("Done before the duration elapsed")
	}

	g.Update(0.6)
	if c.X != 100 || c.Y != 50 {
		t.Errorf("final: (%v, %v), want (100, 50)", c.X, c.Y)
	}
	if !g.Done {
		t.Error("not Done after the duration elapsed")
	}

	// Further updates are inert.
	g.Update(1)
	if c.X != 100 {
		t.Errorf("position moved after Done: %v", c.X)
	}
}

func TestTweenSize(t *testing.T) {
	c := namedRect("c", 0, 0, 10, 20)
	g := TweenSize(c, 110, 120, 1.0, ease.Linear)
	g.Update(1)
	if c.Width != 110 || c.Height != 120 || !g.Done {
		t.Errorf("size = %vx%v done=%v", c.Width, c.Height, g.Done)
	}
}

func TestTweenAlpha(t *testing.T) {
	c := NewControl("c")
	g := TweenAlpha(c, 0, 0.5, ease.Linear)
	g.Update(0.25)
	if !closeTo(c.Alpha, 0.5) {
		t.Errorf("alpha = %v, want 0.5", c.Alpha)
	}
	g.Update(0.25)
	if c.Alpha != 0 || !g.Done {
		t.Errorf("alpha = %v done=%v", c.Alpha, g.Done)
	}
}
