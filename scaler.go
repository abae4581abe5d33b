package rampart

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter selects the sampling mode for the final blit to the window.
type Filter uint8

const (
	FilterNearest Filter = iota // point sampling, used for exact integer ratios
	FilterLinear                // bilinear, used for fractional ratios
)

// Scaler computes and applies the mapping from the fixed logical resolution
// to the physical client area: a uniform scale ratio, letterbox offsets, a
// sampling mode, and optionally a 2x supersampled intermediate buffer.
//
// The parameters are recomputed only on explicit resolution or client-size
// changes, never per frame and never mid-frame. All the math lives in
// Recompute; images are allocated lazily on the draw path so headless code
// (and tests) never touch the GPU.
type Scaler struct {
	LogicalW, LogicalH int
	ClientW, ClientH   int
	IntegerOnly        bool

	// Outputs of Recompute.
	Ratio            float64
	OffsetX, OffsetY float64
	Filter           Filter
	Doubled          bool

	buffer  *ebiten.Image // logical back buffer
	doubled *ebiten.Image // 2x intermediate, only while Doubled
}

// Recompute derives the scaling parameters for the given logical resolution
// and physical client size.
//
// With integerOnly set and the client at least as large as the logical
// resolution on both axes, each axis ratio is floored to a whole integer
// before taking the minimum, and each letterbox offset is computed from its
// own axis's floored ratio rather than the shared minimum. The per-axis
// offsets are intentional legacy behavior; see DESIGN.md before changing.
//
// An exact integer ratio above 1.5 enables the doubled path: the back
// buffer is first blitted at 2x into an intermediate, and the intermediate
// is what reaches the window. Direct nearest-neighbor scaling by large
// ratios shimmers; the 2x pre-scale keeps the final blit sharp.
func (s *Scaler) Recompute(logicalW, logicalH, clientW, clientH int, integerOnly bool) {
	if s.buffer != nil && (logicalW != s.LogicalW || logicalH != s.LogicalH) {
		s.buffer.Deallocate()
		s.buffer = nil
	}

	s.LogicalW, s.LogicalH = logicalW, logicalH
	s.ClientW, s.ClientH = clientW, clientH
	s.IntegerOnly = integerOnly

	if logicalW <= 0 || logicalH <= 0 || clientW <= 0 || clientH <= 0 {
		s.Ratio = 1
		s.OffsetX, s.OffsetY = 0, 0
		s.Filter = FilterNearest
		s.Doubled = false
		return
	}

	ratioX := float64(clientW) / float64(logicalW)
	ratioY := float64(clientH) / float64(logicalH)

	integral := integerOnly && clientW >= logicalW && clientH >= logicalH
	if integral {
		ratioX = math.Floor(ratioX)
		ratioY = math.Floor(ratioY)
	}

	s.Ratio = math.Min(ratioX, ratioY)

	if integral {
		s.OffsetX = (float64(clientW) - float64(logicalW)*ratioX) / 2
		s.OffsetY = (float64(clientH) - float64(logicalH)*ratioY) / 2
	} else {
		s.OffsetX = (float64(clientW) - float64(logicalW)*s.Ratio) / 2
		s.OffsetY = (float64(clientH) - float64(logicalH)*s.Ratio) / 2
	}

	exact := s.Ratio == math.Trunc(s.Ratio)
	if exact {
		s.Filter = FilterNearest
	} else {
		s.Filter = FilterLinear
	}
	s.Doubled = exact && s.Ratio > 1.5
}

// ToBuffer maps a window-space point into back-buffer coordinates.
func (s *Scaler) ToBuffer(wx, wy float64) (float64, float64) {
	if s.Ratio == 0 {
		return wx, wy
	}
	return (wx - s.OffsetX) / s.Ratio, (wy - s.OffsetY) / s.Ratio
}

// ToWindow maps a back-buffer point into window coordinates.
func (s *Scaler) ToWindow(bx, by float64) (float64, float64) {
	return bx*s.Ratio + s.OffsetX, by*s.Ratio + s.OffsetY
}

// Buffer returns the logical back buffer, allocating it on first use.
func (s *Scaler) Buffer() *ebiten.Image {
	if s.buffer == nil {
		w, h := s.LogicalW, s.LogicalH
		if w <= 0 {
			w = 1
		}
		if h <= 0 {
			h = 1
		}
		s.buffer = ebiten.NewImage(w, h)
	}
	return s.buffer
}

// Present blits the back buffer into screen using the current parameters.
// On the doubled path the buffer goes through the 2x intermediate first.
func (s *Scaler) Present(screen *ebiten.Image) {
	if s.buffer == nil {
		return
	}

	src := s.buffer
	scale := s.Ratio

	if s.Doubled {
		s.ensureDoubled()
		s.doubled.Clear()
		op := &ebiten.DrawImageOptions{}
		op.Filter = ebiten.FilterNearest
		op.GeoM.Scale(2, 2)
		s.doubled.DrawImage(s.buffer, op)
		src = s.doubled
		scale = s.Ratio / 2
	} else if s.doubled != nil {
		s.doubled.Deallocate()
		s.doubled = nil
	}

	op := &ebiten.DrawImageOptions{}
	if s.Filter == FilterNearest {
		op.Filter = ebiten.FilterNearest
	} else {
		op.Filter = ebiten.FilterLinear
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(s.OffsetX, s.OffsetY)
	screen.DrawImage(src, op)
}

func (s *Scaler) ensureDoubled() {
	w, h := s.LogicalW*2, s.LogicalH*2
	if s.doubled != nil {
		b := s.doubled.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		s.doubled.Deallocate()
	}
	s.doubled = ebiten.NewImage(w, h)
}
