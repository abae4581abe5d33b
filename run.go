package rampart

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts a Manager to the ebiten.Game interface. Layout reports the
// outside size back into the scaler so letterboxing follows window resizes.
type game struct {
	m *Manager
}

func (g *game) Update() error {
	g.m.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.m.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.m.NotifyClientSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run configures the window from cfg and enters the Ebitengine main loop,
// driving the manager until the window closes. Blocks until then.
func Run(m *Manager, cfg Config) error {
	cfg = cfg.withDefaults()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	m.SetFullscreen(cfg.Fullscreen)

	m.SetResolution(cfg.LogicalWidth, cfg.LogicalHeight)
	m.SetIntegerScaling(cfg.IntegerScaling)
	m.NotifyClientSize(cfg.WindowWidth, cfg.WindowHeight)
	m.SetDebugMode(cfg.Debug)

	if err := ebiten.RunGame(&game{m: m}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
