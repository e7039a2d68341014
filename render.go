//go:build !gl

package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the active buffer and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	buf, err := g.sess.read()
	if err != nil {
		ebitenutil.DebugPrint(screen, err.Error())
		return
	}
	shadeSurface(g.grid, buf, g.pixels, g.eye)
	screen.WritePixels(g.pixels)

	if g.debug {
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		if tps < 0 {
			tps = 0
		}
		simMS := g.lastSimDuration.Seconds() * 1000
		debugMsg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nStep: %d (%d/frame)\nSim: %.2f ms\nWave factor: %.5f",
			fps, tps, g.sess.sim.Steps(), g.stepsPerFrame, simMS, g.sess.sim.WaveFactor())
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten: one pixel per
// sample.
func (g *Game) Layout(_, _ int) (int, int) { return g.grid.PointsX, g.grid.PointsY }
