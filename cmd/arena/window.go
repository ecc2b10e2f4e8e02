package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/system"
	"github.com/milk9111/hollowblade/internal/arena"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerUnit = 32.0
	healthBarH    = 4
)

// window hosts the arena in an ebiten window. Ebiten calls Update at the
// configured TPS, one arena step per call.
type window struct {
	arena *arena.Arena
	debug bool
}

func (g *window) Update() error {
	if g.arena.Done() && ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.arena.Step()
	return nil
}

func (g *window) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	w := g.arena.World()

	camX := 0.0
	if t, ok := ecs.Get(w, g.arena.Player(), component.TransformComponent.Kind()); ok {
		camX = t.X
	}
	toScreen := func(x, y float64) (float32, float32) {
		return float32((x-camX)*pixelsPerUnit + baseWidth/2), float32(baseHeight*0.75 - y*pixelsPerUnit)
	}

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.DebugDrawComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody, dd *component.DebugDraw) {
			x, y := toScreen(t.X-pb.Width/2, t.Y+pb.Height/2)
			bw, bh := float32(pb.Width*pixelsPerUnit), float32(pb.Height*pixelsPerUnit)

			fill := dd.Color
			if wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok && wf.On {
				fill = colornames.White
			}
			if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
				fill = colornames.Dimgray
			}
			vector.FillRect(screen, x, y, bw, bh, fill, false)

			if brain, ok := ecs.Get(w, e, component.EnemyBrainComponent.Kind()); ok {
				if brain.CanBeStunned {
					vector.StrokeRect(screen, x, y, bw, bh, 2, colornames.Gold, false)
				}
				ebitenutil.DebugPrintAt(screen, string(brain.Current), int(x), int(y)-28)
			}
			if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.Dead && !ecs.Has(w, e, component.GroundTagComponent.Kind()) {
				drawHealthBar(screen, x, y-healthBarH-2, bw, system.HealthPercent(w, e))
			}
		})

	if g.debug {
		drawPhysicsDebug(g.arena.Physics().Space(), screen, toScreen)
	}

	s := g.arena.Summary()
	inv := g.arena.Inventory()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"t=%.1fs  FPS: %.0f\nHP %.0f  enemies %d/%d  gold %d  items %d\nA/D move  SPACE jump  J attack  K counter",
		s.Elapsed, ebiten.ActualFPS(), s.PlayerHealth, s.EnemiesAlive, s.EnemiesPlaced, inv.Gold, len(inv.Items),
	))
	if g.arena.Done() {
		ebitenutil.DebugPrintAt(screen, "fight over - ESC to quit", baseWidth/2-70, baseHeight/2)
	}
}

func drawHealthBar(screen *ebiten.Image, x, y, width float32, pct float64) {
	vector.FillRect(screen, x, y, width, healthBarH, colornames.Darkred, false)
	vector.FillRect(screen, x, y, width*float32(pct), healthBarH, color.NRGBA{R: 0x66, G: 0xbb, B: 0x6a, A: 0xff}, false)
}

func (g *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
