package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/sim"
	"github.com/milk9111/roadrush/tuning"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	screenW        = 640
	screenH        = 480
	pixelsPerMeter = 16.0
	vehicleScreenY = 380.0

	boostLift     = 6.0
	boostDuration = 0.6
)

// Game renders a top-down debug view of one session. It only reads the
// simulation through the world and PhysicsState.
type Game struct {
	newSim   func(*opacityFader, *tuning.Tuning) (*sim.Sim, error)
	tuning   *tuning.Tuning
	sim      *sim.Sim
	reloader func(*sim.Sim) *sim.Reloader
	reload   *sim.Reloader
	fader    *opacityFader
	track    *zoneTrack
	logger   *zap.Logger

	paused bool
	hits   int
	score  map[string]int
}

func NewGame(tun *tuning.Tuning, newSim func(*opacityFader, *tuning.Tuning) (*sim.Sim, error), reloader func(*sim.Sim) *sim.Reloader, track *zoneTrack, logger *zap.Logger) (*Game, error) {
	g := &Game{tuning: tun, newSim: newSim, reloader: reloader, track: track, logger: logger}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	if g.sim != nil {
		g.tuning = g.sim.Tuning()
	}
	fader := newOpacityFader()
	s, err := g.newSim(fader, g.tuning)
	if err != nil {
		return err
	}
	if _, err := s.SpawnVehicle(mgl64.Vec3{}); err != nil {
		return err
	}

	g.sim, g.fader = s, fader
	g.hits, g.score = 0, make(map[string]int)
	s.OnHit(func(h component.HitEvent) {
		g.hits++
		g.score[h.Reward]++
	})
	s.OnPedestrianRemoved(func(r component.PedestrianRemoved) {
		fader.Forget(ecs.Entity(r.Pedestrian))
	})

	g.track.Reset()
	if g.reloader != nil {
		g.reload = g.reloader(s)
	}
	g.logger.Info("session started", zap.String("session", s.SessionID()))
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.reload != nil {
		_, _ = g.reload.Poll()
	}

	v, ok := g.sim.Vehicle()
	if !ok {
		return nil
	}
	body, ok := g.sim.Space().Body(v)
	if !ok {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && body.Grounded() {
		boost := body.Velocity().Add(mgl64.Vec3{0, boostLift, 0})
		if err := g.sim.TriggerLaunchBoost(boost, boostDuration); err != nil {
			g.logger.Warn("launch boost failed", zap.Error(err))
		}
	}

	if g.paused {
		return nil
	}
	limits := g.sim.Tuning().Movement.Constraints
	g.track.Update(g.sim, body.Position().Z(), limits.RoadMinX, limits.RoadMaxX)
	g.sim.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkolivegreen)

	w := g.sim.World()
	v, ok := g.sim.Vehicle()
	if !ok {
		return
	}
	vt, ok := ecs.Get(w, v, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camZ := vt.Position.Z()
	toScreen := func(x, z float64) (float32, float32) {
		return float32(screenW/2 + x*pixelsPerMeter), float32(vehicleScreenY - (z-camZ)*pixelsPerMeter)
	}

	limits := g.sim.Tuning().Movement.Constraints
	left, _ := toScreen(limits.RoadMinX, 0)
	right, _ := toScreen(limits.RoadMaxX, 0)
	vector.FillRect(screen, left, 0, right-left, screenH, colornames.Dimgray, false)

	ecs.ForEach(w, component.SurfaceZoneComponent.Kind(), func(_ ecs.Entity, z *component.SurfaceZone) {
		x0, y0 := toScreen(z.MinX, z.MaxZ)
		x1, y1 := toScreen(z.MaxX, z.MinZ)
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, surfaceColor(z.Kind), false)
	})

	ecs.ForEach2(w, component.PedestrianComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pedestrian, t *component.Transform) {
		x, y := toScreen(t.Position.X(), t.Position.Z())
		r := float32(g.sim.Tuning().Spawn.Radius * pixelsPerMeter)
		clr := color.RGBA{R: 0xf0, G: 0xd0, B: 0x60, A: 0xff}
		if ecs.Has(w, e, component.RagdollComponent.Kind()) {
			clr = color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: uint8(255 * g.fader.Opacity(e))}
			// Airborne ragdolls draw larger.
			r *= float32(1 + t.Position.Y()*0.3)
		}
		vector.FillCircle(screen, x, y, r, clr, true)
	})

	body, _ := ecs.Get(w, v, component.PhysicsBodyComponent.Kind())
	if body != nil {
		x, y := toScreen(vt.Position.X()-body.Width/2, vt.Position.Z()+body.Length/2)
		vector.FillRect(screen, x, y, float32(body.Width*pixelsPerMeter), float32(body.Length*pixelsPerMeter), colornames.Crimson, false)
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	state, _ := g.sim.State()
	msg := fmt.Sprintf("speed %5.2f  sliding %t  max %t\nhits %d  ragdolls %d  t %.1fs",
		state.CurrentSpeed, state.IsSliding, state.IsAtMaxSpeed,
		g.hits, g.sim.Tracker().Len(), g.sim.Now())
	if g.paused {
		msg += "\npaused"
	}
	ebitenutil.DebugPrint(screen, msg)
	ebitenutil.DebugPrintAt(screen, "A/D steer  space jump  P pause  R restart", 8, screenH-20)
}

func surfaceColor(kind component.SurfaceKind) color.Color {
	switch kind {
	case component.SurfaceIce:
		return color.RGBA{R: 0xa0, G: 0xe0, B: 0xff, A: 0xa0}
	case component.SurfaceOil:
		return color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xc0}
	case component.SurfaceGrass:
		return color.RGBA{R: 0x40, G: 0xa0, B: 0x40, A: 0xa0}
	case component.SurfacePuddle:
		return color.RGBA{R: 0x40, G: 0x60, B: 0xc0, A: 0xa0}
	}
	return colornames.Gray
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}
