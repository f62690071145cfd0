package main

import (
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/sim"
	"go.uber.org/zap"
)

const (
	zoneSpacing   = 35.0
	zoneLookahead = 120.0
	zoneBehind    = 20.0
)

var zoneKinds = []component.SurfaceKind{
	component.SurfaceIce,
	component.SurfaceOil,
	component.SurfaceGrass,
	component.SurfacePuddle,
}

// zoneTrack keeps a band of surface patches ahead of the vehicle and drops
// the ones it has left behind.
type zoneTrack struct {
	rng    *common.Rand
	logger *zap.Logger
	nextZ  float64
}

func newZoneTrack(seed uint64, logger *zap.Logger) *zoneTrack {
	return &zoneTrack{rng: common.NewRand(seed), logger: logger, nextZ: zoneSpacing}
}

func (t *zoneTrack) Update(s *sim.Sim, vehicleZ, roadMinX, roadMaxX float64) {
	for t.nextZ < vehicleZ+zoneLookahead {
		kind := zoneKinds[t.rng.Intn(len(zoneKinds))]
		width := t.rng.RangeF(2, roadMaxX-roadMinX)
		minX := t.rng.RangeF(roadMinX, roadMaxX-width)
		length := t.rng.RangeF(4, 12)
		if _, err := s.AddSurfaceZone(kind, minX, t.nextZ, minX+width, t.nextZ+length); err != nil {
			t.logger.Warn("surface zone rejected", zap.String("kind", string(kind)), zap.Error(err))
		}
		t.nextZ += zoneSpacing + t.rng.RangeF(0, zoneSpacing)
	}

	ecs.ForEach(s.World(), component.SurfaceZoneComponent.Kind(), func(e ecs.Entity, z *component.SurfaceZone) {
		if z.MaxZ < vehicleZ-zoneBehind {
			_ = s.RemoveSurfaceZone(e)
		}
	})
}

// Reset restarts the layout for a fresh session.
func (t *zoneTrack) Reset() {
	t.nextZ = zoneSpacing
}
