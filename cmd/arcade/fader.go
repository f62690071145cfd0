package main

import "github.com/milk9111/roadrush/ecs"

// opacityFader remembers the opacity the reaper last set for each ragdoll
// so Draw can tint it.
type opacityFader struct {
	opacity map[ecs.Entity]float64
}

func newOpacityFader() *opacityFader {
	return &opacityFader{opacity: make(map[ecs.Entity]float64)}
}

func (f *opacityFader) SetOpacity(e ecs.Entity, opacity float64) {
	f.opacity[e] = opacity
}

func (f *opacityFader) Opacity(e ecs.Entity) float64 {
	if o, ok := f.opacity[e]; ok {
		return o
	}
	return 1
}

func (f *opacityFader) Forget(e ecs.Entity) {
	delete(f.opacity, e)
}
