package ecs

import "github.com/milk9111/roadrush/ecs/component"

// ForEach visits every live entity with component a. Entities destroyed or
// stripped by the callback are skipped for the rest of the pass.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	sa := store(w, a, false)
	for _, e := range sa.Entities() {
		va := sa.Get(e)
		if va == nil {
			continue
		}
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := store(w, a, false), store(w, b, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range sa.Entities() {
		va, vb := sa.Get(e), sb.Get(e)
		if va == nil || vb == nil {
			continue
		}
		fn(e, va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := store(w, a, false), store(w, b, false), store(w, c, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range sa.Entities() {
		va, vb, vc := sa.Get(e), sb.Get(e), sc.Get(e)
		if va == nil || vb == nil || vc == nil {
			continue
		}
		fn(e, va, vb, vc)
	}
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := store(w, a, false), store(w, b, false), store(w, c, false), store(w, d, false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, e := range sa.Entities() {
		va, vb, vc, vd := sa.Get(e), sb.Get(e), sc.Get(e), sd.Get(e)
		if va == nil || vb == nil || vc == nil || vd == nil {
			continue
		}
		fn(e, va, vb, vc, vd)
	}
}

// First returns any live entity carrying component a.
func First[A any](w *World, a component.ComponentKind[A]) (Entity, bool) {
	sa := store(w, a, false)
	if sa == nil || len(sa.denseEntities) == 0 {
		return 0, false
	}
	return sa.denseEntities[0], true
}
