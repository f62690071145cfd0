package ecs

import (
	"testing"

	"github.com/milk9111/roadrush/ecs/component"
)

func TestEntityGenerationReuse(t *testing.T) {
	w := NewWorld()
	first := CreateEntity(w)
	if first.Index() == 0 {
		t.Fatalf("slot 0 must stay reserved")
	}
	if !DestroyEntity(w, first) {
		t.Fatalf("DestroyEntity should succeed for a live entity")
	}
	if DestroyEntity(w, first) {
		t.Fatalf("second DestroyEntity should report false")
	}

	second := CreateEntity(w)
	if second.Index() != first.Index() {
		t.Fatalf("expected slot %d to be recycled, got %d", first.Index(), second.Index())
	}
	if second.Generation() != first.Generation()+1 {
		t.Fatalf("expected generation %d, got %d", first.Generation()+1, second.Generation())
	}
	if IsAlive(w, first) {
		t.Fatalf("stale handle must not be alive")
	}

	k := component.NewComponentKind[int]()
	if err := Add(w, first, k, intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
	if err := Add(w, second, k, intPtr(2)); err != nil {
		t.Fatal(err)
	}
	if _, ok := Get(w, first, k); ok {
		t.Fatalf("stale handle must not see the new occupant's component")
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	cases := []struct {
		name string
		err  error
		add  func() error
	}{
		{"zero_kind", component.ErrInvalidComponentKind, func() error { return Add(w, e, component.ComponentKind[int]{}, intPtr(1)) }},
		{"nil_value", component.ErrNilComponent, func() error { return Add[int](w, e, component.NewComponentKind[int](), nil) }},
		{"zero_entity", component.ErrEntityNotAlive, func() error { return Add(w, 0, component.NewComponentKind[int](), intPtr(1)) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.add(); err != c.err {
				t.Fatalf("expected %v, got %v", c.err, err)
			}
		})
	}
}

func TestDestroyHooksRunBeforeComponentsRemoved(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	if err := Add(w, e, k, intPtr(7)); err != nil {
		t.Fatal(err)
	}

	var seen []int
	w.OnDestroy(func(d Entity) {
		v, ok := Get(w, d, k)
		if !ok {
			t.Fatalf("component should still be readable inside the hook")
		}
		seen = append(seen, *v)
	})
	w.OnDestroy(nil)

	DestroyEntity(w, e)
	DestroyEntity(w, e)
	if len(seen) != 1 || seen[0] != 7 {
		t.Fatalf("expected one hook call with 7, got %v", seen)
	}
	if Count(w, k) != 0 {
		t.Fatalf("components should be stripped after destroy")
	}
}

func TestForEach2AndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	if _, ok := First(w, ka); ok {
		t.Fatalf("First on a missing store should report false")
	}

	e1, e2, e3 := CreateEntity(w), CreateEntity(w), CreateEntity(w)
	for _, e := range []Entity{e1, e2, e3} {
		if err := Add(w, e, ka, intPtr(int(e.Index()))); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, e2, kb, stringPtr("b")); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, kb, stringPtr("c")); err != nil {
		t.Fatal(err)
	}

	var got []Entity
	ForEach2(w, ka, kb, func(e Entity, a *int, b *string) {
		got = append(got, e)
		if e == e2 {
			DestroyEntity(w, e3)
		}
	})
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected only e2 once e3 is destroyed mid-pass, got %v", got)
	}

	if first, ok := First(w, kb); !ok || first != e2 {
		t.Fatalf("expected First to return e2, got %v ok=%v", first, ok)
	}
}

func TestPointersStableAcrossSwapRemove(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e1, e2 := CreateEntity(w), CreateEntity(w)
	v2 := intPtr(2)
	if err := Add(w, e1, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, k, v2); err != nil {
		t.Fatal(err)
	}
	Remove(w, e1, k)

	got, ok := Get(w, e2, k)
	if !ok || got != v2 {
		t.Fatalf("expected the same pointer after a swap remove")
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (s recordSystem) Update(*World) { *s.log = append(*s.log, s.name) }

func TestSchedulerOrderAndClock(t *testing.T) {
	var log []string
	s := NewScheduler(recordSystem{"a", &log}, nil, recordSystem{"b", &log})
	s.Add(nil)
	s.Add(recordSystem{"c", &log})

	w := NewWorld()
	w.Clock().DT = 0.5
	for range 2 {
		s.Update(w)
		w.Clock().Advance()
	}

	want := []string{"a", "b", "c", "a", "b", "c"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("nil systems must be skipped")
	}
	if c := w.Clock(); c.Now != 1 || c.Tick != 2 {
		t.Fatalf("expected now=1 tick=2, got now=%v tick=%v", c.Now, c.Tick)
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	if q.Drain() != nil {
		t.Fatalf("empty queue should drain to nil")
	}
	q.Push(Event{Type: EventHit, Data: 1})
	q.Push(Event{Type: EventPedestrianRemoved, Data: 2})
	if len(q.Pending()) != 2 {
		t.Fatalf("expected 2 pending events")
	}
	evts := q.Drain()
	if len(evts) != 2 || evts[0].Type != EventHit || evts[1].Type != EventPedestrianRemoved {
		t.Fatalf("events must drain in push order, got %v", evts)
	}
	if len(q.Pending()) != 0 {
		t.Fatalf("drain must clear the queue")
	}
}
