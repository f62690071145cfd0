package ecs

import (
	"fmt"
	"testing"

	"github.com/milk9111/roadrush/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})
}

type arityFixture struct {
	w              *World
	ka, kb, kc, kd component.ComponentKind[int]
}

func newArityFixture() *arityFixture {
	return &arityFixture{
		w:  NewWorld(),
		ka: component.NewComponentKind[int](),
		kb: component.NewComponentKind[int](),
		kc: component.NewComponentKind[int](),
		kd: component.NewComponentKind[int](),
	}
}

// give attaches the listed kinds to a fresh entity.
func (f *arityFixture) give(t *testing.T, kinds ...component.ComponentKind[int]) Entity {
	t.Helper()
	e := CreateEntity(f.w)
	for i, k := range kinds {
		if err := Add(f.w, e, k, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func (f *arityFixture) query(arity int) []Entity {
	var res []Entity
	collect := func(e Entity) { res = append(res, e) }
	switch arity {
	case 1:
		ForEach(f.w, f.ka, func(e Entity, _ *int) { collect(e) })
	case 2:
		ForEach2(f.w, f.ka, f.kb, func(e Entity, _, _ *int) { collect(e) })
	case 3:
		ForEach3(f.w, f.ka, f.kb, f.kc, func(e Entity, _, _, _ *int) { collect(e) })
	case 4:
		ForEach4(f.w, f.ka, f.kb, f.kc, f.kd, func(e Entity, _, _, _, _ *int) { collect(e) })
	}
	return res
}

func TestForEachArity(t *testing.T) {
	for arity := 1; arity <= 4; arity++ {
		t.Run(fmt.Sprintf("arity_%d", arity), func(t *testing.T) {
			cases := []struct {
				name  string
				setup func(t *testing.T, f *arityFixture) []Entity
			}{
				{
					name: "only_full_matches",
					setup: func(t *testing.T, f *arityFixture) []Entity {
						all := []component.ComponentKind[int]{f.ka, f.kb, f.kc, f.kd}
						f.give(t, f.kb, f.kc, f.kd)
						full := f.give(t, all[:arity]...)
						if arity > 1 {
							f.give(t, all[:arity-1]...)
						}
						return []Entity{full}
					},
				},
				{
					name: "ignores_dead_entities",
					setup: func(t *testing.T, f *arityFixture) []Entity {
						e := f.give(t, f.ka, f.kb, f.kc, f.kd)
						if !DestroyEntity(f.w, e) {
							t.Fatal("failed to destroy entity")
						}
						return nil
					},
				},
				{
					name: "missing_store",
					setup: func(t *testing.T, f *arityFixture) []Entity {
						f.give(t, f.kd)
						return nil
					},
				},
			}

			for _, c := range cases {
				t.Run(c.name, func(t *testing.T) {
					f := newArityFixture()
					want := c.setup(t, f)
					got := f.query(arity)
					if len(got) != len(want) {
						t.Fatalf("expected %v, got %v", want, got)
					}
					gotSet := toSet(got)
					for _, e := range want {
						if _, ok := gotSet[e]; !ok {
							t.Fatalf("expected %v in result %v", e, got)
						}
					}
				})
			}
		})
	}
}
