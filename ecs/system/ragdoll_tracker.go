package system

import "github.com/milk9111/roadrush/ecs"

// RagdollTracker is the set of active ragdolls ordered by hit time, oldest
// first.
type RagdollTracker struct {
	entries []ragdollEntry
}

type ragdollEntry struct {
	entity  ecs.Entity
	hitTime float64
}

func NewRagdollTracker() *RagdollTracker {
	return &RagdollTracker{}
}

// Add records e as ragdolled at hitTime. Entries with equal hit times keep
// insertion order.
func (t *RagdollTracker) Add(e ecs.Entity, hitTime float64) {
	t.Remove(e)
	i := len(t.entries)
	for i > 0 && t.entries[i-1].hitTime > hitTime {
		i--
	}
	t.entries = append(t.entries, ragdollEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = ragdollEntry{entity: e, hitTime: hitTime}
}

func (t *RagdollTracker) Remove(e ecs.Entity) bool {
	for i, entry := range t.entries {
		if entry.entity == e {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Oldest returns the ragdoll with the earliest hit time.
func (t *RagdollTracker) Oldest() (ecs.Entity, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}
	return t.entries[0].entity, true
}

func (t *RagdollTracker) Len() int {
	return len(t.entries)
}

// Entities returns the tracked ragdolls oldest first.
func (t *RagdollTracker) Entities() []ecs.Entity {
	out := make([]ecs.Entity, len(t.entries))
	for i, entry := range t.entries {
		out[i] = entry.entity
	}
	return out
}
