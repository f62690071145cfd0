package system

import "github.com/milk9111/roadrush/ecs"

// SlidingMemory remembers each mover's lateral velocity from the previous
// tick. Slots are indexed by entity slot and hold the full handle, so a
// recycled slot never reads a destroyed mover's value. Release must be
// called when the mover is destroyed.
type SlidingMemory struct {
	slots []slidingSlot
	count int
}

type slidingSlot struct {
	entity  ecs.Entity
	lateral float64
	used    bool
}

func NewSlidingMemory() *SlidingMemory {
	return &SlidingMemory{}
}

func (m *SlidingMemory) Get(e ecs.Entity) (float64, bool) {
	idx := int(e.Index())
	if idx >= len(m.slots) {
		return 0, false
	}
	slot := m.slots[idx]
	if !slot.used || slot.entity != e {
		return 0, false
	}
	return slot.lateral, true
}

func (m *SlidingMemory) Set(e ecs.Entity, lateral float64) {
	idx := int(e.Index())
	if idx >= len(m.slots) {
		grown := make([]slidingSlot, idx+1, max(idx+1, 2*len(m.slots)))
		copy(grown, m.slots)
		m.slots = grown
	}
	if !m.slots[idx].used {
		m.count++
	}
	m.slots[idx] = slidingSlot{entity: e, lateral: lateral, used: true}
}

// Release drops the entry for e. Entries owned by another generation of the
// same slot are left alone.
func (m *SlidingMemory) Release(e ecs.Entity) {
	idx := int(e.Index())
	if idx >= len(m.slots) {
		return
	}
	if slot := m.slots[idx]; slot.used && slot.entity == e {
		m.slots[idx] = slidingSlot{}
		m.count--
	}
}

// Len returns the number of live entries.
func (m *SlidingMemory) Len() int {
	return m.count
}
