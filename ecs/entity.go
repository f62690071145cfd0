package ecs

import "strconv"

// Entity is a generation-checked handle: the low 32 bits index a slot, the
// high 32 bits count how many times that slot has been reused.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// Index returns the slot index of the handle. Two live entities never share
// an index, but a destroyed entity's index is recycled with a new generation.
func (e Entity) Index() uint32 {
	return uint32(e.id())
}

// Generation returns the reuse counter of the handle's slot.
func (e Entity) Generation() uint32 {
	return uint32(e.generation())
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
