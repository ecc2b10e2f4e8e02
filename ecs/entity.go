package ecs

import "strconv"

// Entity is a handle: the low 32 bits are the slot id, the high 32 bits the
// slot generation. A destroyed slot is reused with the next generation, so
// stale handles never alias a new entity. The zero Entity is never alive.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID { return entityID(e & 0xffffffff) }

func (e Entity) generation() generation { return generation(e >> 32) }

// String renders the handle as id or id@generation, e.g. 7@2.
func (e Entity) String() string {
	s := strconv.FormatUint(uint64(e.id()), 10)
	if g := e.generation(); g > 0 {
		s += "@" + strconv.FormatUint(uint64(g), 10)
	}
	return s
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
