package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusDispatchesByType(t *testing.T) {
	w := NewWorld()
	owner := CreateEntity(w)

	var died, damaged int
	w.Events().Subscribe(owner, EventEntityDied, func(*World, Event) { died++ })
	w.Events().Subscribe(owner, EventDamageTaken, func(_ *World, evt Event) {
		damaged++
		assert.Equal(t, 3, evt.Data)
	})

	Publish(w, Event{Type: EventDamageTaken, Source: owner, Data: 3})
	Publish(w, Event{Type: EventDamageTaken, Source: owner, Data: 3})
	Publish(w, Event{Type: EventEntityDied, Source: owner})

	assert.Equal(t, 1, died)
	assert.Equal(t, 2, damaged)

	events := w.Events().Drain()
	require.Len(t, events, 3)
	assert.Equal(t, EventEntityDied, events[2].Type)
	assert.Nil(t, w.Events().Drain())
}

func TestEventBusDropsDestroyedOwners(t *testing.T) {
	w := NewWorld()
	owner := CreateEntity(w)
	calls := 0
	w.Events().Subscribe(owner, EventPlayerDied, func(*World, Event) { calls++ })
	w.Events().Subscribe(0, EventPlayerDied, func(*World, Event) { calls += 10 })
	require.Equal(t, 2, w.Events().Subscribers())

	require.True(t, DestroyEntity(w, owner))
	assert.Equal(t, 1, w.Events().Subscribers())

	Publish(w, Event{Type: EventPlayerDied})
	assert.Equal(t, 10, calls)
}

func TestEventBusHandlerDestroyingOwner(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	b := CreateEntity(w)
	calls := 0
	w.Events().Subscribe(a, EventCountered, func(w *World, _ Event) {
		calls++
		DestroyEntity(w, b)
	})
	w.Events().Subscribe(b, EventCountered, func(*World, Event) { calls++ })

	Publish(w, Event{Type: EventCountered})
	assert.Equal(t, 1, calls, "handlers of entities destroyed mid dispatch are skipped")
}

func TestUnsubscribe(t *testing.T) {
	w := NewWorld()
	calls := 0
	id := w.Events().Subscribe(0, EventSpawned, func(*World, Event) { calls++ })
	w.Events().Unsubscribe(id)

	Publish(w, Event{Type: EventSpawned})
	assert.Zero(t, calls)
	assert.Zero(t, w.Events().Subscribe(0, EventSpawned, nil))
}
