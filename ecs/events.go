package ecs

// EventType identifies an event published on the world bus.
type EventType string

const (
	EventDamageTaken   EventType = "damage_taken"
	EventAttackEvaded  EventType = "attack_evaded"
	EventHealthChanged EventType = "health_changed"
	EventEntityDied    EventType = "entity_died"
	EventPlayerDied    EventType = "player_died"
	EventStateChanged  EventType = "state_changed"
	EventCountered     EventType = "countered"
	EventSpawned       EventType = "spawned"
)

// Event is a world event. Source is the entity the event is about; Other is
// the counterpart (attacker, parent) when there is one.
type Event struct {
	Type   EventType
	Source Entity
	Other  Entity
	Data   any
}

// Handler receives published events synchronously.
type Handler func(w *World, evt Event)

type subscription struct {
	id    uint64
	owner Entity
	typ   EventType
	fn    Handler
}

// EventBus dispatches events to subscribers synchronously and also records
// them for Drain. Subscriptions are owned by an entity and are removed when
// that entity is destroyed.
type EventBus struct {
	nextID uint64
	subs   []subscription
	items  []Event
}

// Subscribe registers fn for events of type typ on behalf of owner. The
// returned id can be passed to Unsubscribe.
func (b *EventBus) Subscribe(owner Entity, typ EventType, fn Handler) uint64 {
	if b == nil || fn == nil {
		return 0
	}
	b.nextID++
	b.subs = append(b.subs, subscription{id: b.nextID, owner: owner, typ: typ, fn: fn})
	return b.nextID
}

func (b *EventBus) Unsubscribe(id uint64) {
	if b == nil {
		return
	}
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *EventBus) unsubscribeOwner(owner Entity) {
	kept := b.subs[:0]
	for _, s := range b.subs {
		if s.owner != owner {
			kept = append(kept, s)
		}
	}
	b.subs = kept
}

// Publish records evt and calls every handler subscribed to its type.
// Handlers added during dispatch only see later events.
func Publish(w *World, evt Event) {
	if w == nil {
		return
	}
	b := &w.events
	b.items = append(b.items, evt)
	snapshot := append([]subscription(nil), b.subs...)
	for _, s := range snapshot {
		if s.typ != evt.Type {
			continue
		}
		if s.owner.Valid() && !w.entities.isAlive(s.owner) {
			continue
		}
		s.fn(w, evt)
	}
}

// Drain returns all recorded events and clears the record.
func (b *EventBus) Drain() []Event {
	if b == nil || len(b.items) == 0 {
		return nil
	}
	out := b.items
	b.items = nil
	return out
}

// Subscribers reports how many subscriptions are registered.
func (b *EventBus) Subscribers() int {
	if b == nil {
		return 0
	}
	return len(b.subs)
}
