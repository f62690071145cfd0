package ecs

// EventType identifies the payload carried by an Event.
type EventType string

const (
	EventHit               EventType = "hit"
	EventPedestrianRemoved EventType = "pedestrian_removed"
)

// Event is a generic ECS event payload. Events live for one tick.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns queued events without clearing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
