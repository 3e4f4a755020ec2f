package ecs

// EventType names a scene event.
type EventType string

const (
	// EventButtonClicked carries the clicked Entity.
	EventButtonClicked EventType = "button_clicked"
	// EventViewChanged carries the new component.View.
	EventViewChanged EventType = "view_changed"
	// EventActivePanel carries the new active panel index as an int.
	EventActivePanel EventType = "active_panel"
	// EventContactSent carries the send error, nil on success.
	EventContactSent EventType = "contact_sent"
	// EventContentReloaded carries the reloaded prefab file name.
	EventContentReloaded EventType = "content_reloaded"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a FIFO queue flushed at the end of every frame.
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

// Of returns this frame's events of type t without consuming them.
func (q *EventQueue) Of(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
