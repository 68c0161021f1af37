package kernel

import "time"

// DomainEvent is recorded by an aggregate when its state changes and handed to
// the event publisher once the surrounding transaction commits.
type DomainEvent interface {
	EventName() string
	Subject() EntityRef
	OccurredAt() time.Time
}

// EventRecorder is embedded by aggregates that emit domain events.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(e DomainEvent) {
	r.events = append(r.events, e)
}

// PullEvents returns the recorded events and clears them.
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
