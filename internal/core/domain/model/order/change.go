package order

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
)

// Change is an entry of the order's append-only change log.
type Change struct {
	id      kernel.UUID
	from    Status
	to      Status
	actorID kernel.UUID
	notes   string
	at      time.Time
}

// RestoreChange rebuilds a persisted change log entry.
func RestoreChange(id kernel.UUID, from, to Status, actorID kernel.UUID, notes string, at time.Time) Change {
	return Change{id: id, from: from, to: to, actorID: actorID, notes: notes, at: at}
}

func (c Change) ID() kernel.UUID { return c.id }
func (c Change) From() Status { return c.from }
func (c Change) To() Status { return c.to }
func (c Change) ActorID() kernel.UUID { return c.actorID }
func (c Change) Notes() string { return c.notes }
func (c Change) At() time.Time { return c.at }
