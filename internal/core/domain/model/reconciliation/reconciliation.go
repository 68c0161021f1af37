// Package reconciliation models the human sign-off that matches a payment
// transaction with its invoice.
package reconciliation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

var ErrReconciliationIsNotConstructed = errors.New("Reconciliation must be created via NewReconciliation constructor")

// Status of a reconciliation. Reconciled and Discrepancy are terminal.
type Status int

const (
	Unknown Status = iota
	Pending
	Reconciled
	Discrepancy
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:     "pending",
		Reconciled:  "reconciled",
		Discrepancy: "discrepancy",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("reconciliation status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("reconciliation status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Resolution is who resolved a reconciliation and when. Both parts always
// travel together.
type Resolution struct {
	ActorID kernel.UUID
	At      time.Time
}

// Reconciliation pairs one transaction with one invoice.
type Reconciliation struct {
	id            kernel.UUID
	transactionID kernel.UUID
	invoiceID     kernel.UUID
	status        Status
	notes         string
	resolution    *Resolution
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

func NewReconciliation(id, transactionID, invoiceID kernel.UUID, at time.Time) (*Reconciliation, error) {
	if err := errors.Join(
		id.Validate(),
		requireID("transaction id", transactionID),
		requireID("invoice id", invoiceID),
	); err != nil {
		return nil, err
	}

	return &Reconciliation{
		id:            id,
		transactionID: transactionID,
		invoiceID:     invoiceID,
		status:        Pending,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}, nil
}

// State is the persisted form used by RestoreReconciliation.
type State struct {
	ID            kernel.UUID
	TransactionID kernel.UUID
	InvoiceID     kernel.UUID
	Status        Status
	Notes         string
	Resolution    *Resolution
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreReconciliation rejects states where status and resolution disagree.
func RestoreReconciliation(state State) (*Reconciliation, error) {
	if err := errors.Join(state.ID.Validate(), state.Status.Validate()); err != nil {
		return nil, err
	}
	if (state.Status == Pending) != (state.Resolution == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"reconciliation resolution",
			fmt.Errorf("status %s does not match resolution presence", state.Status),
		)
	}

	return &Reconciliation{
		id:            state.ID,
		transactionID: state.TransactionID,
		invoiceID:     state.InvoiceID,
		status:        state.Status,
		notes:         state.Notes,
		resolution:    state.Resolution,
		createdAt:     state.CreatedAt,
		updatedAt:     state.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (r *Reconciliation) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReconciliationIsNotConstructed
	}
	return nil
}

func (r *Reconciliation) ID() kernel.UUID { return r.id }
func (r *Reconciliation) TransactionID() kernel.UUID { return r.transactionID }
func (r *Reconciliation) InvoiceID() kernel.UUID { return r.invoiceID }
func (r *Reconciliation) Status() Status { return r.status }
func (r *Reconciliation) Notes() string { return r.notes }
func (r *Reconciliation) CreatedAt() time.Time { return r.createdAt }
func (r *Reconciliation) UpdatedAt() time.Time { return r.updatedAt }

// Resolution returns a copy of the resolution, nil while pending.
func (r *Reconciliation) Resolution() *Resolution {
	if r.resolution == nil {
		return nil
	}
	res := *r.resolution
	return &res
}

// MarkReconciled resolves a pending reconciliation as matching.
func (r *Reconciliation) MarkReconciled(actorID kernel.UUID, at time.Time) error {
	return r.resolve(Reconciled, actorID, "", at)
}

// MarkDiscrepancy resolves a pending reconciliation as not matching.
func (r *Reconciliation) MarkDiscrepancy(actorID kernel.UUID, notes string, at time.Time) error {
	if strings.TrimSpace(notes) == "" {
		return errs.NewValueIsRequiredError("discrepancy notes")
	}
	return r.resolve(Discrepancy, actorID, notes, at)
}

func (r *Reconciliation) resolve(target Status, actorID kernel.UUID, notes string, at time.Time) error {
	if err := requireID("actor", actorID); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("reconciled at")
	}
	if r.status != Pending {
		return errs.NewInvalidTransitionError("reconciliation", r.status, target)
	}

	r.status = target
	r.resolution = &Resolution{ActorID: actorID, At: at}
	if notes = strings.TrimSpace(notes); notes != "" {
		r.notes = notes
	}
	r.updatedAt = at
	return nil
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
