package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice is the fiscal document of a paid order. There is at most one invoice
// per order.
type Invoice struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	number     string
	status     Status

	emitter  Party
	receiver Party

	net   decimal.Decimal
	tax   decimal.Decimal
	total decimal.Decimal

	// document is the XML tax document, set when the invoice is issued
	document string
	// artifact is the rendered PDF
	artifact []byte

	trackingID        string
	authorityResponse string

	issuedAt   *time.Time
	sentAt     *time.Time
	resolvedAt *time.Time

	// attempts and lastError describe failed pipeline steps
	attempts  int
	lastError string

	createdAt time.Time
	updatedAt time.Time

	events        kernel.EventRecorder
	isConstructed bool
}

// NewInvoice creates an invoice in PendingIssue status and records a Generated
// event. total is the order total; net and tax are derived with SplitVAT.
func NewInvoice(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	number string,
	total decimal.Decimal,
	emitter Party,
	receiver Party,
	at time.Time,
) (*Invoice, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if err := customerID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("customer id", err))
	}
	if strings.TrimSpace(number) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("invoice number"))
	}
	if err := kernel.ValidatePositiveAmount("invoice total", total); err != nil {
		problems = append(problems, err)
	}
	problems = append(problems, emitter.validateEmitter(), receiver.validateReceiver())
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	net, tax := SplitVAT(total)
	inv := &Invoice{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		number:        number,
		status:        PendingIssue,
		emitter:       emitter,
		receiver:      receiver,
		net:           net,
		tax:           tax,
		total:         net.Add(tax),
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	inv.events.Record(Generated{
		InvoiceID:  inv.id,
		OrderID:    inv.orderID,
		CustomerID: inv.customerID,
		Number:     inv.number,
		Total:      inv.total,
		At:         at,
	})

	return inv, nil
}

// State is the persisted form used by RestoreInvoice.
type State struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	CustomerID        kernel.UUID
	Number            string
	Status            Status
	Emitter           Party
	Receiver          Party
	Net               decimal.Decimal
	Tax               decimal.Decimal
	Total             decimal.Decimal
	Document          string
	Artifact          []byte
	TrackingID        string
	AuthorityResponse string
	IssuedAt          *time.Time
	SentAt            *time.Time
	ResolvedAt        *time.Time
	Attempts          int
	LastError         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func RestoreInvoice(state State) (*Invoice, error) {
	if err := errors.Join(state.ID.Validate(), state.OrderID.Validate(), state.Status.Validate()); err != nil {
		return nil, err
	}
	return &Invoice{
		id:                state.ID,
		orderID:           state.OrderID,
		customerID:        state.CustomerID,
		number:            state.Number,
		status:            state.Status,
		emitter:           state.Emitter,
		receiver:          state.Receiver,
		net:               state.Net,
		tax:               state.Tax,
		total:             state.Total,
		document:          state.Document,
		artifact:          state.Artifact,
		trackingID:        state.TrackingID,
		authorityResponse: state.AuthorityResponse,
		issuedAt:          state.IssuedAt,
		sentAt:            state.SentAt,
		resolvedAt:        state.ResolvedAt,
		attempts:          state.Attempts,
		lastError:         state.LastError,
		createdAt:         state.CreatedAt,
		updatedAt:         state.UpdatedAt,
		isConstructed:     true,
	}, nil
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID { return i.id }
func (i *Invoice) OrderID() kernel.UUID { return i.orderID }
func (i *Invoice) CustomerID() kernel.UUID { return i.customerID }
func (i *Invoice) Number() string { return i.number }
func (i *Invoice) Status() Status { return i.status }
func (i *Invoice) Emitter() Party { return i.emitter }
func (i *Invoice) Receiver() Party { return i.receiver }
func (i *Invoice) Net() decimal.Decimal { return i.net }
func (i *Invoice) Tax() decimal.Decimal { return i.tax }
func (i *Invoice) Total() decimal.Decimal { return i.total }
func (i *Invoice) Document() string { return i.document }
func (i *Invoice) Artifact() []byte { return i.artifact }
func (i *Invoice) TrackingID() string { return i.trackingID }
func (i *Invoice) AuthorityResponse() string { return i.authorityResponse }
func (i *Invoice) IssuedAt() *time.Time { return i.issuedAt }
func (i *Invoice) SentAt() *time.Time { return i.sentAt }
func (i *Invoice) ResolvedAt() *time.Time { return i.resolvedAt }
func (i *Invoice) Attempts() int { return i.attempts }
func (i *Invoice) LastError() string { return i.lastError }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time { return i.updatedAt }

func (i *Invoice) PullEvents() []kernel.DomainEvent {
	return i.events.PullEvents()
}

// NeedsDocument reports whether the XML document step is still pending.
func (i *Invoice) NeedsDocument() bool {
	return i.status == PendingIssue
}

// NeedsSending reports whether the authority submission step is still pending.
func (i *Invoice) NeedsSending() bool {
	return i.status == Issued
}

// NeedsArtifact reports whether the PDF has not been rendered yet.
func (i *Invoice) NeedsArtifact() bool {
	return len(i.artifact) == 0
}

// MarkIssued stores the XML document and moves PendingIssue -> Issued.
func (i *Invoice) MarkIssued(document string, at time.Time) error {
	if strings.TrimSpace(document) == "" {
		return errs.NewValueIsRequiredError("invoice document")
	}
	next, err := i.status.transitionTo(Issued)
	if err != nil {
		return err
	}

	issued := at
	i.status = next
	i.document = document
	i.issuedAt = &issued
	i.lastError = ""
	i.updatedAt = at
	return nil
}

// MarkSent stores the authority tracking id and moves Issued -> Sent.
func (i *Invoice) MarkSent(trackingID string, at time.Time) error {
	if strings.TrimSpace(trackingID) == "" {
		return errs.NewValueIsRequiredError("tracking id")
	}
	next, err := i.status.transitionTo(Sent)
	if err != nil {
		return err
	}

	sent := at
	i.status = next
	i.trackingID = trackingID
	i.sentAt = &sent
	i.lastError = ""
	i.updatedAt = at
	return nil
}

// RecordAuthorityResponse resolves a sent invoice as accepted or rejected.
func (i *Invoice) RecordAuthorityResponse(accepted bool, response string, at time.Time) error {
	target := Rejected
	if accepted {
		target = Accepted
	}
	next, err := i.status.transitionTo(target)
	if err != nil {
		return err
	}

	resolved := at
	i.status = next
	i.authorityResponse = strings.TrimSpace(response)
	i.resolvedAt = &resolved
	i.updatedAt = at
	return nil
}

// AttachArtifact stores the rendered PDF. It does not change the status.
func (i *Invoice) AttachArtifact(pdf []byte, at time.Time) error {
	if len(pdf) == 0 {
		return errs.NewValueIsRequiredError("invoice artifact")
	}
	i.artifact = append([]byte(nil), pdf...)
	i.updatedAt = at
	return nil
}

// RecordFailure notes a failed pipeline step without touching the status, so
// the step is retried from the same checkpoint.
func (i *Invoice) RecordFailure(step string, cause error, at time.Time) {
	i.attempts++
	i.lastError = fmt.Sprintf("%s: %v", step, cause)
	i.updatedAt = at
}
