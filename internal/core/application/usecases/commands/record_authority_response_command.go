package commands

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrRecordAuthorityResponseCommandIsNotConstructed = errors.New(
	"RecordAuthorityResponseCommand must be created via NewRecordAuthorityResponseCommand constructor",
)

// RecordAuthorityResponseCommand stores the fiscal authority's verdict on a
// sent invoice.
type RecordAuthorityResponseCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	accepted  bool
	response  string
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewRecordAuthorityResponseCommand(
	invoiceID kernel.UUID,
	accepted bool,
	response string,
	actor kernel.Actor,
) (RecordAuthorityResponseCommand, error) {
	if err := errors.Join(invoiceID.Validate(), actor.Validate()); err != nil {
		return RecordAuthorityResponseCommand{}, err
	}

	return RecordAuthorityResponseCommand{
		invoiceID: invoiceID,
		accepted:  accepted,
		response:  strings.TrimSpace(response),
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordAuthorityResponseCommand) Validate() error {
	return c.guard.Validate(ErrRecordAuthorityResponseCommandIsNotConstructed)
}

func (c RecordAuthorityResponseCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

func (c RecordAuthorityResponseCommand) Accepted() bool {
	return c.accepted
}

func (c RecordAuthorityResponseCommand) Response() string {
	return c.response
}

func (c RecordAuthorityResponseCommand) Actor() kernel.Actor {
	return c.actor
}
