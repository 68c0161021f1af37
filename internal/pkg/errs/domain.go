package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrGateway            = errors.New("external gateway failure")
	ErrUnknownTransaction = errors.New("unknown transaction")
	ErrDuplicateInvoice   = errors.New("invoice already exists")
	ErrAlreadyReconciled  = errors.New("already reconciled")
	ErrPermissionDenied   = errors.New("permission denied")
)

// InvalidTransitionError is a state machine violation. Current and Target are the
// string forms of the statuses involved.
type InvalidTransitionError struct {
	Entity  string
	Current string
	Target  string
}

func NewInvalidTransitionError(entity string, current, target fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, Current: current.String(), Target: target.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.Current, e.Target)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// GatewayError wraps a failed call to an external dependency. It is transient:
// callers may retry the operation later.
type GatewayError struct {
	Operation string
	Cause     error
}

func NewGatewayError(operation string, cause error) *GatewayError {
	return &GatewayError{Operation: operation, Cause: cause}
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrGateway, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrGateway, e.Operation)
}

func (e *GatewayError) Unwrap() error {
	return ErrGateway
}

// UnknownTransactionError is returned for webhook notifications that reference a
// preference this service never created.
type UnknownTransactionError struct {
	PreferenceID string
}

func NewUnknownTransactionError(preferenceID string) *UnknownTransactionError {
	return &UnknownTransactionError{PreferenceID: preferenceID}
}

func (e *UnknownTransactionError) Error() string {
	return fmt.Sprintf("%s: preference %q", ErrUnknownTransaction, e.PreferenceID)
}

func (e *UnknownTransactionError) Unwrap() error {
	return ErrUnknownTransaction
}

type DuplicateInvoiceError struct {
	OrderID string
}

func NewDuplicateInvoiceError(orderID string) *DuplicateInvoiceError {
	return &DuplicateInvoiceError{OrderID: orderID}
}

func (e *DuplicateInvoiceError) Error() string {
	return fmt.Sprintf("%s: order %s", ErrDuplicateInvoice, e.OrderID)
}

func (e *DuplicateInvoiceError) Unwrap() error {
	return ErrDuplicateInvoice
}

// AlreadyReconciledError names which side of the pair (transaction or invoice)
// already carries a reconciliation record.
type AlreadyReconciledError struct {
	Side string
	ID   string
}

func NewAlreadyReconciledError(side, id string) *AlreadyReconciledError {
	return &AlreadyReconciledError{Side: side, ID: id}
}

func (e *AlreadyReconciledError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAlreadyReconciled, e.Side, e.ID)
}

func (e *AlreadyReconciledError) Unwrap() error {
	return ErrAlreadyReconciled
}

type PermissionError struct {
	ActorID string
	Action  string
}

func NewPermissionError(actorID, action string) *PermissionError {
	return &PermissionError{ActorID: actorID, Action: action}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrPermissionDenied, e.ActorID, e.Action)
}

func (e *PermissionError) Unwrap() error {
	return ErrPermissionDenied
}
