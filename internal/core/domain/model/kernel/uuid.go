package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, transactions, invoices, reconciliations and actors.
// It wraps github.com/google/uuid; the zero value is invalid.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	ownerID, err := kernel.UUIDFromString(claims.Subject)
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the textual form, as received in URLs and token subjects.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores an identifier read from persistence.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Raw returns the wrapped uuid.UUID (a [16]byte array, not a slice). Storage
// DTOs and API types hold this form; use raw[:] for a byte slice.
func (u UUID) Raw() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
