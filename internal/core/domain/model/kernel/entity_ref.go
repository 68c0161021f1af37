package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// EntityKind tags the aggregate an EntityRef points at.
type EntityKind int

const (
	UnknownEntity EntityKind = iota
	OrderEntity
	PaymentTransactionEntity
	InvoiceEntity
	ReconciliationEntity
)

func getEntityKindStrings() map[EntityKind]string {
	return map[EntityKind]string{
		OrderEntity:              "order",
		PaymentTransactionEntity: "payment_transaction",
		InvoiceEntity:            "invoice",
		ReconciliationEntity:     "reconciliation",
	}
}

func (k EntityKind) String() string {
	if s, ok := getEntityKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// EntityRef is a typed pointer to an aggregate (kind + id), used wherever a
// notification or log entry needs to refer to "some entity".
type EntityRef struct {
	kind EntityKind
	id   UUID
}

func NewEntityRef(kind EntityKind, id UUID) (EntityRef, error) {
	if _, ok := getEntityKindStrings()[kind]; !ok {
		return EntityRef{}, errs.NewValueIsInvalidErrorWithCause("entity kind", fmt.Errorf("%d is not a valid kind", kind))
	}
	if err := id.Validate(); err != nil {
		return EntityRef{}, err
	}
	return EntityRef{kind: kind, id: id}, nil
}

// MustEntityRef is NewEntityRef for ids already validated by their aggregate.
func MustEntityRef(kind EntityKind, id UUID) EntityRef {
	ref, err := NewEntityRef(kind, id)
	if err != nil {
		panic(err)
	}
	return ref
}

func (r EntityRef) Kind() EntityKind {
	return r.kind
}

func (r EntityRef) ID() UUID {
	return r.id
}

// String renders "kind:id", e.g. "order:0f8fad5b-d9cb-469f-a165-70867728950e".
func (r EntityRef) String() string {
	return r.kind.String() + ":" + r.id.String()
}
