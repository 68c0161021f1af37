package order

import (
	"errors"
	"fmt"
	"strings"

	"checkout/internal/pkg/errs"
)

// DeliveryType tells how the customer receives the order.
type DeliveryType int

const (
	UnknownDeliveryType DeliveryType = iota
	Pickup
	Shipping
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		Pickup:   "pickup",
		Shipping: "shipping",
	}
}

func (d DeliveryType) String() string {
	if s, ok := getDeliveryTypeStrings()[d]; ok {
		return s
	}
	return "unknown"
}

func (d DeliveryType) Validate() error {
	if _, ok := getDeliveryTypeStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery type", fmt.Errorf("%d is not a valid delivery type", d))
	}
	return nil
}

func ParseDeliveryType(s string) (DeliveryType, error) {
	for d, name := range getDeliveryTypeStrings() {
		if name == s {
			return d, nil
		}
	}
	return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause("delivery type", fmt.Errorf("%q is not a valid delivery type", s))
}

// Contact is who the store talks to about the order.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Address is the shipping destination. Only shipping orders carry one.
type Address struct {
	Street string
	City   string
	Region string
}

// IsComplete reports whether street, city and region are all present.
func (a Address) IsComplete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.Region) != ""
}

// String joins the non-empty parts with ", ".
func (a Address) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.Region} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// DeliveryInfo groups the delivery related data captured at checkout.
type DeliveryInfo struct {
	deliveryType DeliveryType
	contact      Contact
	address      Address
	notes        string
}

// NewDeliveryInfo validates the delivery data.
//
// Rules:
//   - contact name and email are required
//   - shipping requires street, city and region
//   - pickup orders drop any address given
func NewDeliveryInfo(deliveryType DeliveryType, contact Contact, address Address, notes string) (DeliveryInfo, error) {
	if err := deliveryType.Validate(); err != nil {
		return DeliveryInfo{}, err
	}

	var problems []error
	if strings.TrimSpace(contact.Name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("contact name"))
	}
	if strings.TrimSpace(contact.Email) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("contact email"))
	}
	if deliveryType == Shipping && !address.IsComplete() {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
			"shipping address",
			errors.New("street, city and region are required for shipping"),
		))
	}
	if len(problems) > 0 {
		return DeliveryInfo{}, errors.Join(problems...)
	}

	if deliveryType == Pickup {
		address = Address{}
	}

	return DeliveryInfo{
		deliveryType: deliveryType,
		contact:      contact,
		address:      address,
		notes:        strings.TrimSpace(notes),
	}, nil
}

func (d DeliveryInfo) Type() DeliveryType {
	return d.deliveryType
}

func (d DeliveryInfo) Contact() Contact {
	return d.contact
}

func (d DeliveryInfo) Address() Address {
	return d.address
}

func (d DeliveryInfo) Notes() string {
	return d.notes
}
