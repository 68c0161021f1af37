package kernel

import (
	"fmt"
	"sort"
	"strings"

	"checkout/internal/pkg/errs"
)

// Capability is a permission an actor holds. Capabilities are checked explicitly
// by use cases; there is no role hierarchy.
type Capability int

const (
	UnknownCapability Capability = iota
	Administrator
	Salesperson
	Warehouse
	Accountant
	Customer
)

func getCapabilityStrings() map[Capability]string {
	return map[Capability]string{
		Administrator: "administrator",
		Salesperson:   "salesperson",
		Warehouse:     "warehouse",
		Accountant:    "accountant",
		Customer:      "customer",
	}
}

func (c Capability) String() string {
	if s, ok := getCapabilityStrings()[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCapability converts the token claim form ("accountant") into a Capability.
func ParseCapability(s string) (Capability, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for c, name := range getCapabilityStrings() {
		if name == normalized {
			return c, nil
		}
	}
	return UnknownCapability, errs.NewValueIsInvalidErrorWithCause("capability", fmt.Errorf("%q is not a known capability", s))
}

// CapabilitySet is an immutable set of capabilities.
type CapabilitySet struct {
	bits uint32
}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var set CapabilitySet
	for _, c := range caps {
		if _, ok := getCapabilityStrings()[c]; ok {
			set.bits |= 1 << uint(c)
		}
	}
	return set
}

func (s CapabilitySet) Has(c Capability) bool {
	return c != UnknownCapability && s.bits&(1<<uint(c)) != 0
}

// HasAny reports whether at least one of caps is in the set.
func (s CapabilitySet) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}

func (s CapabilitySet) IsEmpty() bool {
	return s.bits == 0
}

// Strings returns the sorted names of the capabilities in the set.
func (s CapabilitySet) Strings() []string {
	names := make([]string, 0)
	for c, name := range getCapabilityStrings() {
		if s.Has(c) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Actor is the authenticated principal behind a command.
type Actor struct {
	id           UUID
	capabilities CapabilitySet
	system       bool
}

var systemActorID = UUID{id: [16]byte{15: 1}}

// NewActor requires a valid id and at least one capability.
func NewActor(id UUID, caps ...Capability) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	set := NewCapabilitySet(caps...)
	if set.IsEmpty() {
		return Actor{}, errs.NewValueIsRequiredError("capabilities")
	}
	return Actor{id: id, capabilities: set}, nil
}

// SystemActor is used for transitions driven by the service itself, such as
// settling an order after the gateway approves its payment.
func SystemActor() Actor {
	return Actor{
		id:           systemActorID,
		capabilities: NewCapabilitySet(Administrator),
		system:       true,
	}
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Capabilities() CapabilitySet {
	return a.capabilities
}

func (a Actor) IsSystem() bool {
	return a.system
}

// Can reports whether the actor holds any of caps.
func (a Actor) Can(caps ...Capability) bool {
	return a.capabilities.HasAny(caps...)
}

func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	if a.capabilities.IsEmpty() {
		return errs.NewValueIsRequiredError("capabilities")
	}
	return nil
}
