package invoice

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	PendingIssue
	Issued
	Sent
	Accepted
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		PendingIssue: "pending_issue",
		Issued:       "issued",
		Sent:         "sent",
		Accepted:     "accepted",
		Rejected:     "rejected",
	}
}

func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		PendingIssue: {Issued},
		Issued:       {Sent},
		Sent:         {Accepted, Rejected},
		Accepted:     {},
		Rejected:     {},
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("invoice status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("invoice status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) transitionTo(target Status) (Status, error) {
	for _, next := range getTransitions()[s] {
		if next == target {
			return target, nil
		}
	}
	return s, errs.NewInvalidTransitionError("invoice", s, target)
}
