package payment

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Status mirrors the payment gateway's payment status vocabulary.
type Status int

const (
	Unknown Status = iota
	Pending
	Approved
	Authorized
	InProcess
	InMediation
	Rejected
	Cancelled
	Refunded
	ChargedBack
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:     "pending",
		Approved:    "approved",
		Authorized:  "authorized",
		InProcess:   "in_process",
		InMediation: "in_mediation",
		Rejected:    "rejected",
		Cancelled:   "cancelled",
		Refunded:    "refunded",
		ChargedBack: "charged_back",
	}
}

// ParseStatus converts a gateway status string.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a gateway status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}
