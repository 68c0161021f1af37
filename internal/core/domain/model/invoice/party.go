package invoice

import (
	"strings"

	"checkout/internal/pkg/errs"
)

// Party is a snapshot of a fiscal identity. It is copied into the invoice at
// generation time; later changes to the source never reach an existing invoice.
type Party struct {
	TaxID     string
	LegalName string
	Activity  string
	Address   string
}

// validateEmitter requires the tax id and legal name the authority needs.
func (p Party) validateEmitter() error {
	if strings.TrimSpace(p.TaxID) == "" {
		return errs.NewValueIsRequiredError("emitter tax id")
	}
	if strings.TrimSpace(p.LegalName) == "" {
		return errs.NewValueIsRequiredError("emitter legal name")
	}
	return nil
}

func (p Party) validateReceiver() error {
	if strings.TrimSpace(p.LegalName) == "" {
		return errs.NewValueIsRequiredError("receiver legal name")
	}
	return nil
}
