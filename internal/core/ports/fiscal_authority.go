package ports

import "context"

// FiscalAuthorityClient submits tax documents to the fiscal authority.
type FiscalAuthorityClient interface {
	// SendDocument returns the authority's tracking id for the submission.
	SendDocument(ctx context.Context, folio string, xml string) (string, error)
}
