package queries

import (
	"math"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ledgerCapabilities may read every transaction and invoice; anyone else only
// reads the ones of their own orders.
var ledgerCapabilities = []kernel.Capability{
	kernel.Administrator,
	kernel.Accountant,
}

// normalizePaging treats page 0 as the first page and pageSize 0 as
// DefaultPageSize.
func normalizePaging(page, pageSize int) (int, int, []error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	var problems []error
	if page < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("page", page, 1, math.MaxInt32))
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("page size", pageSize, 1, MaxPageSize))
	}
	return page, pageSize, problems
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
