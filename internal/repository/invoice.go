package repository

import (
	"context"
	"fmt"

	"invoicedl/internal/model"
)

// InvoiceRepository resolves which invoices the billing system emitted for an
// account in a given month. Strictly persistence; no business logic here.
type InvoiceRepository interface {
	// Lookup returns the customer's display name and the notice ids produced
	// for (account, month), in row order. When no rows match it returns a
	// *NotFoundError and no index.
	Lookup(ctx context.Context, accountNumber, month string) (*model.InvoiceIndex, error)
}

// NotFoundError reports that an account has no invoices for the requested month.
type NotFoundError struct {
	AccountNumber string
	Month         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No invoices found for account %s in %s.", e.AccountNumber, e.Month)
}
