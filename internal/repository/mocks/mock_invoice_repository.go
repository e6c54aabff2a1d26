package mocks

import (
	"context"

	"invoicedl/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Lookup(ctx context.Context, accountNumber, month string) (*model.InvoiceIndex, error) {
	args := m.Called(ctx, accountNumber, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceIndex), args.Error(1)
}
