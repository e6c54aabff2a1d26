package mocks

import (
	"context"

	"invoicedl/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) Acquire(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockDocumentFetcher struct {
	mock.Mock
}

func (m *MockDocumentFetcher) Fetch(ctx context.Context, invoiceID, bearer, targetPath string) (model.FetchStatus, error) {
	args := m.Called(ctx, invoiceID, bearer, targetPath)
	return args.Get(0).(model.FetchStatus), args.Error(1)
}
