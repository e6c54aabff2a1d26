package mocks

import (
	"context"
	"io"

	"invoicedl/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, size int64, opt storage.PutOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, size, opt)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}
