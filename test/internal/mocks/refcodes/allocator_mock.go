package refcodes

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type AllocatorMock struct {
	mock.Mock
}

func NewAllocatorMock() *AllocatorMock {
	return &AllocatorMock{}
}

func (m *AllocatorMock) Allocate(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
