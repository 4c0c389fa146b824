package mocks

import (
	"context"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a testify mock of repository.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.LoanProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProduct), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.LoanProductFilter) ([]*domain.LoanProduct, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanProduct), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.LoanProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductCache is a testify mock of service.ProductCache
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, id uuid.UUID) (*domain.LoanProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProduct), args.Error(1)
}

func (m *MockProductCache) Set(ctx context.Context, product *domain.LoanProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNumberGenerator hands out application numbers in the order they are queued.
type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) Next() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
