package mocks

import (
	"context"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, request *domain.CreateLoanProductRequest) (*domain.LoanProduct, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProduct), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*domain.LoanProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProduct), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, filter domain.LoanProductFilter) ([]*domain.LoanProduct, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanProduct), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, request *domain.UpdateLoanProductRequest) (*domain.LoanProduct, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProduct), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Create(ctx context.Context, actor domain.Actor, request *domain.CreateLoanApplicationRequest) (*domain.LoanApplication, error) {
	args := m.Called(ctx, actor, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanApplication), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, id string) (*domain.LoanApplicationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanApplicationDetail), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, filter domain.LoanApplicationFilter) ([]*domain.LoanApplication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanApplication), args.Error(1)
}

func (m *MockApplicationService) ListOngoing(ctx context.Context) ([]*domain.LoanApplication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanApplication), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, request *domain.UpdateLoanApplicationRequest) (*domain.LoanApplication, error) {
	args := m.Called(ctx, actor, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanApplication), args.Error(1)
}

type MockCollateralService struct {
	mock.Mock
}

func (m *MockCollateralService) Create(ctx context.Context, request *domain.CreateCollateralRequest) (*domain.Collateral, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collateral), args.Error(1)
}

func (m *MockCollateralService) Get(ctx context.Context, id string) (*domain.Collateral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collateral), args.Error(1)
}

func (m *MockCollateralService) List(ctx context.Context, filter domain.CollateralFilter) ([]*domain.Collateral, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Collateral), args.Error(1)
}

func (m *MockCollateralService) ListByApplication(ctx context.Context, applicationID string) ([]*domain.Collateral, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Collateral), args.Error(1)
}

func (m *MockCollateralService) Update(ctx context.Context, id string, request *domain.UpdateCollateralRequest) (*domain.Collateral, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collateral), args.Error(1)
}

func (m *MockCollateralService) UpdatePledgeStatus(ctx context.Context, id string, request *domain.UpdatePledgeStatusRequest) (*domain.Collateral, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collateral), args.Error(1)
}

// MockReconciler is a testify mock of the scheduler's reconcile dependency.
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) ReconcileAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
