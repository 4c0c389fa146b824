package handler

import (
	"context"

	"github.com/segyhp/lamf-engine/internal/domain"
)

// ProductService is the product catalogue as the handlers use it.
type ProductService interface {
	Create(ctx context.Context, request *domain.CreateLoanProductRequest) (*domain.LoanProduct, error)
	Get(ctx context.Context, id string) (*domain.LoanProduct, error)
	List(ctx context.Context, filter domain.LoanProductFilter) ([]*domain.LoanProduct, error)
	Update(ctx context.Context, id string, request *domain.UpdateLoanProductRequest) (*domain.LoanProduct, error)
	Delete(ctx context.Context, id string) error
}

type ApplicationService interface {
	Create(ctx context.Context, actor domain.Actor, request *domain.CreateLoanApplicationRequest) (*domain.LoanApplication, error)
	Get(ctx context.Context, id string) (*domain.LoanApplicationDetail, error)
	List(ctx context.Context, filter domain.LoanApplicationFilter) ([]*domain.LoanApplication, error)
	ListOngoing(ctx context.Context) ([]*domain.LoanApplication, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, request *domain.UpdateLoanApplicationRequest) (*domain.LoanApplication, error)
}

type CollateralService interface {
	Create(ctx context.Context, request *domain.CreateCollateralRequest) (*domain.Collateral, error)
	Get(ctx context.Context, id string) (*domain.Collateral, error)
	List(ctx context.Context, filter domain.CollateralFilter) ([]*domain.Collateral, error)
	ListByApplication(ctx context.Context, applicationID string) ([]*domain.Collateral, error)
	Update(ctx context.Context, id string, request *domain.UpdateCollateralRequest) (*domain.Collateral, error)
	UpdatePledgeStatus(ctx context.Context, id string, request *domain.UpdatePledgeStatusRequest) (*domain.Collateral, error)
}
