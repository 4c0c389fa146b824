package repository

import (
	"context"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for loan product data operations
type ProductRepository interface {
	// Create creates a new loan product
	Create(ctx context.Context, product *domain.LoanProduct) error

	// GetByID retrieves a loan product, or sql.ErrNoRows
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanProduct, error)

	// List retrieves products, newest first
	List(ctx context.Context, filter domain.LoanProductFilter) ([]*domain.LoanProduct, error)

	// Update overwrites every mutable column of a product
	Update(ctx context.Context, product *domain.LoanProduct) error

	// Delete removes a product; it reports sql.ErrNoRows when nothing was deleted
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepository defines the interface for loan application data operations
type ApplicationRepository interface {
	// Create inserts an application; a taken application number yields ErrDuplicate
	Create(ctx context.Context, app *domain.LoanApplication) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error)

	// GetByIDForUpdate locks the row for the rest of the transaction where the driver supports it
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error)

	ExistsByNumber(ctx context.Context, applicationNumber string) (bool, error)

	// List retrieves applications matching filter, newest first
	List(ctx context.Context, filter domain.LoanApplicationFilter) ([]*domain.LoanApplication, error)

	ListByStatuses(ctx context.Context, statuses []domain.ApplicationStatus) ([]*domain.LoanApplication, error)

	// ListIDs returns the id of every application
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	// Update persists status and disbursement details
	Update(ctx context.Context, app *domain.LoanApplication) error

	UpdateCollateralValue(ctx context.Context, id uuid.UUID, value decimal.Decimal) error
}

// CollateralRepository defines the interface for collateral data operations
type CollateralRepository interface {
	Create(ctx context.Context, collateral *domain.Collateral) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collateral, error)

	// List retrieves collaterals matching filter, newest first
	List(ctx context.Context, filter domain.CollateralFilter) ([]*domain.Collateral, error)

	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Collateral, error)

	Update(ctx context.Context, collateral *domain.Collateral) error

	// PledgeAllByApplication marks every collateral of an application pledged at the given time
	PledgeAllByApplication(ctx context.Context, applicationID uuid.UUID, at time.Time) (int64, error)

	// SumTotalValueByApplication re-sums total_value over the persisted set
	SumTotalValueByApplication(ctx context.Context, applicationID uuid.UUID) (decimal.Decimal, error)
}

// Repos groups repositories bound to the same connection or transaction.
type Repos struct {
	Products     ProductRepository
	Applications ApplicationRepository
	Collaterals  CollateralRepository
}

// Store hands out repositories and runs units of work in a transaction.
type Store interface {
	Repos() Repos

	WithinTx(ctx context.Context, fn func(r Repos) error) error

	// WithinApplicationTx locks the application row up front so writers of its
	// aggregate collateral value are serialised.
	WithinApplicationTx(ctx context.Context, applicationID uuid.UUID, fn func(r Repos, app *domain.LoanApplication) error) error

	Ping(ctx context.Context) error
}
