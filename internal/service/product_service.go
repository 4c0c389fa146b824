package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/internal/repository"
	customError "github.com/segyhp/lamf-engine/pkg/errors"
	"github.com/segyhp/lamf-engine/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService struct {
	repo      repository.ProductRepository
	cache     ProductCache
	validator *validation.Validator
	log       *zap.Logger
}

func NewProductService(
	repo repository.ProductRepository,
	cache ProductCache,
	validator *validation.Validator,
	log *zap.Logger,
) *ProductService {
	return &ProductService{
		repo:      repo,
		cache:     cache,
		validator: validator,
		log:       log,
	}
}

// Create validates the request, checks the product bounds and stores it active by default.
func (s *ProductService) Create(ctx context.Context, request *domain.CreateLoanProductRequest) (*domain.LoanProduct, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.FirstMessage(err))
	}

	now := time.Now().UTC()
	product := &domain.LoanProduct{
		ID:                  uuid.New(),
		Name:                request.Name,
		Description:         request.Description,
		MinLTV:              request.MinLTV,
		MaxLTV:              request.MaxLTV,
		MinInterestRate:     request.MinInterestRate,
		MaxInterestRate:     request.MaxInterestRate,
		TenureOptions:       domain.TenureOptions(request.TenureOptions),
		MinLoanAmount:       request.MinLoanAmount,
		MaxLoanAmount:       request.MaxLoanAmount,
		EligibilityCriteria: request.EligibilityCriteria,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if request.IsActive != nil {
		product.IsActive = *request.IsActive
	}

	if err := product.CheckBounds(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.Info("loan product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	return product, nil
}

// Get reads through the cache. Cache failures are logged and served from the database.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.LoanProduct, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, customError.WrapProductNotFound(id)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, productID)
		if err != nil {
			s.log.Warn("product cache read failed", zap.String("product_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.repo.GetByID(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapProductNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.log.Warn("product cache write failed", zap.String("product_id", id), zap.Error(err))
		}
	}

	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter domain.LoanProductFilter) ([]*domain.LoanProduct, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return products, nil
}

// Update applies a partial update and re-checks bounds on the merged product.
func (s *ProductService) Update(ctx context.Context, id string, request *domain.UpdateLoanProductRequest) (*domain.LoanProduct, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.FirstMessage(err))
	}

	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, customError.WrapProductNotFound(id)
	}

	product, err := s.repo.GetByID(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapProductNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	request.Apply(product)
	if err := product.CheckBounds(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapProductNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidate(ctx, productID)
	return product, nil
}

// Delete removes a product. Existing applications keep their reference.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return customError.WrapProductNotFound(id)
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapProductNotFound(id)
		}
		return customError.WrapDatabaseError(err)
	}

	s.invalidate(ctx, productID)
	s.log.Info("loan product deleted", zap.String("product_id", id))
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn("product cache invalidation failed", zap.String("product_id", id.String()), zap.Error(err))
	}
}
