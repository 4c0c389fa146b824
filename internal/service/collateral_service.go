package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/internal/repository"
	customError "github.com/segyhp/lamf-engine/pkg/errors"
	"github.com/segyhp/lamf-engine/pkg/utils"
	"github.com/segyhp/lamf-engine/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollateralService stores collateral records and keeps each application's
// collateral value equal to the sum over its records.
type CollateralService struct {
	store     repository.Store
	validator *validation.Validator
	log       *zap.Logger
	now       func() time.Time
}

func NewCollateralService(store repository.Store, validator *validation.Validator, log *zap.Logger) *CollateralService {
	return &CollateralService{
		store:     store,
		validator: validator,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create attaches a collateral to an existing application and re-sums its value.
func (s *CollateralService) Create(ctx context.Context, request *domain.CreateCollateralRequest) (*domain.Collateral, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.FirstMessage(err))
	}

	appID, err := uuid.Parse(request.LoanApplicationID)
	if err != nil {
		return nil, customError.WrapApplicationNotFound(request.LoanApplicationID)
	}

	now := s.now()
	collateral := &domain.Collateral{
		ID:                uuid.New(),
		LoanApplicationID: appID,
		FundName:          request.FundName,
		SchemeCode:        request.SchemeCode,
		AMC:               request.AMC,
		FolioNumber:       request.FolioNumber,
		Units:             request.Units,
		CurrentNAV:        request.CurrentNAV,
		TotalValue:        utils.CalculateTotalValue(request.Units, request.CurrentNAV),
		PledgeStatus:      domain.PledgeStatusUnpledged,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.store.WithinApplicationTx(ctx, appID, func(r repository.Repos, _ *domain.LoanApplication) error {
		if err := r.Collaterals.Create(ctx, collateral); err != nil {
			return err
		}
		_, err := syncCollateralValue(ctx, r, appID)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapApplicationNotFound(request.LoanApplicationID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return collateral, nil
}

func (s *CollateralService) Get(ctx context.Context, id string) (*domain.Collateral, error) {
	collateralID, err := uuid.Parse(id)
	if err != nil {
		return nil, customError.WrapCollateralNotFound(id)
	}

	collateral, err := s.store.Repos().Collaterals.GetByID(ctx, collateralID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapCollateralNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return collateral, nil
}

func (s *CollateralService) List(ctx context.Context, filter domain.CollateralFilter) ([]*domain.Collateral, error) {
	if filter.PledgeStatus != "" && !filter.PledgeStatus.IsValid() {
		return nil, customError.WrapInvalidPledgeStatus(string(filter.PledgeStatus))
	}

	collaterals, err := s.store.Repos().Collaterals.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return collaterals, nil
}

// ListByApplication returns the collateral of one application; an unknown id yields an empty list.
func (s *CollateralService) ListByApplication(ctx context.Context, applicationID string) ([]*domain.Collateral, error) {
	appID, err := uuid.Parse(applicationID)
	if err != nil {
		return []*domain.Collateral{}, nil
	}

	collaterals, err := s.store.Repos().Collaterals.ListByApplication(ctx, appID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return collaterals, nil
}

// Update applies a partial update. A change to units or NAV recomputes the total
// value, and the owning application is re-summed either way.
func (s *CollateralService) Update(ctx context.Context, id string, request *domain.UpdateCollateralRequest) (*domain.Collateral, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.FirstMessage(err))
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *domain.Collateral
	err = s.store.WithinApplicationTx(ctx, current.LoanApplicationID, func(r repository.Repos, _ *domain.LoanApplication) error {
		// re-read under the application lock
		collateral, err := r.Collaterals.GetByID(ctx, current.ID)
		if err != nil {
			return err
		}

		if request.FundName != nil {
			collateral.FundName = *request.FundName
		}
		if request.SchemeCode != nil {
			collateral.SchemeCode = *request.SchemeCode
		}
		if request.AMC != nil {
			collateral.AMC = *request.AMC
		}
		if request.FolioNumber != nil {
			collateral.FolioNumber = *request.FolioNumber
		}
		if request.Units != nil {
			collateral.Units = *request.Units
		}
		if request.CurrentNAV != nil {
			collateral.CurrentNAV = *request.CurrentNAV
		}
		if request.Units != nil || request.CurrentNAV != nil {
			collateral.TotalValue = utils.CalculateTotalValue(collateral.Units, collateral.CurrentNAV)
		}

		if err := r.Collaterals.Update(ctx, collateral); err != nil {
			return err
		}
		if _, err := syncCollateralValue(ctx, r, collateral.LoanApplicationID); err != nil {
			return err
		}

		updated = collateral
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapCollateralNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return updated, nil
}

// UpdatePledgeStatus moves a collateral to pledged, unpledged or released.
// Pledging again refreshes the pledge date.
func (s *CollateralService) UpdatePledgeStatus(ctx context.Context, id string, request *domain.UpdatePledgeStatusRequest) (*domain.Collateral, error) {
	status := domain.PledgeStatus(request.PledgeStatus)
	if !status.IsValid() {
		return nil, customError.WrapInvalidPledgeStatus(request.PledgeStatus)
	}

	collateral, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	collateral.PledgeStatus = status
	switch status {
	case domain.PledgeStatusPledged:
		collateral.PledgeDate = &now
	case domain.PledgeStatusReleased:
		collateral.ReleaseDate = &now
	}

	if err := s.store.Repos().Collaterals.Update(ctx, collateral); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCollateralNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.Info("collateral pledge status updated",
		zap.String("collateral_id", collateral.ID.String()),
		zap.String("pledge_status", string(status)),
	)
	return collateral, nil
}

// ReconcileAll re-sums every application's collateral value and returns how many
// stored values were corrected.
func (s *CollateralService) ReconcileAll(ctx context.Context) (int, error) {
	ids, err := s.store.Repos().Applications.ListIDs(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	corrected := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return corrected, err
		}

		err := s.store.WithinApplicationTx(ctx, id, func(r repository.Repos, app *domain.LoanApplication) error {
			total, err := r.Collaterals.SumTotalValueByApplication(ctx, id)
			if err != nil {
				return err
			}
			if total.Equal(app.CollateralValue) {
				return nil
			}
			if err := r.Applications.UpdateCollateralValue(ctx, id, total); err != nil {
				return err
			}
			s.log.Warn("collateral value drift corrected",
				zap.String("application_id", id.String()),
				zap.String("stored", app.CollateralValue.String()),
				zap.String("actual", total.String()),
			)
			corrected++
			return nil
		})
		if err != nil {
			return corrected, customError.WrapDatabaseError(err)
		}
	}

	return corrected, nil
}
