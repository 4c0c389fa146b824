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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NumberGenerator produces candidate application numbers.
type NumberGenerator interface {
	Next() (string, error)
}

// ProductResolver looks up the product an application is priced against.
type ProductResolver interface {
	Get(ctx context.Context, id string) (*domain.LoanProduct, error)
}

type ApplicationOptions struct {
	// NumberAttempts bounds how many candidate numbers are tried per creation.
	NumberAttempts int
	// EnforceTransitions restricts status updates to the lifecycle diagram.
	EnforceTransitions bool
}

type ApplicationService struct {
	store     repository.Store
	products  ProductResolver
	pricing   *PricingEngine
	numbers   NumberGenerator
	validator *validation.Validator
	opts      ApplicationOptions
	log       *zap.Logger
	now       func() time.Time
}

func NewApplicationService(
	store repository.Store,
	products ProductResolver,
	pricing *PricingEngine,
	numbers NumberGenerator,
	validator *validation.Validator,
	opts ApplicationOptions,
	log *zap.Logger,
) *ApplicationService {
	if opts.NumberAttempts <= 0 {
		opts.NumberAttempts = 10
	}
	return &ApplicationService{
		store:     store,
		products:  products,
		pricing:   pricing,
		numbers:   numbers,
		validator: validator,
		opts:      opts,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create prices the request, assigns an unused application number and stores the
// application at pending together with one unpledged collateral per submitted fund.
func (s *ApplicationService) Create(ctx context.Context, actor domain.Actor, request *domain.CreateLoanApplicationRequest) (*domain.LoanApplication, error) {
	// 1. Validate required fields
	if err := s.validator.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.FirstMessage(err))
	}

	// 2. Resolve the product (cache first)
	product, err := s.products.Get(ctx, request.LoanProductID)
	if err != nil {
		return nil, err
	}

	// 3. Price it; every failure here is terminal and nothing has been written yet
	funds := request.MutualFunds
	if funds == nil {
		funds = []domain.MutualFund{}
	}
	quote, err := s.pricing.Quote(product, request.RequestedAmount, funds)
	if err != nil {
		return nil, err
	}

	now := s.now()
	app := &domain.LoanApplication{
		ID:              uuid.New(),
		CustomerInfo:    request.CustomerInfo,
		LoanProductID:   product.ID,
		RequestedAmount: request.RequestedAmount,
		MutualFunds:     domain.MutualFunds(funds),
		CalculatedLTV:   quote.CalculatedLTV,
		InterestRate:    quote.InterestRate,
		Tenure:          request.Tenure,
		Status:          domain.StatusPending,
		CollateralValue: quote.CollateralValue,
		CreatedBy:       actor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// 4. Find an unused number and persist. A number taken between the check and the
	// insert aborts that transaction and costs one attempt.
	repos := s.store.Repos()
	for attempt := 1; attempt <= s.opts.NumberAttempts; attempt++ {
		number, err := s.numbers.Next()
		if err != nil {
			return nil, customError.WrapApplicationNumberGeneration(err)
		}

		taken, err := repos.Applications.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if taken {
			continue
		}

		app.ApplicationNumber = number
		err = s.store.WithinTx(ctx, func(r repository.Repos) error {
			return s.persistNew(ctx, r, app)
		})
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("application number collided on insert", zap.String("application_number", number))
			continue
		}
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		s.log.Info("loan application created",
			zap.String("application_id", app.ID.String()),
			zap.String("application_number", app.ApplicationNumber),
			zap.String("created_by_kind", string(actor.Kind)),
			zap.String("created_by_id", actor.ID),
			zap.String("ltv", app.CalculatedLTV.String()),
			zap.String("interest_rate", app.InterestRate.String()),
		)
		return app, nil
	}

	return nil, customError.WrapApplicationNumberExhausted(s.opts.NumberAttempts)
}

func (s *ApplicationService) persistNew(ctx context.Context, r repository.Repos, app *domain.LoanApplication) error {
	if err := r.Applications.Create(ctx, app); err != nil {
		return err
	}

	for _, fund := range app.MutualFunds {
		total := decimal.Zero
		if fund.TotalValue != nil {
			total = *fund.TotalValue
		}
		collateral := &domain.Collateral{
			ID:                uuid.New(),
			LoanApplicationID: app.ID,
			FundName:          fund.FundName,
			SchemeCode:        fund.SchemeCode,
			AMC:               fund.AMC,
			FolioNumber:       fund.FolioNumber,
			Units:             fund.Units,
			CurrentNAV:        fund.CurrentNAV,
			TotalValue:        total,
			PledgeStatus:      domain.PledgeStatusUnpledged,
			CreatedAt:         app.CreatedAt,
			UpdatedAt:         app.CreatedAt,
		}
		if err := r.Collaterals.Create(ctx, collateral); err != nil {
			return err
		}
	}

	total, err := syncCollateralValue(ctx, r, app.ID)
	if err != nil {
		return err
	}
	app.CollateralValue = total
	return nil
}

// Get returns the application with its collateral records.
func (s *ApplicationService) Get(ctx context.Context, id string) (*domain.LoanApplicationDetail, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return nil, customError.WrapApplicationNotFound(id)
	}

	repos := s.store.Repos()
	app, err := repos.Applications.GetByID(ctx, appID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapApplicationNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	collaterals, err := repos.Collaterals.ListByApplication(ctx, appID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.LoanApplicationDetail{Application: app, Collaterals: collaterals}, nil
}

func (s *ApplicationService) List(ctx context.Context, filter domain.LoanApplicationFilter) ([]*domain.LoanApplication, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, customError.WrapInvalidStatus(string(filter.Status))
	}

	apps, err := s.store.Repos().Applications.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return apps, nil
}

// ListOngoing returns approved and disbursed applications, newest first.
func (s *ApplicationService) ListOngoing(ctx context.Context) ([]*domain.LoanApplication, error) {
	apps, err := s.store.Repos().Applications.ListByStatuses(ctx, domain.OngoingStatuses)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return apps, nil
}

// UpdateStatus sets status and disbursement details. Moving to disbursed pledges
// every collateral of the application in the same transaction.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, request *domain.UpdateLoanApplicationRequest) (*domain.LoanApplication, error) {
	var next domain.ApplicationStatus
	if request.Status != nil {
		next = domain.ApplicationStatus(*request.Status)
		if !next.IsValid() {
			return nil, customError.WrapInvalidStatus(*request.Status)
		}
	}
	if err := s.validator.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.FirstMessage(err))
	}

	appID, err := uuid.Parse(id)
	if err != nil {
		return nil, customError.WrapApplicationNotFound(id)
	}

	var updated *domain.LoanApplication
	err = s.store.WithinApplicationTx(ctx, appID, func(r repository.Repos, app *domain.LoanApplication) error {
		previous := app.Status

		if next != "" {
			override := request.Force && actor.IsAdmin()
			if s.opts.EnforceTransitions && !override && !previous.CanTransitionTo(next) {
				return customError.WrapInvalidTransition(string(previous), string(next))
			}
			app.Status = next
		}

		if request.DisbursedAmount != nil {
			app.DisbursedAmount = decimal.NewNullDecimal(*request.DisbursedAmount)
		}
		if request.DisbursedDate != nil {
			d := request.DisbursedDate.UTC()
			app.DisbursedDate = &d
		}

		if err := r.Applications.Update(ctx, app); err != nil {
			return err
		}

		if next == domain.StatusDisbursed {
			n, err := r.Collaterals.PledgeAllByApplication(ctx, app.ID, s.now())
			if err != nil {
				return err
			}
			s.log.Info("collateral pledged on disbursement",
				zap.String("application_id", app.ID.String()),
				zap.Int64("collaterals", n),
			)
		}

		if next != "" && next != previous {
			s.log.Info("loan application status changed",
				zap.String("application_id", app.ID.String()),
				zap.String("from", string(previous)),
				zap.String("to", string(next)),
				zap.String("actor_id", actor.ID),
				zap.Bool("forced", request.Force && actor.IsAdmin()),
			)
		}

		updated = app
		return nil
	})
	if err != nil {
		var be *customError.BusinessError
		if errors.As(err, &be) {
			return nil, err
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapApplicationNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return updated, nil
}

// syncCollateralValue re-sums the persisted collateral of an application and stores it.
func syncCollateralValue(ctx context.Context, r repository.Repos, applicationID uuid.UUID) (decimal.Decimal, error) {
	total, err := r.Collaterals.SumTotalValueByApplication(ctx, applicationID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := r.Applications.UpdateCollateralValue(ctx, applicationID, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
