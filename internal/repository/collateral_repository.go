package repository

import (
	"context"
	"strings"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const collateralColumns = `id, loan_application_id, fund_name, scheme_code, amc, folio_number, units, current_nav,
	total_value, pledge_status, pledge_date, release_date, created_at, updated_at`

type collateralRepository struct {
	db sqlx.ExtContext
}

func NewCollateralRepository(db sqlx.ExtContext) CollateralRepository {
	return &collateralRepository{db: db}
}

func (r *collateralRepository) Create(ctx context.Context, c *domain.Collateral) error {
	query := r.db.Rebind(`
		INSERT INTO collaterals (` + collateralColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.LoanApplicationID,
		c.FundName,
		c.SchemeCode,
		c.AMC,
		c.FolioNumber,
		c.Units,
		c.CurrentNAV,
		c.TotalValue,
		c.PledgeStatus,
		c.PledgeDate,
		c.ReleaseDate,
		c.CreatedAt,
		c.UpdatedAt,
	)

	return err
}

func (r *collateralRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collateral, error) {
	query := r.db.Rebind(`SELECT ` + collateralColumns + ` FROM collaterals WHERE id = ?`)

	var c domain.Collateral
	if err := sqlx.GetContext(ctx, r.db, &c, query, id); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *collateralRepository) List(ctx context.Context, filter domain.CollateralFilter) ([]*domain.Collateral, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.LoanApplicationID != nil {
		where = append(where, "loan_application_id = ?")
		args = append(args, *filter.LoanApplicationID)
	}
	if filter.PledgeStatus != "" {
		where = append(where, "pledge_status = ?")
		args = append(args, filter.PledgeStatus)
	}

	query := `SELECT ` + collateralColumns + ` FROM collaterals`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	collaterals := []*domain.Collateral{}
	if err := sqlx.SelectContext(ctx, r.db, &collaterals, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (r *collateralRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Collateral, error) {
	query := r.db.Rebind(`SELECT ` + collateralColumns + ` FROM collaterals WHERE loan_application_id = ? ORDER BY created_at`)

	collaterals := []*domain.Collateral{}
	if err := sqlx.SelectContext(ctx, r.db, &collaterals, query, applicationID); err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (r *collateralRepository) Update(ctx context.Context, c *domain.Collateral) error {
	query := r.db.Rebind(`
		UPDATE collaterals
		SET fund_name = ?, scheme_code = ?, amc = ?, folio_number = ?, units = ?, current_nav = ?, total_value = ?,
			pledge_status = ?, pledge_date = ?, release_date = ?, updated_at = ?
		WHERE id = ?
	`)

	c.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		c.FundName,
		c.SchemeCode,
		c.AMC,
		c.FolioNumber,
		c.Units,
		c.CurrentNAV,
		c.TotalValue,
		c.PledgeStatus,
		c.PledgeDate,
		c.ReleaseDate,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *collateralRepository) PledgeAllByApplication(ctx context.Context, applicationID uuid.UUID, at time.Time) (int64, error) {
	query := r.db.Rebind(`
		UPDATE collaterals
		SET pledge_status = ?, pledge_date = ?, updated_at = ?
		WHERE loan_application_id = ?
	`)

	res, err := r.db.ExecContext(ctx, query, domain.PledgeStatusPledged, at, at, applicationID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *collateralRepository) SumTotalValueByApplication(ctx context.Context, applicationID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.Rebind(`SELECT COALESCE(SUM(total_value), 0) FROM collaterals WHERE loan_application_id = ?`)

	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, r.db, &total, query, applicationID); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
