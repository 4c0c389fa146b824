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

const applicationColumns = `id, application_number,
	customer_name AS "customer.name", customer_pan AS "customer.pan", customer_aadhaar AS "customer.aadhaar",
	customer_email AS "customer.email", customer_phone AS "customer.phone", customer_address AS "customer.address",
	loan_product_id, requested_amount, mutual_funds, calculated_ltv, interest_rate, tenure, status,
	collateral_value, disbursed_amount, disbursed_date,
	created_by_kind AS "created_by.kind", created_by_id AS "created_by.id", created_by_role AS "created_by.role",
	created_at, updated_at`

type applicationRepository struct {
	db sqlx.ExtContext
}

func NewApplicationRepository(db sqlx.ExtContext) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.LoanApplication) error {
	query := r.db.Rebind(`
		INSERT INTO loan_applications (
			id, application_number,
			customer_name, customer_pan, customer_aadhaar, customer_email, customer_phone, customer_address,
			loan_product_id, requested_amount, mutual_funds, calculated_ltv, interest_rate, tenure, status,
			collateral_value, disbursed_amount, disbursed_date,
			created_by_kind, created_by_id, created_by_role, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		app.ID,
		app.ApplicationNumber,
		app.CustomerInfo.Name,
		app.CustomerInfo.PAN,
		app.CustomerInfo.Aadhaar,
		app.CustomerInfo.Email,
		app.CustomerInfo.Phone,
		app.CustomerInfo.Address,
		app.LoanProductID,
		app.RequestedAmount,
		app.MutualFunds,
		app.CalculatedLTV,
		app.InterestRate,
		app.Tenure,
		app.Status,
		app.CollateralValue,
		app.DisbursedAmount,
		app.DisbursedDate,
		app.CreatedBy.Kind,
		app.CreatedBy.ID,
		app.CreatedBy.Role,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}

	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error) {
	return r.get(ctx, id, "")
}

func (r *applicationRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error) {
	return r.get(ctx, id, forUpdate(r.db))
}

func (r *applicationRepository) get(ctx context.Context, id uuid.UUID, lock string) (*domain.LoanApplication, error) {
	query := r.db.Rebind(`SELECT ` + applicationColumns + ` FROM loan_applications WHERE id = ?` + lock)

	var app domain.LoanApplication
	if err := sqlx.GetContext(ctx, r.db, &app, query, id); err != nil {
		return nil, err
	}

	return &app, nil
}

func (r *applicationRepository) ExistsByNumber(ctx context.Context, applicationNumber string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(1) FROM loan_applications WHERE application_number = ?`)

	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, query, applicationNumber); err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *applicationRepository) List(ctx context.Context, filter domain.LoanApplicationFilter) ([]*domain.LoanApplication, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.LoanProductID != nil {
		where = append(where, "loan_product_id = ?")
		args = append(args, *filter.LoanProductID)
	}

	query := `SELECT ` + applicationColumns + ` FROM loan_applications`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	apps := []*domain.LoanApplication{}
	if err := sqlx.SelectContext(ctx, r.db, &apps, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *applicationRepository) ListByStatuses(ctx context.Context, statuses []domain.ApplicationStatus) ([]*domain.LoanApplication, error) {
	apps := []*domain.LoanApplication{}
	if len(statuses) == 0 {
		return apps, nil
	}

	query, args, err := sqlx.In(`SELECT `+applicationColumns+` FROM loan_applications WHERE status IN (?) ORDER BY created_at DESC`, statuses)
	if err != nil {
		return nil, err
	}

	if err := sqlx.SelectContext(ctx, r.db, &apps, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *applicationRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := sqlx.SelectContext(ctx, r.db, &ids, `SELECT id FROM loan_applications ORDER BY created_at`); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.LoanApplication) error {
	query := r.db.Rebind(`
		UPDATE loan_applications
		SET status = ?, disbursed_amount = ?, disbursed_date = ?, updated_at = ?
		WHERE id = ?
	`)

	app.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		app.Status,
		app.DisbursedAmount,
		app.DisbursedDate,
		app.UpdatedAt,
		app.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *applicationRepository) UpdateCollateralValue(ctx context.Context, id uuid.UUID, value decimal.Decimal) error {
	query := r.db.Rebind(`UPDATE loan_applications SET collateral_value = ?, updated_at = ? WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, value, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	return requireAffected(res)
}
