package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, description, min_ltv, max_ltv, min_interest_rate, max_interest_rate,
	tenure_options, min_loan_amount, max_loan_amount, eligibility_criteria, is_active, created_at, updated_at`

type productRepository struct {
	db sqlx.ExtContext
}

func NewProductRepository(db sqlx.ExtContext) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.LoanProduct) error {
	query := r.db.Rebind(`
		INSERT INTO loan_products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.MinLTV,
		product.MaxLTV,
		product.MinInterestRate,
		product.MaxInterestRate,
		product.TenureOptions,
		product.MinLoanAmount,
		product.MaxLoanAmount,
		product.EligibilityCriteria,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	return err
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanProduct, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM loan_products WHERE id = ?`)

	var product domain.LoanProduct
	if err := sqlx.GetContext(ctx, r.db, &product, query, id); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter domain.LoanProductFilter) ([]*domain.LoanProduct, error) {
	query := `SELECT ` + productColumns + ` FROM loan_products`
	var args []interface{}
	if filter.IsActive != nil {
		query += ` WHERE is_active = ?`
		args = append(args, *filter.IsActive)
	}
	query += ` ORDER BY created_at DESC`

	products := []*domain.LoanProduct{}
	if err := sqlx.SelectContext(ctx, r.db, &products, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.LoanProduct) error {
	query := r.db.Rebind(`
		UPDATE loan_products
		SET name = ?, description = ?, min_ltv = ?, max_ltv = ?, min_interest_rate = ?, max_interest_rate = ?,
			tenure_options = ?, min_loan_amount = ?, max_loan_amount = ?, eligibility_criteria = ?, is_active = ?,
			updated_at = ?
		WHERE id = ?
	`)

	product.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Description,
		product.MinLTV,
		product.MaxLTV,
		product.MinInterestRate,
		product.MaxInterestRate,
		product.TenureOptions,
		product.MinLoanAmount,
		product.MaxLoanAmount,
		product.EligibilityCriteria,
		product.IsActive,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM loan_products WHERE id = ?`), id)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
