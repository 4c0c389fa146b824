package domain

import (
	"time"

	apperrors "github.com/segyhp/lamf-engine/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanProduct is a pricing template: the LTV band, the rate band it maps onto,
// and the amount and tenure limits an application must fit.
type LoanProduct struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Name                string          `json:"name" db:"name"`
	Description         string          `json:"description" db:"description"`
	MinLTV              decimal.Decimal `json:"minLTV" db:"min_ltv"`
	MaxLTV              decimal.Decimal `json:"maxLTV" db:"max_ltv"`
	MinInterestRate     decimal.Decimal `json:"minInterestRate" db:"min_interest_rate"`
	MaxInterestRate     decimal.Decimal `json:"maxInterestRate" db:"max_interest_rate"`
	TenureOptions       TenureOptions   `json:"tenureOptions" db:"tenure_options"`
	MinLoanAmount       decimal.Decimal `json:"minLoanAmount" db:"min_loan_amount"`
	MaxLoanAmount       decimal.Decimal `json:"maxLoanAmount" db:"max_loan_amount"`
	EligibilityCriteria string          `json:"eligibilityCriteria" db:"eligibility_criteria"`
	IsActive            bool            `json:"isActive" db:"is_active"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time       `json:"updatedAt" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLoanProductRequest struct {
	Name                string          `json:"name" validate:"required"`
	Description         string          `json:"description"`
	MinLTV              decimal.Decimal `json:"minLTV" validate:"gte=0,lte=100"`
	MaxLTV              decimal.Decimal `json:"maxLTV" validate:"gte=0,lte=100"`
	MinInterestRate     decimal.Decimal `json:"minInterestRate" validate:"gte=0"`
	MaxInterestRate     decimal.Decimal `json:"maxInterestRate" validate:"gte=0"`
	TenureOptions       []int           `json:"tenureOptions" validate:"min=1,dive,gte=1"`
	MinLoanAmount       decimal.Decimal `json:"minLoanAmount" validate:"gte=0"`
	MaxLoanAmount       decimal.Decimal `json:"maxLoanAmount" validate:"gte=0"`
	EligibilityCriteria string          `json:"eligibilityCriteria"`
	IsActive            *bool           `json:"isActive,omitempty"`
}

// UpdateLoanProductRequest is a partial update; nil fields are left unchanged.
type UpdateLoanProductRequest struct {
	Name                *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description         *string          `json:"description,omitempty"`
	MinLTV              *decimal.Decimal `json:"minLTV,omitempty" validate:"omitempty,gte=0,lte=100"`
	MaxLTV              *decimal.Decimal `json:"maxLTV,omitempty" validate:"omitempty,gte=0,lte=100"`
	MinInterestRate     *decimal.Decimal `json:"minInterestRate,omitempty" validate:"omitempty,gte=0"`
	MaxInterestRate     *decimal.Decimal `json:"maxInterestRate,omitempty" validate:"omitempty,gte=0"`
	TenureOptions       []int            `json:"tenureOptions,omitempty" validate:"omitempty,min=1,dive,gte=1"`
	MinLoanAmount       *decimal.Decimal `json:"minLoanAmount,omitempty" validate:"omitempty,gte=0"`
	MaxLoanAmount       *decimal.Decimal `json:"maxLoanAmount,omitempty" validate:"omitempty,gte=0"`
	EligibilityCriteria *string          `json:"eligibilityCriteria,omitempty"`
	IsActive            *bool            `json:"isActive,omitempty"`
}

type LoanProductFilter struct {
	IsActive *bool
}

// Apply copies the set fields of req onto p.
func (req UpdateLoanProductRequest) Apply(p *LoanProduct) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.MinLTV != nil {
		p.MinLTV = *req.MinLTV
	}
	if req.MaxLTV != nil {
		p.MaxLTV = *req.MaxLTV
	}
	if req.MinInterestRate != nil {
		p.MinInterestRate = *req.MinInterestRate
	}
	if req.MaxInterestRate != nil {
		p.MaxInterestRate = *req.MaxInterestRate
	}
	if req.TenureOptions != nil {
		p.TenureOptions = TenureOptions(req.TenureOptions)
	}
	if req.MinLoanAmount != nil {
		p.MinLoanAmount = *req.MinLoanAmount
	}
	if req.MaxLoanAmount != nil {
		p.MaxLoanAmount = *req.MaxLoanAmount
	}
	if req.EligibilityCriteria != nil {
		p.EligibilityCriteria = *req.EligibilityCriteria
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

// CheckBounds rejects products whose ranges could never accept an application.
func (p *LoanProduct) CheckBounds() error {
	switch {
	case p.MinLTV.GreaterThan(p.MaxLTV):
		return apperrors.WrapValidation("minLTV must not exceed maxLTV")
	case p.MinInterestRate.GreaterThan(p.MaxInterestRate):
		return apperrors.WrapValidation("minInterestRate must not exceed maxInterestRate")
	case p.MinLoanAmount.GreaterThan(p.MaxLoanAmount):
		return apperrors.WrapValidation("minLoanAmount must not exceed maxLoanAmount")
	case len(p.TenureOptions) == 0:
		return apperrors.WrapValidation("at least one tenure option is required")
	}
	for _, m := range p.TenureOptions {
		if m < 1 {
			return apperrors.WrapValidation("tenure options must be at least 1 month")
		}
	}
	return nil
}
