package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PledgeStatus string

const (
	PledgeStatusPledged   PledgeStatus = "pledged"
	PledgeStatusUnpledged PledgeStatus = "unpledged"
	PledgeStatusReleased  PledgeStatus = "released"
)

func (s PledgeStatus) IsValid() bool {
	switch s {
	case PledgeStatusPledged, PledgeStatusUnpledged, PledgeStatusReleased:
		return true
	}
	return false
}

// Collateral is one pledged holding, persisted independently of the
// application's submitted fund snapshot.
type Collateral struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	LoanApplicationID uuid.UUID       `json:"loanApplicationId" db:"loan_application_id"`
	FundName          string          `json:"fundName" db:"fund_name"`
	SchemeCode        string          `json:"schemeCode,omitempty" db:"scheme_code"`
	AMC               string          `json:"amc" db:"amc"`
	FolioNumber       string          `json:"folioNumber" db:"folio_number"`
	Units             decimal.Decimal `json:"units" db:"units"`
	CurrentNAV        decimal.Decimal `json:"currentNAV" db:"current_nav"`
	TotalValue        decimal.Decimal `json:"totalValue" db:"total_value"`
	PledgeStatus      PledgeStatus    `json:"pledgeStatus" db:"pledge_status"`
	PledgeDate        *time.Time      `json:"pledgeDate,omitempty" db:"pledge_date"`
	ReleaseDate       *time.Time      `json:"releaseDate,omitempty" db:"release_date"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time       `json:"updatedAt" db:"updated_at"`
}

func (c *Collateral) LineValue() *decimal.Decimal { return &c.TotalValue }

// DTOs for requests and responses

type CreateCollateralRequest struct {
	LoanApplicationID string          `json:"loanApplicationId" validate:"required,uuid"`
	FundName          string          `json:"fundName" validate:"required"`
	SchemeCode        string          `json:"schemeCode,omitempty"`
	AMC               string          `json:"amc" validate:"required"`
	FolioNumber       string          `json:"folioNumber" validate:"required"`
	Units             decimal.Decimal `json:"units" validate:"gte=0"`
	CurrentNAV        decimal.Decimal `json:"currentNAV" validate:"gte=0"`
}

// UpdateCollateralRequest is a partial update. TotalValue is never accepted;
// it is derived from units and NAV.
type UpdateCollateralRequest struct {
	FundName    *string          `json:"fundName,omitempty" validate:"omitempty,min=1"`
	SchemeCode  *string          `json:"schemeCode,omitempty"`
	AMC         *string          `json:"amc,omitempty" validate:"omitempty,min=1"`
	FolioNumber *string          `json:"folioNumber,omitempty" validate:"omitempty,min=1"`
	Units       *decimal.Decimal `json:"units,omitempty" validate:"omitempty,gte=0"`
	CurrentNAV  *decimal.Decimal `json:"currentNAV,omitempty" validate:"omitempty,gte=0"`
}

type UpdatePledgeStatusRequest struct {
	PledgeStatus string `json:"pledgeStatus"`
}

type CollateralFilter struct {
	LoanApplicationID *uuid.UUID
	PledgeStatus      PledgeStatus
}
