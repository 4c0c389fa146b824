package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
	StatusDisbursed   ApplicationStatus = "disbursed"
	StatusClosed      ApplicationStatus = "closed"
)

var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusUnderReview},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusDisbursed},
	StatusDisbursed:   {StatusClosed},
	StatusRejected:    nil,
	StatusClosed:      nil,
}

// OngoingStatuses are the states of a loan that has been approved and not yet closed.
var OngoingStatuses = []ApplicationStatus{StatusApproved, StatusDisbursed}

func (s ApplicationStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s ApplicationStatus) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Staying in the same state is always allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type CustomerInfo struct {
	Name    string `json:"name" db:"name" validate:"required"`
	PAN     string `json:"pan" db:"pan" validate:"required"`
	Aadhaar string `json:"aadhaar" db:"aadhaar" validate:"required"`
	Email   string `json:"email" db:"email" validate:"required,email"`
	Phone   string `json:"phone" db:"phone" validate:"required"`
	Address string `json:"address" db:"address" validate:"required"`
}

// MutualFund is one holding in the snapshot submitted with an application.
type MutualFund struct {
	FundName    string           `json:"fundName" validate:"required"`
	SchemeCode  string           `json:"schemeCode,omitempty"`
	AMC         string           `json:"amc" validate:"required"`
	FolioNumber string           `json:"folioNumber" validate:"required"`
	Units       decimal.Decimal  `json:"units" validate:"gte=0"`
	CurrentNAV  decimal.Decimal  `json:"currentNAV" validate:"gte=0"`
	TotalValue  *decimal.Decimal `json:"totalValue,omitempty" validate:"omitempty,gte=0"`
}

func (f MutualFund) LineValue() *decimal.Decimal { return f.TotalValue }

// LoanApplication is one origination case. CollateralValue is kept equal to the
// sum of its Collateral records' TotalValue by every writer of those records.
type LoanApplication struct {
	ID                uuid.UUID           `json:"id" db:"id"`
	ApplicationNumber string              `json:"applicationNumber" db:"application_number"`
	CustomerInfo      CustomerInfo        `json:"customerInfo" db:"customer"`
	LoanProductID     uuid.UUID           `json:"loanProductId" db:"loan_product_id"`
	RequestedAmount   decimal.Decimal     `json:"requestedAmount" db:"requested_amount"`
	MutualFunds       MutualFunds         `json:"mutualFunds" db:"mutual_funds"`
	CalculatedLTV     decimal.Decimal     `json:"calculatedLTV" db:"calculated_ltv"`
	InterestRate      decimal.Decimal     `json:"interestRate" db:"interest_rate"`
	Tenure            int                 `json:"tenure" db:"tenure"`
	Status            ApplicationStatus   `json:"status" db:"status"`
	CollateralValue   decimal.Decimal     `json:"collateralValue" db:"collateral_value"`
	DisbursedAmount   decimal.NullDecimal `json:"disbursedAmount" db:"disbursed_amount"`
	DisbursedDate     *time.Time          `json:"disbursedDate,omitempty" db:"disbursed_date"`
	CreatedBy         Actor               `json:"createdBy" db:"created_by"`
	CreatedAt         time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time           `json:"updatedAt" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLoanApplicationRequest struct {
	CustomerInfo    CustomerInfo    `json:"customerInfo"`
	LoanProductID   string          `json:"loanProductId" validate:"required,uuid"`
	RequestedAmount decimal.Decimal `json:"requestedAmount" validate:"gt=0"`
	Tenure          int             `json:"tenure" validate:"gte=1"`
	MutualFunds     []MutualFund    `json:"mutualFunds" validate:"dive"`
}

// UpdateLoanApplicationRequest sets the status and/or disbursement details.
// Force bypasses transition checks and is honoured for admins only.
type UpdateLoanApplicationRequest struct {
	Status          *string          `json:"status,omitempty"`
	DisbursedAmount *decimal.Decimal `json:"disbursedAmount,omitempty" validate:"omitempty,gte=0"`
	DisbursedDate   *time.Time       `json:"disbursedDate,omitempty"`
	Force           bool             `json:"force,omitempty"`
}

type LoanApplicationFilter struct {
	Status        ApplicationStatus
	LoanProductID *uuid.UUID
}

// LoanApplicationDetail is an application with its independently stored collateral.
type LoanApplicationDetail struct {
	Application *LoanApplication `json:"application"`
	Collaterals []*Collateral    `json:"collaterals"`
}
