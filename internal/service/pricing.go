package service

import (
	"github.com/segyhp/lamf-engine/internal/domain"
	customError "github.com/segyhp/lamf-engine/pkg/errors"
	"github.com/segyhp/lamf-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// Quote is what an application is priced at.
type Quote struct {
	CollateralValue decimal.Decimal
	CalculatedLTV   decimal.Decimal
	InterestRate    decimal.Decimal
}

// PricingEngine checks a request against a product's bands and interpolates its rate.
type PricingEngine struct{}

func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// Quote prices requestedAmount against the submitted funds. Range checks use the
// exact LTV; the returned LTV and rate are rounded to two decimals.
func (e *PricingEngine) Quote(product *domain.LoanProduct, requestedAmount decimal.Decimal, funds []domain.MutualFund) (*Quote, error) {
	if !product.IsActive {
		return nil, customError.WrapProductInactive(product.ID.String())
	}

	// 1. Value the collateral and derive LTV
	collateralValue := utils.CalculateCollateralValue(funds)
	ltv := utils.CalculateLTV(requestedAmount, collateralValue)

	// 2. LTV must sit inside the product band
	if ltv.LessThan(product.MinLTV) || ltv.GreaterThan(product.MaxLTV) {
		return nil, customError.WrapLTVOutOfRange(ltv, product.MinLTV, product.MaxLTV)
	}

	// 3. So must the amount
	if requestedAmount.LessThan(product.MinLoanAmount) || requestedAmount.GreaterThan(product.MaxLoanAmount) {
		return nil, customError.WrapAmountOutOfRange(requestedAmount, product.MinLoanAmount, product.MaxLoanAmount)
	}

	// 4. Linear interpolation across the band
	rate := utils.InterpolateRate(ltv, product.MinLTV, product.MaxLTV, product.MinInterestRate, product.MaxInterestRate)

	return &Quote{
		CollateralValue: collateralValue,
		CalculatedLTV:   ltv.Round(2),
		InterestRate:    rate.Round(2),
	}, nil
}
