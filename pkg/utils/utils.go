package utils

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FundValue is anything that carries a pledged line-item value. A nil value
// means the caller did not supply one.
type FundValue interface {
	LineValue() *decimal.Decimal
}

// CalculateCollateralValue sums the value of every line item. Items with no
// value contribute zero; an empty slice yields zero.
func CalculateCollateralValue[T FundValue](items []T) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if v := item.LineValue(); v != nil {
			total = total.Add(*v)
		}
	}
	return total
}

// CalculateLTV returns loanAmount as a percentage of collateralValue.
// Formula: (loanAmount / collateralValue) * 100
// Zero collateral yields zero rather than a division error. The result is not clamped.
func CalculateLTV(loanAmount, collateralValue decimal.Decimal) decimal.Decimal {
	if collateralValue.IsZero() {
		return decimal.Zero
	}
	return loanAmount.Div(collateralValue).Mul(hundred)
}

// InterpolateRate maps ltv linearly from [minLTV, maxLTV] onto [minRate, maxRate].
// Formula: minRate + ((ltv - minLTV) / (maxLTV - minLTV)) * (maxRate - minRate)
// A degenerate band (minLTV == maxLTV) prices at minRate.
func InterpolateRate(ltv, minLTV, maxLTV, minRate, maxRate decimal.Decimal) decimal.Decimal {
	band := maxLTV.Sub(minLTV)
	if band.IsZero() {
		return minRate
	}
	position := ltv.Sub(minLTV).Div(band)
	return minRate.Add(position.Mul(maxRate.Sub(minRate)))
}

// CalculateTotalValue returns the market value of a holding: units * nav.
func CalculateTotalValue(units, nav decimal.Decimal) decimal.Decimal {
	return units.Mul(nav)
}
