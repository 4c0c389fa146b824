package service

import (
	"errors"
	"testing"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/internal/testutil"
	customError "github.com/segyhp/lamf-engine/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func funds950k() []domain.MutualFund {
	return []domain.MutualFund{testutil.Fund("a", 550000), testutil.Fund("b", 400000)}
}

func TestQuote_InterpolatesRate(t *testing.T) {
	quote, err := NewPricingEngine().Quote(testutil.Product(), decimal.NewFromInt(500000), funds950k())
	require.NoError(t, err)

	assert.True(t, quote.CollateralValue.Equal(decimal.NewFromInt(950000)))
	assert.Equal(t, "52.63", quote.CalculatedLTV.StringFixed(2))
	// 10.5 + (2.63/30)*5
	assert.InDelta(t, 10.94, quote.InterestRate.InexactFloat64(), 0.01)
	assert.Equal(t, "10.94", quote.InterestRate.String())
}

func TestQuote_LTVOutOfRange(t *testing.T) {
	_, err := NewPricingEngine().Quote(testutil.Product(), decimal.NewFromInt(900000), funds950k())
	require.Error(t, err)

	var rangeErr *customError.RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, customError.ErrCodeLTVOutOfRange, rangeErr.Code)
	assert.Equal(t, customError.KindRangeViolation, customError.KindOf(err))
	assert.Equal(t, "LTV ratio 94.74% is outside the allowed range (50% - 80%)", err.Error())
	assert.True(t, rangeErr.Min.Equal(decimal.NewFromInt(50)))
	assert.True(t, rangeErr.Max.Equal(decimal.NewFromInt(80)))
}

func TestQuote_NoCollateralIsOutOfRange(t *testing.T) {
	_, err := NewPricingEngine().Quote(testutil.Product(), decimal.NewFromInt(500000), nil)
	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeLTVOutOfRange, customError.CodeOf(err))
	assert.Contains(t, err.Error(), "LTV ratio 0.00%")
}

func TestQuote_AmountOutOfRange(t *testing.T) {
	product := testutil.Product()
	product.MaxLoanAmount = decimal.NewFromInt(400000)

	_, err := NewPricingEngine().Quote(product, decimal.NewFromInt(500000), funds950k())
	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeAmountOutOfRange, customError.CodeOf(err))
	assert.Equal(t, "Loan amount is outside the allowed range (100000 - 400000)", err.Error())
}

func TestQuote_EqualBoundsUseMinRate(t *testing.T) {
	product := testutil.Product()
	product.MinLTV = decimal.RequireFromString("52.63")
	product.MaxLTV = decimal.RequireFromString("52.64")
	_, err := NewPricingEngine().Quote(product, decimal.NewFromInt(500000), funds950k())
	require.NoError(t, err)

	product.MinLTV = decimal.NewFromInt(60)
	product.MaxLTV = decimal.NewFromInt(60)
	quote, err := NewPricingEngine().Quote(product, decimal.NewFromInt(300000), []domain.MutualFund{testutil.Fund("c", 500000)})
	require.NoError(t, err)
	assert.True(t, quote.CalculatedLTV.Equal(decimal.NewFromInt(60)))
	assert.True(t, quote.InterestRate.Equal(product.MinInterestRate))
}

func TestQuote_InactiveProduct(t *testing.T) {
	product := testutil.Product()
	product.IsActive = false

	_, err := NewPricingEngine().Quote(product, decimal.NewFromInt(500000), funds950k())
	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeProductInactive, customError.CodeOf(err))
	assert.Equal(t, customError.KindValidation, customError.KindOf(err))
}
