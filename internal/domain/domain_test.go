package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/segyhp/lamf-engine/pkg/errors"
)

func TestApplicationStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to ApplicationStatus
		allowed  bool
	}{
		{StatusPending, StatusUnderReview, true},
		{StatusUnderReview, StatusApproved, true},
		{StatusUnderReview, StatusRejected, true},
		{StatusApproved, StatusDisbursed, true},
		{StatusDisbursed, StatusClosed, true},
		{StatusPending, StatusApproved, false},
		{StatusPending, StatusDisbursed, false},
		{StatusRejected, StatusApproved, false},
		{StatusClosed, StatusPending, false},
		{StatusApproved, StatusApproved, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.False(t, ApplicationStatus("archived").IsValid())
}

func TestPledgeStatus_IsValid(t *testing.T) {
	assert.True(t, PledgeStatusPledged.IsValid())
	assert.True(t, PledgeStatusUnpledged.IsValid())
	assert.True(t, PledgeStatusReleased.IsValid())
	assert.False(t, PledgeStatus("foo").IsValid())
	assert.False(t, PledgeStatus("").IsValid())
}

func TestActor_IsAdmin(t *testing.T) {
	assert.True(t, Actor{Kind: ActorUser, ID: "u1", Role: RoleAdmin}.IsAdmin())
	assert.False(t, Actor{Kind: ActorUser, ID: "u1", Role: RoleUser}.IsAdmin())
	assert.False(t, Actor{Kind: ActorAPIClient, ID: "c1", Role: RoleAdmin}.IsAdmin())
}

func TestTenureOptions_Column(t *testing.T) {
	v, err := TenureOptions{6, 12, 24}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[6,12,24]", v)

	var got TenureOptions
	require.NoError(t, got.Scan([]byte("[3,6]")))
	assert.Equal(t, TenureOptions{3, 6}, got)
	assert.True(t, got.Contains(6))
	assert.False(t, got.Contains(12))

	assert.Error(t, got.Scan(42))
}

func TestMutualFunds_Column(t *testing.T) {
	tv := decimal.NewFromInt(550000)
	funds := MutualFunds{{FundName: "Axis Bluechip", AMC: "Axis", FolioNumber: "F1", Units: decimal.NewFromInt(10), CurrentNAV: decimal.NewFromInt(55000), TotalValue: &tv}}

	v, err := funds.Value()
	require.NoError(t, err)

	var got MutualFunds
	require.NoError(t, got.Scan(v))
	require.Len(t, got, 1)
	assert.Equal(t, "Axis Bluechip", got[0].FundName)
	require.NotNil(t, got[0].LineValue())
	assert.True(t, tv.Equal(*got[0].LineValue()))

	empty, err := MutualFunds(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func validProduct() *LoanProduct {
	return &LoanProduct{
		Name:            "Standard LAMF",
		MinLTV:          decimal.NewFromInt(50),
		MaxLTV:          decimal.NewFromInt(80),
		MinInterestRate: decimal.RequireFromString("10.5"),
		MaxInterestRate: decimal.RequireFromString("15.5"),
		TenureOptions:   TenureOptions{12, 24},
		MinLoanAmount:   decimal.NewFromInt(100000),
		MaxLoanAmount:   decimal.NewFromInt(1000000),
		IsActive:        true,
	}
}

func TestLoanProduct_CheckBounds(t *testing.T) {
	require.NoError(t, validProduct().CheckBounds())

	tests := map[string]func(p *LoanProduct){
		"ltv inverted":    func(p *LoanProduct) { p.MinLTV = decimal.NewFromInt(90) },
		"rate inverted":   func(p *LoanProduct) { p.MaxInterestRate = decimal.NewFromInt(1) },
		"amount inverted": func(p *LoanProduct) { p.MaxLoanAmount = decimal.NewFromInt(1) },
		"no tenures":      func(p *LoanProduct) { p.TenureOptions = nil },
		"zero tenure":     func(p *LoanProduct) { p.TenureOptions = TenureOptions{0, 12} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(p)
			err := p.CheckBounds()
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}

	p := validProduct()
	p.MaxLTV = p.MinLTV
	assert.NoError(t, p.CheckBounds(), "equal bounds are allowed")
}

func TestUpdateLoanProductRequest_Apply(t *testing.T) {
	p := validProduct()
	name := "Premium"
	inactive := false
	maxLTV := decimal.NewFromInt(70)

	UpdateLoanProductRequest{Name: &name, IsActive: &inactive, MaxLTV: &maxLTV, TenureOptions: []int{36}}.Apply(p)

	assert.Equal(t, "Premium", p.Name)
	assert.False(t, p.IsActive)
	assert.True(t, p.MaxLTV.Equal(maxLTV))
	assert.Equal(t, TenureOptions{36}, p.TenureOptions)
	assert.True(t, p.MinLTV.Equal(decimal.NewFromInt(50)), "unset fields untouched")
}
