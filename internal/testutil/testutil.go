// Package testutil provides throwaway SQLite databases and in-process Redis
// servers for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// OpenSQLite returns a migrated in-memory database that lives for the test.
func OpenSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// every connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewRedis starts a miniredis server and a client pointed at it.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// Product returns an active product with a 50-80% LTV band priced at 10.5-15.5%.
func Product() *domain.LoanProduct {
	now := time.Now().UTC()
	return &domain.LoanProduct{
		ID:              uuid.New(),
		Name:            "Standard LAMF",
		Description:     "Loan against equity and debt funds",
		MinLTV:          decimal.NewFromInt(50),
		MaxLTV:          decimal.NewFromInt(80),
		MinInterestRate: decimal.RequireFromString("10.5"),
		MaxInterestRate: decimal.RequireFromString("15.5"),
		TenureOptions:   domain.TenureOptions{6, 12, 24, 36},
		MinLoanAmount:   decimal.NewFromInt(100000),
		MaxLoanAmount:   decimal.NewFromInt(1000000),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Customer returns complete customer details.
func Customer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:    "Rahul Sharma",
		PAN:     "ABCDE1234F",
		Aadhaar: "123412341234",
		Email:   "rahul@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road, Bengaluru",
	}
}

// Fund returns a snapshot line worth value.
func Fund(name string, value int64) domain.MutualFund {
	tv := decimal.NewFromInt(value)
	return domain.MutualFund{
		FundName:    name,
		SchemeCode:  "SC-" + name,
		AMC:         "HDFC",
		FolioNumber: "FOLIO-" + name,
		Units:       decimal.NewFromInt(value / 100),
		CurrentNAV:  decimal.NewFromInt(100),
		TotalValue:  &tv,
	}
}

// Application returns a pending application for productID with no collateral.
func Application(productID uuid.UUID, number string) *domain.LoanApplication {
	now := time.Now().UTC()
	return &domain.LoanApplication{
		ID:                uuid.New(),
		ApplicationNumber: number,
		CustomerInfo:      Customer(),
		LoanProductID:     productID,
		RequestedAmount:   decimal.NewFromInt(500000),
		MutualFunds:       domain.MutualFunds{},
		CalculatedLTV:     decimal.RequireFromString("52.63"),
		InterestRate:      decimal.RequireFromString("10.94"),
		Tenure:            12,
		Status:            domain.StatusPending,
		CollateralValue:   decimal.Zero,
		CreatedBy:         domain.Actor{Kind: domain.ActorUser, ID: "user-1", Role: domain.RoleUser},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Collateral returns an unpledged holding of units at nav for applicationID.
func Collateral(applicationID uuid.UUID, units, nav string) *domain.Collateral {
	now := time.Now().UTC()
	u := decimal.RequireFromString(units)
	n := decimal.RequireFromString(nav)
	return &domain.Collateral{
		ID:                uuid.New(),
		LoanApplicationID: applicationID,
		FundName:          "Axis Bluechip Fund",
		AMC:               "Axis",
		FolioNumber:       "91010",
		Units:             u,
		CurrentNAV:        n,
		TotalValue:        u.Mul(n),
		PledgeStatus:      domain.PledgeStatusUnpledged,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
