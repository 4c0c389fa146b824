package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/internal/repository"
	"github.com/segyhp/lamf-engine/internal/testutil"
	"github.com/segyhp/lamf-engine/pkg/appnumber"
	"github.com/segyhp/lamf-engine/pkg/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type harness struct {
	store       repository.Store
	redis       *miniredis.Miniredis
	products    *ProductService
	apps        *ApplicationService
	collaterals *CollateralService
	product     *domain.LoanProduct
}

type harnessOption func(*ApplicationOptions)

func enforceTransitions(o *ApplicationOptions) { o.EnforceTransitions = true }

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	db := testutil.OpenSQLite(t)
	mr, client := testutil.NewRedis(t)
	store := repository.NewStore(db)
	v := validation.New()
	log := zap.NewNop()

	appOpts := ApplicationOptions{NumberAttempts: 5}
	for _, o := range opts {
		o(&appOpts)
	}

	products := NewProductService(store.Repos().Products, NewRedisProductCache(client, time.Minute), v, log)
	h := &harness{
		store:       store,
		redis:       mr,
		products:    products,
		apps:        NewApplicationService(store, products, NewPricingEngine(), appnumber.New(appnumber.DefaultPrefix), v, appOpts, log),
		collaterals: NewCollateralService(store, v, log),
		product:     testutil.Product(),
	}
	require.NoError(t, store.Repos().Products.Create(context.Background(), h.product))
	return h
}

func (h *harness) createRequest(requested int64, funds ...domain.MutualFund) *domain.CreateLoanApplicationRequest {
	return &domain.CreateLoanApplicationRequest{
		CustomerInfo:    testutil.Customer(),
		LoanProductID:   h.product.ID.String(),
		RequestedAmount: decimalInt(requested),
		Tenure:          12,
		MutualFunds:     funds,
	}
}

// tickingClock returns strictly increasing times one second apart.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

// sequence replays numbers in order and then repeats the last one.
type sequence struct {
	numbers []string
	calls   int
}

func (s *sequence) Next() (string, error) {
	i := s.calls
	if i >= len(s.numbers) {
		i = len(s.numbers) - 1
	}
	s.calls++
	return s.numbers[i], nil
}
