package service

import (
	"context"
	"testing"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/internal/testutil"
	customError "github.com/segyhp/lamf-engine/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplication(t *testing.T, h *harness) *domain.LoanApplication {
	t.Helper()
	app, err := h.apps.Create(context.Background(), user, h.createRequest(500000, testutil.Fund("a", 550000), testutil.Fund("b", 400000)))
	require.NoError(t, err)
	return app
}

func collateralValueOf(t *testing.T, h *harness, app *domain.LoanApplication) decimal.Decimal {
	t.Helper()
	detail, err := h.apps.Get(context.Background(), app.ID.String())
	require.NoError(t, err)
	return detail.Application.CollateralValue
}

func TestCreateCollateral_ResumsApplication(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	app := newApplication(t, h)

	c, err := h.collaterals.Create(ctx, &domain.CreateCollateralRequest{
		LoanApplicationID: app.ID.String(),
		FundName:          "Mirae Asset Large Cap",
		AMC:               "Mirae",
		FolioNumber:       "77001",
		Units:             decimal.RequireFromString("1234.5"),
		CurrentNAV:        decimal.RequireFromString("81.2"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PledgeStatusUnpledged, c.PledgeStatus)
	assert.True(t, c.TotalValue.Equal(decimal.RequireFromString("100241.4")), "got %s", c.TotalValue)
	assert.True(t, collateralValueOf(t, h, app).Equal(decimal.RequireFromString("1050241.4")))

	byApp, err := h.collaterals.ListByApplication(ctx, app.ID.String())
	require.NoError(t, err)
	assert.Len(t, byApp, 3)
}

func TestCreateCollateral_Errors(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.collaterals.Create(ctx, &domain.CreateCollateralRequest{
		LoanApplicationID: "5f6c2d1e-1111-4222-8333-444455556666",
		FundName:          "X",
		AMC:               "Y",
		FolioNumber:       "Z",
		Units:             decimalInt(1),
		CurrentNAV:        decimalInt(1),
	})
	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeApplicationNotFound, customError.CodeOf(err))

	_, err = h.collaterals.Create(ctx, &domain.CreateCollateralRequest{LoanApplicationID: "5f6c2d1e-1111-4222-8333-444455556666"})
	require.Error(t, err)
	assert.Equal(t, customError.KindValidation, customError.KindOf(err))
	assert.Equal(t, "fundName is required", err.Error())
}

func TestUpdateCollateral_RecomputesValues(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	app := newApplication(t, h)

	detail, err := h.apps.Get(ctx, app.ID.String())
	require.NoError(t, err)
	target := detail.Collaterals[0]
	other := detail.Collaterals[1]

	units := decimalInt(2000)
	nav := decimalInt(300)
	updated, err := h.collaterals.Update(ctx, target.ID.String(), &domain.UpdateCollateralRequest{Units: &units, CurrentNAV: &nav})
	require.NoError(t, err)
	assert.True(t, updated.TotalValue.Equal(decimalInt(600000)))

	want := decimalInt(600000).Add(other.TotalValue)
	assert.True(t, collateralValueOf(t, h, app).Equal(want), "aggregate follows the update")

	// renaming leaves the value alone
	name := "Renamed Fund"
	updated, err = h.collaterals.Update(ctx, target.ID.String(), &domain.UpdateCollateralRequest{FundName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Fund", updated.FundName)
	assert.True(t, updated.TotalValue.Equal(decimalInt(600000)))

	_, err = h.collaterals.Update(ctx, "0c9a4f7e-2222-4333-8444-555566667777", &domain.UpdateCollateralRequest{FundName: &name})
	assert.Equal(t, customError.KindNotFound, customError.KindOf(err))
}

func TestUpdatePledgeStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.collaterals.now = tickingClock(time.Date(2025, 10, 19, 9, 0, 0, 0, time.UTC))
	app := newApplication(t, h)

	detail, err := h.apps.Get(ctx, app.ID.String())
	require.NoError(t, err)
	id := detail.Collaterals[0].ID.String()

	first, err := h.collaterals.UpdatePledgeStatus(ctx, id, &domain.UpdatePledgeStatusRequest{PledgeStatus: "pledged"})
	require.NoError(t, err)
	require.NotNil(t, first.PledgeDate)
	firstDate := *first.PledgeDate

	// pledging twice succeeds and moves the pledge date to the latest call
	second, err := h.collaterals.UpdatePledgeStatus(ctx, id, &domain.UpdatePledgeStatusRequest{PledgeStatus: "pledged"})
	require.NoError(t, err)
	require.NotNil(t, second.PledgeDate)
	assert.True(t, second.PledgeDate.After(firstDate))

	stored, err := h.collaterals.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, second.PledgeDate.Equal(*stored.PledgeDate))
	assert.Nil(t, stored.ReleaseDate)

	released, err := h.collaterals.UpdatePledgeStatus(ctx, id, &domain.UpdatePledgeStatusRequest{PledgeStatus: "released"})
	require.NoError(t, err)
	assert.Equal(t, domain.PledgeStatusReleased, released.PledgeStatus)
	assert.NotNil(t, released.ReleaseDate)

	unpledged, err := h.collaterals.UpdatePledgeStatus(ctx, id, &domain.UpdatePledgeStatusRequest{PledgeStatus: "unpledged"})
	require.NoError(t, err)
	assert.Equal(t, domain.PledgeStatusUnpledged, unpledged.PledgeStatus)
	assert.True(t, released.ReleaseDate.Equal(*unpledged.ReleaseDate), "unpledged stamps nothing")
}

func TestUpdatePledgeStatus_InvalidLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	app := newApplication(t, h)

	detail, err := h.apps.Get(ctx, app.ID.String())
	require.NoError(t, err)
	before := detail.Collaterals[0]

	_, err = h.collaterals.UpdatePledgeStatus(ctx, before.ID.String(), &domain.UpdatePledgeStatusRequest{PledgeStatus: "foo"})
	require.Error(t, err)
	assert.Equal(t, customError.KindInvalidEnum, customError.KindOf(err))
	assert.Equal(t, customError.ErrCodeInvalidPledgeStatus, customError.CodeOf(err))

	after, err := h.collaterals.Get(ctx, before.ID.String())
	require.NoError(t, err)
	assert.Equal(t, before.PledgeStatus, after.PledgeStatus)
	assert.Nil(t, after.PledgeDate)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))

	// unknown ids are still rejected on the value first
	_, err = h.collaterals.UpdatePledgeStatus(ctx, "missing", &domain.UpdatePledgeStatusRequest{PledgeStatus: "foo"})
	assert.Equal(t, customError.KindInvalidEnum, customError.KindOf(err))

	_, err = h.collaterals.UpdatePledgeStatus(ctx, "missing", &domain.UpdatePledgeStatusRequest{PledgeStatus: "pledged"})
	assert.Equal(t, customError.KindNotFound, customError.KindOf(err))
}

func TestCollateralList_Filters(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	app := newApplication(t, h)
	newApplication(t, h)

	all, err := h.collaterals.List(ctx, domain.CollateralFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	mine, err := h.collaterals.List(ctx, domain.CollateralFilter{LoanApplicationID: &app.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = h.collaterals.List(ctx, domain.CollateralFilter{PledgeStatus: "lost"})
	assert.Equal(t, customError.KindInvalidEnum, customError.KindOf(err))

	empty, err := h.collaterals.ListByApplication(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReconcileAll_CorrectsDrift(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	drifted := newApplication(t, h)
	newApplication(t, h)

	require.NoError(t, h.store.Repos().Applications.UpdateCollateralValue(ctx, drifted.ID, decimalInt(1)))

	corrected, err := h.collaterals.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)
	assert.True(t, collateralValueOf(t, h, drifted).Equal(decimalInt(950000)))

	corrected, err = h.collaterals.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, corrected)
}
