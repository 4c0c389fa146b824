package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/lamf-engine/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReconcileJob_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reconciler := &mocks.MockReconciler{}
	reconciler.On("ReconcileAll", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return hasDeadline
	})).Return(3, nil).Once()

	NewReconcileJob(reconciler, time.Minute, zap.New(core)).Run()

	reconciler.AssertExpectations(t)
	finished := logs.FilterMessage("collateral reconciliation finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(3), finished[0].ContextMap()["corrected"])
}

func TestReconcileJob_RunLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reconciler := &mocks.MockReconciler{}
	reconciler.On("ReconcileAll", mock.Anything).Return(1, errors.New("db down")).Once()

	NewReconcileJob(reconciler, 0, zap.New(core)).Run()

	reconciler.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("collateral reconciliation failed").Len())
	assert.Equal(t, 0, logs.FilterMessage("collateral reconciliation finished").Len())
}

func TestRegister(t *testing.T) {
	log := zap.NewNop()
	c := NewCron(time.UTC, log)
	job := NewReconcileJob(&mocks.MockReconciler{}, time.Minute, log)

	id, err := Register(c, "0 0 2 * * *", job, log)
	require.NoError(t, err)
	entry := c.Entry(id)
	assert.True(t, entry.Valid())

	_, err = Register(c, "every night", job, log)
	assert.Error(t, err)
}
