package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const ReconcileJobName = "reconcile-collateral-values"

// Reconciler re-derives each application's collateral value from its records.
type Reconciler interface {
	ReconcileAll(ctx context.Context) (int, error)
}

// ReconcileJob runs one reconciliation pass per tick, bounded by timeout.
type ReconcileJob struct {
	reconciler Reconciler
	timeout    time.Duration
	log        *zap.Logger
}

func NewReconcileJob(reconciler Reconciler, timeout time.Duration, log *zap.Logger) *ReconcileJob {
	return &ReconcileJob{reconciler: reconciler, timeout: timeout, log: log}
}

// Run satisfies cron.Job.
func (j *ReconcileJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	j.log.Info("Running collateral reconciliation job...", zap.String("job", ReconcileJobName))

	corrected, err := j.reconciler.ReconcileAll(ctx)
	if err != nil {
		j.log.Error("collateral reconciliation failed",
			zap.String("job", ReconcileJobName),
			zap.Int("corrected", corrected),
			zap.Error(err),
		)
		return
	}

	j.log.Info("collateral reconciliation finished",
		zap.String("job", ReconcileJobName),
		zap.Int("corrected", corrected),
		zap.Duration("duration", time.Since(start)),
	)
}

// Register schedules the reconciliation job on c. A run still in progress
// when the next tick fires causes that tick to be skipped.
func Register(c *cron.Cron, spec string, job *ReconcileJob, log *zap.Logger) (cron.EntryID, error) {
	wrapped := cron.NewChain(
		cron.Recover(cronLogger{log}),
		cron.SkipIfStillRunning(cronLogger{log}),
	).Then(job)

	id, err := c.AddJob(spec, wrapped)
	if err != nil {
		return 0, err
	}
	log.Info("Cron jobs scheduled successfully", zap.String("job", ReconcileJobName), zap.String("spec", spec))
	return id, nil
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().With(zap.Error(err)).Errorw(msg, keysAndValues...)
}

// NewCron builds a seconds-aware scheduler in loc that logs through log.
func NewCron(loc *time.Location, log *zap.Logger) *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger{log}),
	)
}
