// Package jobs holds scheduled background work of the dispatch worker.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

type unassignedLister interface {
	ListUnassigned(ctx context.Context, limit int) ([]int64, error)
}

type assigner interface {
	AutoAssign(ctx context.Context, orderID int64, opts domain.AssignOptions) (domain.AssignResult, error)
}

type cachePurger interface {
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// SweepStats summarizes one redispatch pass.
type SweepStats struct {
	Scanned  int
	Assigned int
	Manual   int
	Failed   int
	Purged   int64
}

// RedispatchJob periodically retries automatic dispatch for orders still waiting for a courier.
type RedispatchJob struct {
	orders   unassignedLister
	assigner assigner
	cache    cachePurger
	schedule string
	batch    int
	logger   logx.Logger
	cron     *cron.Cron
	now      func() time.Time
}

// NewRedispatchJob creates the job. cache may be nil.
func NewRedispatchJob(orders unassignedLister, a assigner, cache cachePurger, schedule string, batch int, logger logx.Logger) *RedispatchJob {
	if batch <= 0 {
		batch = 20
	}
	logger = logx.OrNop(logger).With(logx.String("component", "redispatch_job"))
	return &RedispatchJob{
		orders:   orders,
		assigner: a,
		cache:    cache,
		schedule: schedule,
		batch:    batch,
		logger:   logger,
		// a pass still running when the next tick fires is not started twice
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{l: logger}))),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the job. Passes run with ctx until Stop is called.
func (j *RedispatchJob) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule redispatch %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("redispatch job started", logx.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running pass.
func (j *RedispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("redispatch job stopped")
}

// RunOnce runs a single pass over the oldest unassigned orders.
func (j *RedispatchJob) RunOnce(ctx context.Context) SweepStats {
	var st SweepStats

	if j.cache != nil {
		n, err := j.cache.Purge(ctx, j.now())
		if err != nil {
			j.logger.Warn("purge route cache", logx.Err(err))
		}
		st.Purged = n
	}

	ids, err := j.orders.ListUnassigned(ctx, j.batch)
	if err != nil {
		j.logger.Error("list unassigned orders", logx.Err(err))
		return st
	}
	st.Scanned = len(ids)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		res, err := j.assigner.AutoAssign(ctx, id, domain.AssignOptions{})
		switch {
		case err == nil && res.Assigned:
			st.Assigned++
		case err == nil:
			st.Manual++
		case errors.Is(err, context.Canceled):
			return st
		default:
			st.Failed++
			j.logger.Warn("redispatch failed", logx.Int64("order_id", id), logx.Err(err))
		}
	}

	if st.Scanned > 0 {
		j.logger.Info("redispatch pass finished",
			logx.Event("redispatch_pass"),
			logx.Int("scanned", st.Scanned),
			logx.Int("assigned", st.Assigned),
			logx.Int("manual", st.Manual),
			logx.Int("failed", st.Failed),
		)
	}
	return st
}

// cronLogger adapts logx.Logger to cron.Logger.
type cronLogger struct{ l logx.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, kv(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(kv(keysAndValues), logx.Err(err))...)
}

func kv(keysAndValues []interface{}) []logx.Field {
	fields := make([]logx.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, logx.Any(key, keysAndValues[i+1]))
	}
	return fields
}
