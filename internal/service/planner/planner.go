package planner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/evaluator"
)

// ReasonBeyondMaxDistance marks candidates dropped by the distance limit.
const ReasonBeyondMaxDistance = "beyond_max_distance"

const alternativesCount = 2

// Config holds planner settings.
type Config struct {
	PlanningTimeout time.Duration
	MaxConcurrency  int
}

// Planner ranks couriers for a destination.
type Planner struct {
	couriers  courierLister
	evaluator candidateEvaluator
	cfg       Config
	logger    logx.Logger
	outcomes  *prometheus.CounterVec
}

// New creates a Planner. outcomes may be nil.
func New(couriers courierLister, ev candidateEvaluator, cfg Config, logger logx.Logger, outcomes *prometheus.CounterVec) *Planner {
	if cfg.PlanningTimeout <= 0 {
		cfg.PlanningTimeout = 45 * time.Second
	}
	return &Planner{couriers: couriers, evaluator: ev, cfg: cfg, logger: logger, outcomes: outcomes}
}

// Plan evaluates every eligible courier and ranks them by score.
func (p *Planner) Plan(ctx context.Context, req domain.PlanRequest) (domain.PlanResult, error) {
	if !req.Destination.Valid() {
		return domain.PlanResult{}, fmt.Errorf("destination %s: %w", req.Destination, apperr.ErrInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.PlanningTimeout)
	defer cancel()

	res, err := p.plan(ctx, req)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = apperr.ErrPlanningTimeout
	}
	p.observe(err)
	if err != nil {
		return domain.PlanResult{}, err
	}

	p.logger.Info("dispatch planned",
		logx.Event("dispatch_planned"),
		logx.String("mode", string(res.Mode)),
		logx.Int64("recommended_courier_id", res.Recommended.CourierID),
		logx.Int("total_candidates", res.TotalCandidates),
		logx.Int("succeeded", res.Succeeded),
	)
	return res, nil
}

func (p *Planner) plan(ctx context.Context, req domain.PlanRequest) (domain.PlanResult, error) {
	couriers, err := p.couriers.ListEligible(ctx, req.MaxActiveOrders)
	if err != nil {
		return domain.PlanResult{}, fmt.Errorf("list eligible couriers: %w", err)
	}
	couriers = eligible(couriers, req.MaxActiveOrders)
	if len(couriers) == 0 {
		return domain.PlanResult{}, apperr.ErrNoCouriersAvailable
	}

	mode := p.evaluator.Mode(ctx, req.ForceManual)
	depot := p.evaluator.Depot(ctx)

	type outcome struct {
		score domain.CandidateScore
		err   error
	}
	results := make([]outcome, len(couriers))

	var g errgroup.Group
	limit := p.cfg.MaxConcurrency
	if limit <= 0 {
		limit = len(couriers)
	}
	g.SetLimit(limit)
	for i, c := range couriers {
		g.Go(func() error {
			score, err := p.evaluator.Evaluate(ctx, evaluator.Candidate{
				Courier:     c,
				Destination: req.Destination,
				Depot:       depot,
				Mode:        mode,
				Priority:    req.Priority,
			})
			results[i] = outcome{score: score, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.PlanResult{}, err
	}

	ranked := make([]domain.CandidateScore, 0, len(couriers))
	evaluated := make([]domain.CandidateScore, 0, len(couriers))
	var failures []domain.CandidateError
	failed := 0
	for i, r := range results {
		c := couriers[i]
		switch {
		case r.err != nil:
			failed++
			failures = append(failures, domain.CandidateError{CourierID: c.ID, CourierName: c.Name, Reason: r.err.Error()})
			p.logger.Warn("candidate evaluation failed",
				logx.Event("candidate_failed"),
				logx.Int64("courier_id", c.ID),
				logx.Err(r.err),
			)
		case req.MaxDistanceKm > 0 && r.score.DistanceKm > req.MaxDistanceKm:
			evaluated = append(evaluated, r.score)
			failures = append(failures, domain.CandidateError{CourierID: c.ID, CourierName: c.Name, Reason: ReasonBeyondMaxDistance})
		default:
			evaluated = append(evaluated, r.score)
			ranked = append(ranked, r.score)
		}
	}

	if failed == len(couriers) {
		return domain.PlanResult{}, apperr.ErrAllCandidatesFailed
	}
	if len(ranked) == 0 {
		return domain.PlanResult{}, apperr.ErrNoCouriersAvailable
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score < ranked[j].Score })
	sort.SliceStable(evaluated, func(i, j int) bool { return evaluated[i].Score < evaluated[j].Score })

	alternatives := ranked[1:min(len(ranked), 1+alternativesCount)]
	return domain.PlanResult{
		Recommended:     ranked[0],
		Alternatives:    append([]domain.CandidateScore(nil), alternatives...),
		Ranked:          ranked,
		Evaluated:       evaluated,
		TotalCandidates: len(couriers),
		Succeeded:       len(couriers) - failed,
		Errors:          failures,
		Mode:            mode,
		Criteria:        domain.CriteriaFor(mode),
	}, nil
}

// eligible keeps couriers strictly below capacity and maxActive, least loaded and freshest first.
func eligible(couriers []domain.Courier, maxActive int) []domain.Courier {
	out := make([]domain.Courier, 0, len(couriers))
	for _, c := range couriers {
		if !c.Active || c.ActiveOrders >= c.Capacity() {
			continue
		}
		if maxActive > 0 && c.ActiveOrders >= maxActive {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ActiveOrders != b.ActiveOrders {
			return a.ActiveOrders < b.ActiveOrders
		}
		switch {
		case a.PositionUpdatedAt == nil:
			return false
		case b.PositionUpdatedAt == nil:
			return true
		default:
			return a.PositionUpdatedAt.After(*b.PositionUpdatedAt)
		}
	})
	return out
}

func (p *Planner) observe(err error) {
	if p.outcomes == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = apperr.Code(err)
	}
	p.outcomes.WithLabelValues(outcome).Inc()
}
