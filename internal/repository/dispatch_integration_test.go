//go:build integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/ports/dispatchtx"
	"courier-dispatch/internal/repository"
)

type DispatchStoreSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	store     *repository.DispatchStore
	orders    *repository.OrderRepo
	decisions *repository.DecisionRepo
	settings  *repository.SettingsRepo
	cache     *repository.RouteCacheRepo
}

func (s *DispatchStoreSuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.store = repository.NewDispatchStore(tcPool)
	s.orders = repository.NewOrderRepo(tcPool)
	s.decisions = repository.NewDecisionRepo(tcPool)
	s.settings = repository.NewSettingsRepo(tcPool)
	s.cache = repository.NewRouteCacheRepo(tcPool)
}

func (s *DispatchStoreSuite) SetupTest() {
	s.Require().NoError(truncateAll(context.Background(), s.pool))
}

func (s *DispatchStoreSuite) TestAssignOrder_OnlyOnce() {
	ctx := context.Background()
	courierID, err := insertCourier(ctx, s.pool, "rider", nil, nil, nil, 3)
	s.Require().NoError(err)
	orderID, err := insertOrder(ctx, s.pool, ptr(-1.30), ptr(36.80), nil, string(domain.OrderUnassigned))
	s.Require().NoError(err)

	now := time.Now().UTC()
	assign := func() (bool, error) {
		var ok bool
		err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
			c, err := tx.LockCourier(ctx, courierID)
			s.Require().NoError(err)
			s.Require().NotNil(c)
			ok, err = tx.AssignOrder(ctx, orderID, courierID, now, now.Add(5*time.Minute))
			return err
		})
		return ok, err
	}

	ok, err := assign()
	s.Require().NoError(err)
	s.True(ok)

	ok, err = assign()
	s.Require().NoError(err)
	s.False(ok)

	got, err := s.orders.Get(ctx, orderID)
	s.Require().NoError(err)
	s.Equal(domain.OrderAssigned, got.Status)
	s.Require().NotNil(got.CourierID)
	s.Equal(courierID, *got.CourierID)
}

func (s *DispatchStoreSuite) TestLockCourier_ReportsLoadAndMissing() {
	ctx := context.Background()
	courierID, err := insertCourier(ctx, s.pool, "rider", nil, nil, nil, 2)
	s.Require().NoError(err)
	_, err = insertOrder(ctx, s.pool, ptr(-1.30), ptr(36.80), &courierID, string(domain.OrderPickedUp))
	s.Require().NoError(err)

	err = s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.LockCourier(ctx, courierID)
		s.Require().NoError(err)
		s.Require().NotNil(c)
		s.Equal(1, c.ActiveOrders)
		s.Equal(2, c.Capacity())

		missing, err := tx.LockCourier(ctx, courierID+100)
		s.Require().NoError(err)
		s.Nil(missing)
		return nil
	})
	s.Require().NoError(err)
}

func (s *DispatchStoreSuite) TestLockCourier_ConcurrentLastSlotIsFilledOnce() {
	ctx := context.Background()
	courierID, err := insertCourier(ctx, s.pool, "rider", nil, nil, nil, 1)
	s.Require().NoError(err)

	orderIDs := make([]int64, 2)
	for i := range orderIDs {
		orderIDs[i], err = insertOrder(ctx, s.pool, ptr(-1.30), ptr(36.80), nil, string(domain.OrderUnassigned))
		s.Require().NoError(err)
	}

	now := time.Now().UTC()
	assigned := make([]bool, len(orderIDs))
	start := make(chan struct{})

	var g errgroup.Group
	for i, orderID := range orderIDs {
		g.Go(func() error {
			<-start
			return s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
				c, err := tx.LockCourier(ctx, courierID)
				if err != nil {
					return err
				}
				if c == nil || c.ActiveOrders >= c.Capacity() {
					return nil
				}
				// hold the lock so the other transaction queues behind it
				time.Sleep(200 * time.Millisecond)
				ok, err := tx.AssignOrder(ctx, orderID, courierID, now, now.Add(5*time.Minute))
				assigned[i] = ok
				return err
			})
		})
	}
	close(start)
	s.Require().NoError(g.Wait())

	count := 0
	for _, ok := range assigned {
		if ok {
			count++
		}
	}
	s.Equal(1, count)

	var active int
	s.Require().NoError(s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE courier_id = $1 AND status = $2`,
		courierID, string(domain.OrderAssigned)).Scan(&active))
	s.Equal(1, active)
}

func (s *DispatchStoreSuite) TestWithTx_RollsBackOnError() {
	ctx := context.Background()
	courierID, err := insertCourier(ctx, s.pool, "rider", nil, nil, nil, 3)
	s.Require().NoError(err)

	boom := errors.New("boom")
	sample := domain.PositionSample{
		CourierID:  courierID,
		Position:   domain.Coordinates{Lat: -1.28, Lng: 36.82},
		Accuracy:   ptr(4.5),
		RecordedAt: time.Now().UTC(),
	}
	err = s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.UpdateCourierPosition(ctx, sample)
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Require().NoError(tx.InsertPositionSample(ctx, sample))
		return boom
	})
	s.ErrorIs(err, boom)

	var n int
	s.Require().NoError(s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courier_position_history`).Scan(&n))
	s.Zero(n)

	err = s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if _, err := tx.UpdateCourierPosition(ctx, sample); err != nil {
			return err
		}
		return tx.InsertPositionSample(ctx, sample)
	})
	s.Require().NoError(err)
	s.Require().NoError(s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courier_position_history`).Scan(&n))
	s.Equal(1, n)
}

func (s *DispatchStoreSuite) TestUpdateCourierPosition_Missing() {
	ctx := context.Background()
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.UpdateCourierPosition(ctx, domain.PositionSample{CourierID: 42, RecordedAt: time.Now()})
		s.False(ok)
		return err
	})
	s.Require().NoError(err)
}

func (s *DispatchStoreSuite) TestDecisionAppend() {
	ctx := context.Background()
	courierID, err := insertCourier(ctx, s.pool, "rider", nil, nil, nil, 3)
	s.Require().NoError(err)
	orderID, err := insertOrder(ctx, s.pool, ptr(-1.30), ptr(36.80), &courierID, string(domain.OrderAssigned))
	s.Require().NoError(err)

	chosen := domain.CandidateScore{CourierID: courierID, Score: 4, Mode: domain.ModeLive}
	d := domain.DispatchDecision{
		ID:         uuid.New(),
		OrderID:    orderID,
		CourierID:  courierID,
		Chosen:     chosen,
		Candidates: []domain.CandidateScore{chosen},
		Total:      1,
		Mode:       domain.ModeLive,
		DecidedAt:  time.Now().UTC(),
	}
	s.Require().NoError(s.decisions.Append(ctx, d))
	s.ErrorIs(s.decisions.Append(ctx, d), apperr.ErrConflict, "ids are unique")

	orphan := d
	orphan.ID = uuid.New()
	orphan.OrderID = orderID + 100
	s.ErrorIs(s.decisions.Append(ctx, orphan), apperr.ErrNotFound)

	var mode string
	var score float64
	s.Require().NoError(s.pool.QueryRow(ctx,
		`SELECT mode, (chosen->>'score')::float8 FROM dispatch_decisions WHERE id = $1`, d.ID).Scan(&mode, &score))
	s.Equal("live", mode)
	s.Equal(4.0, score)
}

func (s *DispatchStoreSuite) TestSettings() {
	ctx := context.Background()

	manual, err := s.settings.ManualMode(ctx)
	s.Require().NoError(err)
	s.False(manual)
	depot, err := s.settings.Depot(ctx)
	s.Require().NoError(err)
	s.Nil(depot)

	_, err = s.pool.Exec(ctx, `INSERT INTO settings (key, value) VALUES
		('delivery_manual_mode', 'TRUE'), ('business_latitude', '-1.3'), ('business_longitude', ' 36.9 ')`)
	s.Require().NoError(err)

	manual, err = s.settings.ManualMode(ctx)
	s.Require().NoError(err)
	s.True(manual)
	depot, err = s.settings.Depot(ctx)
	s.Require().NoError(err)
	s.Equal(&domain.Coordinates{Lat: -1.3, Lng: 36.9}, depot)

	_, err = s.pool.Exec(ctx, `UPDATE settings SET value = 'north' WHERE key = 'business_latitude'`)
	s.Require().NoError(err)
	depot, err = s.settings.Depot(ctx)
	s.Require().NoError(err)
	s.Nil(depot)
}

func (s *DispatchStoreSuite) TestRouteCache() {
	ctx := context.Background()
	now := time.Now().UTC()
	est := domain.RouteEstimate{DistanceMeters: 2100, DurationSeconds: 300, Polyline: "abc"}

	got, err := s.cache.Get(ctx, "k", now)
	s.Require().NoError(err)
	s.Nil(got)

	s.Require().NoError(s.cache.Put(ctx, "k", est, now.Add(time.Minute)))
	got, err = s.cache.Get(ctx, "k", now)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(2100, got.DistanceMeters)
	s.True(got.Live)

	got, err = s.cache.Get(ctx, "k", now.Add(2*time.Minute))
	s.Require().NoError(err)
	s.Nil(got, "expired entries are misses")

	n, err := s.cache.Purge(ctx, now.Add(2*time.Minute))
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func TestDispatchStoreSuite(t *testing.T) {
	suite.Run(t, new(DispatchStoreSuite))
}
