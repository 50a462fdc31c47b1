package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DecisionRepo is the append-only dispatch decision log.
type DecisionRepo struct{ db *pgxpool.Pool }

// NewDecisionRepo creates a new DecisionRepo.
func NewDecisionRepo(db *pgxpool.Pool) *DecisionRepo { return &DecisionRepo{db: db} }

// Append records a decision.
func (r *DecisionRepo) Append(ctx context.Context, d domain.DispatchDecision) error {
	chosen, err := json.Marshal(d.Chosen)
	if err != nil {
		return fmt.Errorf("marshal chosen candidate: %w", err)
	}
	candidates, err := json.Marshal(d.Candidates)
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO dispatch_decisions
            (id, order_id, courier_id, chosen, candidates, total_candidates, mode, actor_id, decided_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, d.ID, d.OrderID, d.CourierID, chosen, candidates, d.Total, string(d.Mode), d.ActorID, d.DecidedAt)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("decision %s already recorded: %w: %w", d.ID, apperr.ErrConflict, err)
		}
		if IsMissingReference(err) {
			return fmt.Errorf("decision for order %d courier %d: %w: %w", d.OrderID, d.CourierID, apperr.ErrNotFound, err)
		}
		return fmt.Errorf("append decision for order %d: %w", d.OrderID, err)
	}
	return nil
}
