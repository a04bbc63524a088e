package postgres

import (
	"context"
	"errors"
	"fmt"

	"expensy-server/src/db"
	"expensy-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const budgetColumns = `id, user_id, amount, created_at, updated_at`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("scan budget: %w", err)
	}
	return &b, nil
}

func (s *Store) GetBudget(ctx context.Context, userID string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	return scanBudget(s.pool.QueryRow(ctx, query, userID))
}

// UpsertBudget creates the user's budget or overwrites its amount. Concurrent
// calls are last-write-wins.
func (s *Store) UpsertBudget(ctx context.Context, userID string, amount float64) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET amount = EXCLUDED.amount, updated_at = NOW()
		RETURNING ` + budgetColumns
	b, err := scanBudget(s.pool.QueryRow(ctx, query, uuid.NewString(), userID, amount))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	return b, nil
}
