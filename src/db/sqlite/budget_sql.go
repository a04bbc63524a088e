package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"expensy-server/src/models"

	"github.com/google/uuid"
)

const budgetColumns = `id, user_id, amount, created_at, updated_at`

func scanBudget(row *sql.Row) (*models.Budget, error) {
	var b models.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.Amount, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *Store) GetBudget(ctx context.Context, userID string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = ?`
	return scanBudget(s.conn.QueryRowContext(ctx, query, userID))
}

// UpsertBudget creates the user's budget or overwrites its amount. Concurrent
// calls are last-write-wins.
func (s *Store) UpsertBudget(ctx context.Context, userID string, amount float64) (*models.Budget, error) {
	now := s.now()
	query := `
		INSERT INTO budgets (id, user_id, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET amount = excluded.amount, updated_at = excluded.updated_at
	`
	if _, err := s.conn.ExecContext(ctx, query, uuid.NewString(), userID, amount, now, now); err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	return s.GetBudget(ctx, userID)
}
