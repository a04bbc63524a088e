package postgres

import (
	"context"
	"fmt"

	"expensy-server/src/db"
	"expensy-server/src/models"

	"github.com/google/uuid"
)

const transactionColumns = `id, user_id, type, description, category, amount, created_at, updated_at`

func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, type, description, category, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns

	var tr models.Transaction
	err := s.pool.QueryRow(ctx, query, uuid.NewString(), t.UserID, t.Type, t.Description, t.Category, t.Amount).
		Scan(&tr.ID, &tr.UserID, &tr.Type, &tr.Description, &tr.Category, &tr.Amount, &tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &tr, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tr models.Transaction
		err := rows.Scan(&tr.ID, &tr.UserID, &tr.Type, &tr.Description, &tr.Category, &tr.Amount, &tr.CreatedAt, &tr.UpdatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tr)
	}
	return transactions, rows.Err()
}

// DeleteTransaction removes the transaction only if userID owns it. Absent,
// foreign and malformed ids all yield db.ErrNotFound.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return db.ErrNotFound
	}
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
