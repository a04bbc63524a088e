package sqlite

import (
	"context"
	"fmt"

	"expensy-server/src/db"
	"expensy-server/src/models"

	"github.com/google/uuid"
)

const transactionColumns = `id, user_id, type, description, category, amount, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var tr models.Transaction
	err := row.Scan(&tr.ID, &tr.UserID, &tr.Type, &tr.Description, &tr.Category, &tr.Amount, &tr.CreatedAt, &tr.UpdatedAt)
	return tr, err
}

func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	now := s.now()
	id := uuid.NewString()
	query := `
		INSERT INTO transactions (id, user_id, type, description, category, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.conn.ExecContext(ctx, query, id, t.UserID, string(t.Type), t.Description, t.Category, t.Amount, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	row := s.conn.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tr, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction: %w", err)
	}
	return &tr, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
	`
	rows, err := s.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		tr, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tr)
	}
	return transactions, rows.Err()
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}
