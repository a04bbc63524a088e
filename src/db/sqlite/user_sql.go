package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"expensy-server/src/db"
	"expensy-server/src/models"

	"github.com/google/uuid"
)

const userColumns = `id, full_name, email, password_hash, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, fullName, email, passwordHash string) (*models.User, error) {
	now := s.now()
	id := uuid.NewString()
	query := `
		INSERT INTO users (id, full_name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := s.conn.ExecContext(ctx, query, id, fullName, email, passwordHash, now, now); err != nil {
		if isUniqueViolation(err) {
			return nil, db.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(s.conn.QueryRowContext(ctx, query, id))
}

// GetUserByEmail matches case-insensitively through the column's NOCASE
// collation.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(s.conn.QueryRowContext(ctx, query, email))
}

func (s *Store) UpdateUserFullName(ctx context.Context, id, fullName string) (*models.User, error) {
	query := `UPDATE users SET full_name = ?, updated_at = ? WHERE id = ?`
	result, err := s.conn.ExecContext(ctx, query, fullName, s.now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, db.ErrNotFound
	}
	return s.GetUserByID(ctx, id)
}
