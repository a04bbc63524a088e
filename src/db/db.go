package db

import (
	"context"
	"errors"

	"expensy-server/src/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the persistence contract shared by the postgres and sqlite
// backends. Every transaction and budget query is scoped by userID.
type Store interface {
	Ping(ctx context.Context) error
	Close()

	CreateUser(ctx context.Context, fullName, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserFullName(ctx context.Context, id, fullName string) (*models.User, error)

	GetBudget(ctx context.Context, userID string) (*models.Budget, error)
	UpsertBudget(ctx context.Context, userID string, amount float64) (*models.Budget, error)

	CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	// ListTransactions returns the user's transactions newest first.
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}
