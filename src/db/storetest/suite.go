// Package storetest holds the behavioral test suite every db.Store backend
// must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"expensy-server/src/db"
	"expensy-server/src/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreSuite runs against a fresh, empty store per test.
type StoreSuite struct {
	suite.Suite
	NewStore func(t *testing.T) db.Store

	store db.Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = s.NewStore(s.T())
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreSuite) createUser(email string) *models.User {
	u, err := s.store.CreateUser(s.ctx, "Test User", email, "hash")
	require.NoError(s.T(), err)
	return u
}

func (s *StoreSuite) createTransaction(userID string, kind models.TransactionType, amount float64) *models.Transaction {
	tr, err := s.store.CreateTransaction(s.ctx, &models.Transaction{
		UserID:      userID,
		Type:        kind,
		Description: "desc",
		Category:    "cat",
		Amount:      amount,
	})
	require.NoError(s.T(), err)
	return tr
}

func (s *StoreSuite) TestPing() {
	assert.NoError(s.T(), s.store.Ping(s.ctx))
}

func (s *StoreSuite) TestCreateAndGetUser() {
	u := s.createUser("ana@x.com")

	assert.NotEmpty(s.T(), u.ID)
	assert.Equal(s.T(), "Test User", u.FullName)
	assert.Equal(s.T(), "ana@x.com", u.Email)
	assert.Equal(s.T(), "hash", u.PasswordHash)
	assert.False(s.T(), u.CreatedAt.IsZero())

	byID, err := s.store.GetUserByID(s.ctx, u.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.Email, byID.Email)

	byEmail, err := s.store.GetUserByEmail(s.ctx, "ANA@x.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, byEmail.ID)
}

func (s *StoreSuite) TestDuplicateEmailIsCaseInsensitive() {
	s.createUser("ana@x.com")

	_, err := s.store.CreateUser(s.ctx, "Other", "Ana@X.com", "hash")
	assert.ErrorIs(s.T(), err, db.ErrDuplicateEmail)
}

func (s *StoreSuite) TestGetUserNotFound() {
	_, err := s.store.GetUserByID(s.ctx, uuid.NewString())
	assert.ErrorIs(s.T(), err, db.ErrNotFound)

	_, err = s.store.GetUserByID(s.ctx, "not-a-uuid")
	assert.ErrorIs(s.T(), err, db.ErrNotFound)

	_, err = s.store.GetUserByEmail(s.ctx, "nobody@x.com")
	assert.ErrorIs(s.T(), err, db.ErrNotFound)
}

func (s *StoreSuite) TestUpdateUserFullName() {
	u := s.createUser("ana@x.com")

	updated, err := s.store.UpdateUserFullName(s.ctx, u.ID, "Ana Maria Lee")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Ana Maria Lee", updated.FullName)
	assert.Equal(s.T(), u.Email, updated.Email)
	assert.False(s.T(), updated.UpdatedAt.Before(u.UpdatedAt))

	_, err = s.store.UpdateUserFullName(s.ctx, uuid.NewString(), "x")
	assert.ErrorIs(s.T(), err, db.ErrNotFound)
}

func (s *StoreSuite) TestBudgetUpsert() {
	u := s.createUser("ana@x.com")

	_, err := s.store.GetBudget(s.ctx, u.ID)
	assert.ErrorIs(s.T(), err, db.ErrNotFound)

	first, err := s.store.UpsertBudget(s.ctx, u.ID, 500)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 500.0, first.Amount)

	second, err := s.store.UpsertBudget(s.ctx, u.ID, 750)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 750.0, second.Amount)
	assert.Equal(s.T(), first.ID, second.ID, "upsert must keep a single budget record")

	got, err := s.store.GetBudget(s.ctx, u.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 750.0, got.Amount)
}

func (s *StoreSuite) TestBudgetRejectsNegativeAmount() {
	u := s.createUser("ana@x.com")

	_, err := s.store.UpsertBudget(s.ctx, u.ID, -1)
	assert.Error(s.T(), err)
}

func (s *StoreSuite) TestConcurrentBudgetUpsertsKeepOneRecord() {
	u := s.createUser("ana@x.com")

	before, err := s.store.UpsertBudget(s.ctx, u.ID, 50)
	require.NoError(s.T(), err)

	var (
		wg      sync.WaitGroup
		written []float64
	)
	for i := 1; i <= 8; i++ {
		amount := float64(i * 100)
		written = append(written, amount)
		wg.Add(1)
		go func() {
			defer wg.Done()
			budget, err := s.store.UpsertBudget(s.ctx, u.ID, amount)
			if assert.NoError(s.T(), err) {
				assert.Equal(s.T(), before.ID, budget.ID)
			}
		}()
	}
	wg.Wait()

	got, err := s.store.GetBudget(s.ctx, u.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), before.ID, got.ID)
	assert.Contains(s.T(), written, got.Amount)
}

func (s *StoreSuite) TestListTransactionsNewestFirstAndScoped() {
	ana := s.createUser("ana@x.com")
	bob := s.createUser("bob@x.com")

	first := s.createTransaction(ana.ID, models.TransactionTypeIncome, 1000)
	time.Sleep(5 * time.Millisecond)
	second := s.createTransaction(ana.ID, models.TransactionTypeExpense, 400)
	s.createTransaction(bob.ID, models.TransactionTypeExpense, 99)

	list, err := s.store.ListTransactions(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), second.ID, list[0].ID)
	assert.Equal(s.T(), first.ID, list[1].ID)
	for _, tr := range list {
		assert.Equal(s.T(), ana.ID, tr.UserID)
	}
}

func (s *StoreSuite) TestListTransactionsEmpty() {
	u := s.createUser("ana@x.com")

	list, err := s.store.ListTransactions(s.ctx, u.ID)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), list)
	assert.Empty(s.T(), list)
}

func (s *StoreSuite) TestCreateTransactionRejectsNegativeAmount() {
	u := s.createUser("ana@x.com")

	_, err := s.store.CreateTransaction(s.ctx, &models.Transaction{
		UserID: u.ID, Type: models.TransactionTypeExpense, Description: "d", Category: "c", Amount: -5,
	})
	assert.Error(s.T(), err)
}

func (s *StoreSuite) TestDeleteTransactionOwnership() {
	ana := s.createUser("ana@x.com")
	bob := s.createUser("bob@x.com")
	tr := s.createTransaction(ana.ID, models.TransactionTypeExpense, 10)

	assert.ErrorIs(s.T(), s.store.DeleteTransaction(s.ctx, bob.ID, tr.ID), db.ErrNotFound)
	assert.ErrorIs(s.T(), s.store.DeleteTransaction(s.ctx, ana.ID, uuid.NewString()), db.ErrNotFound)
	assert.ErrorIs(s.T(), s.store.DeleteTransaction(s.ctx, ana.ID, "garbage"), db.ErrNotFound)

	require.NoError(s.T(), s.store.DeleteTransaction(s.ctx, ana.ID, tr.ID))
	assert.ErrorIs(s.T(), s.store.DeleteTransaction(s.ctx, ana.ID, tr.ID), db.ErrNotFound)

	list, err := s.store.ListTransactions(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)
}
