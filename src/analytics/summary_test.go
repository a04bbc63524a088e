package analytics

import (
	"encoding/json"
	"testing"

	"expensy-server/src/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(kind models.TransactionType, category string, amount float64) models.Transaction {
	return models.Transaction{Type: kind, Description: category, Category: category, Amount: amount}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpenses)
	assert.Zero(t, s.NetBalance)
	assert.Zero(t, s.SavingsRate)
	assert.Zero(t, s.TotalTransactions)

	body, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"incomeByCategory":{}`)
	assert.Contains(t, string(body), `"expensesByCategory":{}`)
}

func TestSummarize_SalaryAndRent(t *testing.T) {
	s := Summarize([]models.Transaction{
		tx(models.TransactionTypeIncome, "job", 1000),
		tx(models.TransactionTypeExpense, "housing", 400),
	})

	assert.Equal(t, 1000.0, s.TotalIncome)
	assert.Equal(t, 400.0, s.TotalExpenses)
	assert.Equal(t, 600.0, s.NetBalance)
	assert.Equal(t, 60.0, s.SavingsRate)
	assert.Equal(t, 2, s.TotalTransactions)
}

func TestSummarize_OnlyExpenses(t *testing.T) {
	s := Summarize([]models.Transaction{tx(models.TransactionTypeExpense, "food", 12.5)})

	assert.Equal(t, -12.5, s.NetBalance)
	assert.Zero(t, s.SavingsRate)
}

func TestSummarize_CategoryOrderIsDiscoveryOrder(t *testing.T) {
	s := Summarize([]models.Transaction{
		tx(models.TransactionTypeExpense, "zoo", 1),
		tx(models.TransactionTypeExpense, "apples", 2),
		tx(models.TransactionTypeIncome, "job", 10),
		tx(models.TransactionTypeExpense, "zoo", 3),
		tx(models.TransactionTypeExpense, "middle", 4),
	})

	body, err := json.Marshal(s.ExpensesByCategory)
	require.NoError(t, err)
	assert.Equal(t, `{"zoo":4,"apples":2,"middle":4}`, string(body))

	total, ok := s.IncomeByCategory.Get("job")
	assert.True(t, ok)
	assert.Equal(t, 10.0, total)
}

func TestSummarize_DecimalSums(t *testing.T) {
	s := Summarize([]models.Transaction{
		tx(models.TransactionTypeIncome, "a", 0.1),
		tx(models.TransactionTypeIncome, "a", 0.2),
	})
	assert.Equal(t, 0.3, s.TotalIncome)
}

func TestSummarize_NetBalanceProperty(t *testing.T) {
	gofakeit.Seed(42)

	for i := 0; i < 200; i++ {
		n := gofakeit.Number(0, 40)
		txs := make([]models.Transaction, 0, n)
		for j := 0; j < n; j++ {
			kind := models.TransactionType(gofakeit.RandomString([]string{"income", "expense"}))
			amount := gofakeit.Price(0.01, 5000)
			txs = append(txs, tx(kind, gofakeit.RandomString([]string{"food", "rent", "job", "fun"}), amount))
		}

		s := Summarize(txs)
		require.Equal(t, s.TotalIncome-s.TotalExpenses, s.NetBalance)
		if s.TotalIncome == 0 {
			require.Zero(t, s.SavingsRate)
		}
		require.Equal(t, n, s.TotalTransactions)
	}
}

func TestWithBudget(t *testing.T) {
	s := Summarize([]models.Transaction{tx(models.TransactionTypeExpense, "rent", 400)})

	withBudget := WithBudget(s, 1000)
	assert.Equal(t, 1000.0, withBudget.Budget)
	assert.Equal(t, 600.0, withBudget.RemainingBudget)
	assert.Equal(t, 40.0, withBudget.BudgetUsage)

	noBudget := WithBudget(s, 0)
	assert.Equal(t, -400.0, noBudget.RemainingBudget)
	assert.Zero(t, noBudget.BudgetUsage)
}
