// Package analytics turns a user's transactions into totals and per-category
// breakdowns.
package analytics

import (
	"expensy-server/src/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// categoryAcc sums amounts per category, remembering first-seen order.
type categoryAcc struct {
	order []string
	sums  map[string]decimal.Decimal
}

func newCategoryAcc() *categoryAcc {
	return &categoryAcc{sums: make(map[string]decimal.Decimal)}
}

func (c *categoryAcc) add(category string, amount decimal.Decimal) {
	sum, ok := c.sums[category]
	if !ok {
		c.order = append(c.order, category)
	}
	c.sums[category] = sum.Add(amount)
}

func (c *categoryAcc) totals() models.CategoryTotals {
	out := make(models.CategoryTotals, 0, len(c.order))
	for _, category := range c.order {
		out = append(out, models.CategoryAmount{Category: category, Amount: c.sums[category].InexactFloat64()})
	}
	return out
}

// Summarize aggregates transactions in the order given. Category breakdowns
// keep discovery order. Totals are summed as decimals and converted once;
// NetBalance is the difference of the converted totals so that
// TotalIncome-TotalExpenses == NetBalance holds exactly on the returned values.
func Summarize(transactions []models.Transaction) models.Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	incomeBy := newCategoryAcc()
	expensesBy := newCategoryAcc()

	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		if t.Type == models.TransactionTypeIncome {
			income = income.Add(amount)
			incomeBy.add(t.Category, amount)
		} else {
			expenses = expenses.Add(amount)
			expensesBy.add(t.Category, amount)
		}
	}

	totalIncome := income.InexactFloat64()
	totalExpenses := expenses.InexactFloat64()
	net := totalIncome - totalExpenses

	savingsRate := 0.0
	if income.IsPositive() {
		savingsRate = income.Sub(expenses).Div(income).Mul(hundred).InexactFloat64()
	}

	return models.Summary{
		TotalIncome:        totalIncome,
		TotalExpenses:      totalExpenses,
		NetBalance:         net,
		TotalTransactions:  len(transactions),
		IncomeByCategory:   incomeBy.totals(),
		ExpensesByCategory: expensesBy.totals(),
		SavingsRate:        savingsRate,
	}
}

// WithBudget fills the budget fields of s. A budget of zero means none set.
func WithBudget(s models.Summary, budget float64) models.Summary {
	b := decimal.NewFromFloat(budget)
	spent := decimal.NewFromFloat(s.TotalExpenses)

	s.Budget = budget
	s.RemainingBudget = b.Sub(spent).InexactFloat64()
	s.BudgetUsage = 0
	if b.IsPositive() {
		s.BudgetUsage = spent.Div(b).Mul(hundred).InexactFloat64()
	}
	return s
}
