package models

import (
	"bytes"
	"encoding/json"
)

type CategoryAmount struct {
	Category string
	Amount   float64
}

// CategoryTotals marshals as a JSON object whose keys keep slice order.
type CategoryTotals []CategoryAmount

func (c CategoryTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ca := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ca.Category)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(ca.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the total for category and whether it is present.
func (c CategoryTotals) Get(category string) (float64, bool) {
	for _, ca := range c {
		if ca.Category == category {
			return ca.Amount, true
		}
	}
	return 0, false
}

type Summary struct {
	TotalIncome        float64        `json:"totalIncome"`
	TotalExpenses      float64        `json:"totalExpenses"`
	NetBalance         float64        `json:"netBalance"`
	TotalTransactions  int            `json:"totalTransactions"`
	IncomeByCategory   CategoryTotals `json:"incomeByCategory"`
	ExpensesByCategory CategoryTotals `json:"expensesByCategory"`
	SavingsRate        float64        `json:"savingsRate"`
	Budget             float64        `json:"budget"`
	RemainingBudget    float64        `json:"remainingBudget"`
	BudgetUsage        float64        `json:"budgetUsage"`
}
