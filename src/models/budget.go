package models

import "time"

type Budget struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetBudgetRequest keeps Amount as a pointer so a missing field can be told
// apart from zero.
type SetBudgetRequest struct {
	Amount *float64 `json:"amount"`
}
