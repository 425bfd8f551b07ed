package model

import "time"

// NewExpense is a finalized expense ready to be stored.
type NewExpense struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Amount       int64  `json:"amount"`
}

// Expense is a stored expense record.
type Expense struct {
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ID           string    `json:"id"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	Amount       int64     `json:"amount"`
}

// ExpenseUpdate carries the mutable fields of an expense. Nil fields are left unchanged.
type ExpenseUpdate struct {
	Amount       *int64
	CategoryID   *string
	CategoryName *string
	Description  *string
	Date         *string
}
