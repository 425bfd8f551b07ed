// Package service defines the interfaces shared between the storage layer and
// the components that consume it.
package service

import (
	"context"

	"github.com/Veraticus/chitieu/internal/model"
)

// ExpenseWriter persists finalized expenses.
type ExpenseWriter interface {
	AddExpense(ctx context.Context, expense model.NewExpense) (*model.Expense, error)
}

// ExpenseStore is the full expense persistence contract. Dates are
// YYYY-MM-DD strings; ranges are inclusive on both ends.
type ExpenseStore interface {
	ExpenseWriter
	GetExpense(ctx context.Context, id string) (*model.Expense, error)
	GetAllExpenses(ctx context.Context) ([]model.Expense, error)
	GetExpensesByDateRange(ctx context.Context, start, end string) ([]model.Expense, error)
	GetExpensesByCategory(ctx context.Context, categoryID string) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, id string, update model.ExpenseUpdate) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

// ChatStore keeps the per-day chat transcript.
type ChatStore interface {
	AddChatMessage(ctx context.Context, msg *model.ChatMessage) error
	GetChatMessagesByDate(ctx context.Context, date string) ([]model.ChatMessage, error)
	GetChatDates(ctx context.Context) ([]string, error)
	DeleteChatMessagesByDate(ctx context.Context, date string) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	ExpenseStore
	ChatStore

	Migrate(ctx context.Context) error
	Close() error
}
