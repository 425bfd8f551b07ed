package testutil

import (
	"testing"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/model"
)

// ExpenseBuilder assembles expense fixtures. Category names are taken from
// the built-in catalog so fixtures stay consistent with it.
type ExpenseBuilder struct {
	t          *testing.T
	categories *category.Registry
	expenses   []model.NewExpense
}

// NewExpenseBuilder starts an empty fixture set.
func NewExpenseBuilder(t *testing.T) *ExpenseBuilder {
	t.Helper()
	return &ExpenseBuilder{
		t:          t,
		categories: category.Default(),
	}
}

// WithExpense adds one expense. An unknown category fails the test.
func (b *ExpenseBuilder) WithExpense(amount int64, categoryID, date, description string) *ExpenseBuilder {
	b.t.Helper()

	c, err := b.categories.MustGet(categoryID)
	if err != nil {
		b.t.Fatalf("invalid fixture: %v", err)
	}
	b.expenses = append(b.expenses, model.NewExpense{
		Amount:       amount,
		CategoryID:   c.ID,
		CategoryName: c.Name,
		Description:  description,
		Date:         date,
	})
	return b
}

// WithWeek adds a small spread of expenses over the week ending on
// 2026-01-11.
func (b *ExpenseBuilder) WithWeek() *ExpenseBuilder {
	b.t.Helper()
	return b.
		WithExpense(20000, "books", "2026-01-11", "mua sách").
		WithExpense(50000, "fuel", "2026-01-10", "đổ xăng").
		WithExpense(150000, "groceries", "2026-01-08", "đi chợ").
		WithExpense(1500000, "electronics", "2026-01-05", "tai nghe")
}

// Build returns the fixtures in the order they were added.
func (b *ExpenseBuilder) Build() []model.NewExpense {
	out := make([]model.NewExpense, len(b.expenses))
	copy(out, b.expenses)
	return out
}
