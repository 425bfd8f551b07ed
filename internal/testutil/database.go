// Package testutil provides test helpers shared by the packages that sit on
// top of storage: an isolated, migrated database and expense fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/chitieu/internal/model"
	"github.com/Veraticus/chitieu/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage  *storage.SQLiteStorage
	t        *testing.T
	Expenses []model.Expense
}

// SetupTestDB creates a new in-memory test database seeded with expenses.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewExpenseBuilder(t).
//			WithExpense(20000, "books", "2026-01-11", "mua sách").
//			Build()...,
//	)
func SetupTestDB(t *testing.T, expenses ...model.NewExpense) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Expenses: expenses})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Expenses       []model.NewExpense
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	ctx := context.Background()

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	db := &TestDB{
		Storage: store,
		t:       t,
	}

	for _, e := range opts.Expenses {
		db.MustAddExpense(e)
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustAddExpense stores e or fails the test.
func (db *TestDB) MustAddExpense(e model.NewExpense) *model.Expense {
	db.t.Helper()

	saved, err := db.Storage.AddExpense(context.Background(), e)
	if err != nil {
		db.t.Fatalf("failed to seed expense %q: %v", e.Description, err)
	}
	db.Expenses = append(db.Expenses, *saved)
	return saved
}

// ExpenseCount returns the number of stored expenses.
func (db *TestDB) ExpenseCount() int {
	db.t.Helper()

	expenses, err := db.Storage.GetAllExpenses(context.Background())
	if err != nil {
		db.t.Fatalf("failed to count expenses: %v", err)
	}
	return len(expenses)
}
