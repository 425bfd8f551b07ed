package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/chitieu/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// withFixedClock pins timestamps and makes ids predictable.
func withFixedClock(store *SQLiteStorage, now time.Time) {
	store.now = func() time.Time { return now }
	seq := 0
	store.newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
}

func newTestExpense(amount int64, categoryID, date string) model.NewExpense {
	return model.NewExpense{
		Amount:       amount,
		CategoryID:   categoryID,
		CategoryName: categoryID,
		Description:  "test " + categoryID,
		Date:         date,
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates nested directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "a", "b", "chitieu.db")
		store, err := NewSQLiteStorage(dbPath)
		if err != nil {
			t.Fatalf("NewSQLiteStorage() error = %v", err)
		}
		defer func() { _ = store.Close() }()

		if store.Path() != dbPath {
			t.Errorf("Path() = %q, want %q", store.Path(), dbPath)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := NewSQLiteStorage(" "); !errors.Is(err, ErrEmptyString) {
			t.Errorf("NewSQLiteStorage(\" \") error = %v, want ErrEmptyString", err)
		}
	})

	t.Run("in memory", func(t *testing.T) {
		store, err := NewSQLiteStorage(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteStorage(:memory:) error = %v", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Migrate(context.Background()); err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
	})
}

func TestAddExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Date(2026, 1, 11, 9, 30, 0, 0, time.UTC)
	withFixedClock(store, now)

	expense, err := store.AddExpense(ctx, model.NewExpense{
		Amount:       20000,
		CategoryID:   "books",
		CategoryName: "Books",
		Description:  "  mua sách ",
		Date:         "2026-01-11",
	})
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	if expense.ID != "exp_id-001" {
		t.Errorf("ID = %q, want exp_id-001", expense.ID)
	}
	if expense.Description != "mua sách" {
		t.Errorf("Description = %q, want trimmed", expense.Description)
	}
	if !expense.CreatedAt.Equal(now) || !expense.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v, want %v", expense.CreatedAt, expense.UpdatedAt, now)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense() error = %v", err)
	}
	if got.Amount != 20000 || got.CategoryID != "books" || got.CategoryName != "Books" || got.Date != "2026-01-11" {
		t.Errorf("GetExpense() = %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
}

func TestAddExpense_GeneratesUniqueIDs(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		expense, err := store.AddExpense(ctx, newTestExpense(1000, "water", "2026-01-11"))
		if err != nil {
			t.Fatalf("AddExpense() error = %v", err)
		}
		if seen[expense.ID] {
			t.Fatalf("duplicate id %s", expense.ID)
		}
		seen[expense.ID] = true
	}
}

func TestAddExpense_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		expense model.NewExpense
	}{
		{name: "zero amount", expense: newTestExpense(0, "books", "2026-01-11")},
		{name: "negative amount", expense: newTestExpense(-5, "books", "2026-01-11")},
		{name: "missing category", expense: newTestExpense(1000, "", "2026-01-11")},
		{name: "bad date", expense: newTestExpense(1000, "books", "11/01/2026")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.AddExpense(ctx, tt.expense); !errors.Is(err, ErrInvalidExpense) {
				t.Errorf("AddExpense() error = %v, want ErrInvalidExpense", err)
			}
		})
	}
}

func TestGetExpense_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if _, err := store.GetExpense(context.Background(), "exp_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExpense() error = %v, want ErrNotFound", err)
	}
}

func TestExpenseQueries(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	seed := []model.NewExpense{
		newTestExpense(10000, "books", "2026-01-09"),
		newTestExpense(20000, "fuel", "2026-01-10"),
		newTestExpense(30000, "books", "2026-01-11"),
		newTestExpense(40000, "groceries", "2026-01-12"),
	}
	for _, e := range seed {
		if _, err := store.AddExpense(ctx, e); err != nil {
			t.Fatalf("AddExpense() error = %v", err)
		}
	}

	t.Run("all newest first", func(t *testing.T) {
		all, err := store.GetAllExpenses(ctx)
		if err != nil {
			t.Fatalf("GetAllExpenses() error = %v", err)
		}
		if len(all) != 4 {
			t.Fatalf("len = %d, want 4", len(all))
		}
		if all[0].Date != "2026-01-12" || all[3].Date != "2026-01-09" {
			t.Errorf("order = %s..%s, want newest first", all[0].Date, all[3].Date)
		}
	})

	t.Run("inclusive date range", func(t *testing.T) {
		ranged, err := store.GetExpensesByDateRange(ctx, "2026-01-10", "2026-01-11")
		if err != nil {
			t.Fatalf("GetExpensesByDateRange() error = %v", err)
		}
		if len(ranged) != 2 {
			t.Fatalf("len = %d, want 2", len(ranged))
		}
		var total int64
		for _, e := range ranged {
			total += e.Amount
		}
		if total != 50000 {
			t.Errorf("total = %d, want 50000", total)
		}
	})

	t.Run("reversed range", func(t *testing.T) {
		if _, err := store.GetExpensesByDateRange(ctx, "2026-01-12", "2026-01-10"); !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("error = %v, want ErrInvalidDateRange", err)
		}
	})

	t.Run("by category", func(t *testing.T) {
		books, err := store.GetExpensesByCategory(ctx, "books")
		if err != nil {
			t.Fatalf("GetExpensesByCategory() error = %v", err)
		}
		if len(books) != 2 {
			t.Errorf("len = %d, want 2", len(books))
		}

		none, err := store.GetExpensesByCategory(ctx, "rent")
		if err != nil {
			t.Fatalf("GetExpensesByCategory() error = %v", err)
		}
		if len(none) != 0 {
			t.Errorf("len = %d, want 0", len(none))
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	created := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	withFixedClock(store, created)
	expense, err := store.AddExpense(ctx, newTestExpense(15000, "other", "2026-01-11"))
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	later := created.Add(time.Hour)
	store.now = func() time.Time { return later }

	categoryID, categoryName, amount := "groceries", "Groceries", int64(18000)
	updated, err := store.UpdateExpense(ctx, expense.ID, model.ExpenseUpdate{
		Amount:       &amount,
		CategoryID:   &categoryID,
		CategoryName: &categoryName,
	})
	if err != nil {
		t.Fatalf("UpdateExpense() error = %v", err)
	}
	if updated.Amount != 18000 || updated.CategoryID != "groceries" {
		t.Errorf("UpdateExpense() = %+v", updated)
	}
	if updated.Description != expense.Description {
		t.Errorf("Description changed to %q", updated.Description)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense() error = %v", err)
	}
	if !got.UpdatedAt.Equal(later) || !got.CreatedAt.Equal(created) {
		t.Errorf("timestamps = %v/%v", got.CreatedAt, got.UpdatedAt)
	}

	if _, err := store.UpdateExpense(ctx, "exp_missing", model.ExpenseUpdate{Amount: &amount}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateExpense(missing) error = %v, want ErrNotFound", err)
	}

	zero := int64(0)
	if _, err := store.UpdateExpense(ctx, expense.ID, model.ExpenseUpdate{Amount: &zero}); !errors.Is(err, ErrInvalidExpense) {
		t.Errorf("UpdateExpense(zero) error = %v, want ErrInvalidExpense", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense, err := store.AddExpense(ctx, newTestExpense(1000, "water", "2026-01-11"))
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	if err := store.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}
	if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExpense() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteExpense(ctx, expense.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteExpense() error = %v, want ErrNotFound", err)
	}
}
