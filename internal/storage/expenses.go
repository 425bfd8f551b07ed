package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/chitieu/internal/model"
)

const expenseColumns = `id, amount, category_id, category_name, description, date, created_at, updated_at`

// AddExpense stores a new expense under a generated "exp_" id.
func (s *SQLiteStorage) AddExpense(ctx context.Context, expense model.NewExpense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateNewExpense(expense); err != nil {
		return nil, err
	}

	now := s.timestamp()
	stored := &model.Expense{
		ID:           "exp_" + s.newID(),
		Amount:       expense.Amount,
		CategoryID:   expense.CategoryID,
		CategoryName: expense.CategoryName,
		Description:  strings.TrimSpace(expense.Description),
		Date:         expense.Date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Amount, stored.CategoryID, stored.CategoryName,
		stored.Description, stored.Date, stored.CreatedAt, stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	return stored, nil
}

// GetExpense returns one expense or ErrNotFound.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getExpense(ctx, s.db, id)
}

// GetAllExpenses returns every expense, newest date first.
func (s *SQLiteStorage) GetAllExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at DESC`)
}

// GetExpensesByDateRange returns expenses dated within [start, end].
func (s *SQLiteStorage) GetExpensesByDateRange(ctx context.Context, start, end string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC, created_at DESC`, start, end)
}

// GetExpensesByCategory returns the expenses filed under categoryID.
func (s *SQLiteStorage) GetExpensesByCategory(ctx context.Context, categoryID string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE category_id = ?
		ORDER BY date DESC, created_at DESC`, categoryID)
}

// UpdateExpense applies the non-nil fields of update and bumps updated_at.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id string, update model.ExpenseUpdate) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateExpenseUpdate(update); err != nil {
		return nil, err
	}

	var updated *model.Expense
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getExpense(ctx, tx, id)
		if err != nil {
			return err
		}

		if update.Amount != nil {
			current.Amount = *update.Amount
		}
		if update.CategoryID != nil {
			current.CategoryID = *update.CategoryID
		}
		if update.CategoryName != nil {
			current.CategoryName = *update.CategoryName
		}
		if update.Description != nil {
			current.Description = strings.TrimSpace(*update.Description)
		}
		if update.Date != nil {
			current.Date = *update.Date
		}
		current.UpdatedAt = s.timestamp()

		_, err = tx.ExecContext(ctx, `
			UPDATE expenses
			SET amount = ?, category_id = ?, category_name = ?, description = ?, date = ?, updated_at = ?
			WHERE id = ?`,
			current.Amount, current.CategoryID, current.CategoryName,
			current.Description, current.Date, current.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExpense removes an expense or returns ErrNotFound.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func getExpense(ctx context.Context, q queryer, id string) (*model.Expense, error) {
	row := q.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

func scanExpense(row rowScanner) (*model.Expense, error) {
	var e model.Expense
	err := row.Scan(&e.ID, &e.Amount, &e.CategoryID, &e.CategoryName,
		&e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
