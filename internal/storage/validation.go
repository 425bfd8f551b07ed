// Package storage provides the SQLite persistence layer for expenses and chat
// transcripts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/chitieu/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrNotFound         = errors.New("record not found")
)

const dateLayout = "2006-01-02"

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func validateDateRange(start, end string) error {
	if err := validateDate(start); err != nil {
		return err
	}
	if err := validateDate(end); err != nil {
		return err
	}
	// YYYY-MM-DD compares lexically in date order.
	if start > end {
		return ErrInvalidDateRange
	}
	return nil
}

func validateNewExpense(expense model.NewExpense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if strings.TrimSpace(expense.CategoryID) == "" {
		return fmt.Errorf("%w: category id is required", ErrInvalidExpense)
	}
	if strings.TrimSpace(expense.CategoryName) == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidExpense)
	}
	if err := validateDate(expense.Date); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}
	return nil
}

func validateExpenseUpdate(update model.ExpenseUpdate) error {
	if update.Amount != nil && *update.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if update.CategoryID != nil && strings.TrimSpace(*update.CategoryID) == "" {
		return fmt.Errorf("%w: category id is required", ErrInvalidExpense)
	}
	if update.CategoryName != nil && strings.TrimSpace(*update.CategoryName) == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidExpense)
	}
	if update.Date != nil {
		if err := validateDate(*update.Date); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
		}
	}
	return nil
}

func validateChatMessage(msg *model.ChatMessage) error {
	if msg == nil {
		return fmt.Errorf("%w: chat message", ErrNilParameter)
	}
	if err := validateDate(msg.Date); err != nil {
		return err
	}
	return validateString(msg.Text, "text")
}
