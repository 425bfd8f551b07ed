// Package workflow decides whether an extracted expense is stored right away
// or parked until the user confirms its category.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/chitieu/internal/model"
	"github.com/Veraticus/chitieu/internal/service"
)

// Workflow errors.
var (
	ErrNoPending          = errors.New("no expense is waiting for confirmation")
	ErrNoCategorySelected = errors.New("no category selected")
	ErrUnknownCategory    = errors.New("unknown category")
)

// State is the confirmation state of the single pending slot.
type State int

// Workflow states. Committed and Cancelled accept new submissions like Idle.
const (
	StateIdle State = iota
	StatePendingConfirmation
	StateCommitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingConfirmation:
		return "pending_confirmation"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action reports what Submit did with a result.
type Action string

// Submit actions.
const (
	ActionRejected  Action = "rejected"
	ActionCommitted Action = "committed"
	ActionPending   Action = "pending"
)

// Outcome describes the effect of a submission.
type Outcome struct {
	Expense  *model.Expense
	Pending  *model.PendingExpense
	Action   Action
	Replaced bool // an unresolved pending expense was overwritten or discarded
}

// CategoryLookup resolves category ids.
type CategoryLookup interface {
	Get(id string) (model.Category, bool)
}

// Workflow holds at most one pending expense.
type Workflow struct {
	store      service.ExpenseWriter
	categories CategoryLookup
	logger     *slog.Logger
	pending    *model.PendingExpense
	state      State
	mu         sync.Mutex
}

// New creates a workflow that persists through store.
func New(store service.ExpenseWriter, categories CategoryLookup, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		store:      store,
		categories: categories,
		logger:     logger,
		state:      StateIdle,
	}
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Pending returns a copy of the pending expense, if any.
func (w *Workflow) Pending() (model.PendingExpense, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return model.PendingExpense{}, false
	}
	return *w.pending, true
}

// Submit routes an extraction result. Failed results leave the workflow
// untouched. Confident results are stored immediately. Everything else
// replaces the pending slot.
func (w *Workflow) Submit(ctx context.Context, result model.ExtractionResult) (Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !result.Success || result.Data == nil {
		return Outcome{Action: ActionRejected}, nil
	}

	data := result.Data
	if !result.NeedsConfirmation() {
		expense, err := w.store.AddExpense(ctx, model.NewExpense{
			Amount:       data.Amount,
			CategoryID:   data.CategoryID,
			CategoryName: data.CategoryName,
			Description:  data.Description,
			Date:         data.Date,
		})
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to save expense: %w", err)
		}

		replaced := w.pending != nil
		if replaced {
			w.logger.Info("discarding unconfirmed expense after auto-commit",
				"amount", w.pending.Amount,
				"description", w.pending.Description)
		}
		w.pending = nil
		w.state = StateCommitted
		return Outcome{Action: ActionCommitted, Expense: expense, Replaced: replaced}, nil
	}

	pending := &model.PendingExpense{
		Amount:      data.Amount,
		Description: data.Description,
		Date:        data.Date,
	}
	if data.CategoryID != "" && data.CategoryID != model.OtherCategoryID {
		pending.CategoryID = data.CategoryID
	}

	replaced := w.pending != nil
	if replaced {
		w.logger.Info("overwriting unconfirmed expense",
			"amount", w.pending.Amount,
			"description", w.pending.Description)
	}
	w.pending = pending
	w.state = StatePendingConfirmation

	snapshot := *pending
	return Outcome{Action: ActionPending, Pending: &snapshot, Replaced: replaced}, nil
}

// SelectCategory sets the category of the pending expense.
func (w *Workflow) SelectCategory(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return ErrNoPending
	}
	if _, ok := w.categories.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, id)
	}
	w.pending.CategoryID = id
	return nil
}

// Confirm stores the pending expense under its selected category. On a store
// error the pending expense is kept so the user can try again.
func (w *Workflow) Confirm(ctx context.Context) (*model.Expense, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return nil, ErrNoPending
	}
	if w.pending.CategoryID == "" {
		return nil, ErrNoCategorySelected
	}

	cat, ok := w.categories.Get(w.pending.CategoryID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, w.pending.CategoryID)
	}

	expense, err := w.store.AddExpense(ctx, model.NewExpense{
		Amount:       w.pending.Amount,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Description:  w.pending.Description,
		Date:         w.pending.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	w.pending = nil
	w.state = StateCommitted
	return expense, nil
}

// ConfirmWith selects a category and confirms in one step.
func (w *Workflow) ConfirmWith(ctx context.Context, categoryID string) (*model.Expense, error) {
	if err := w.SelectCategory(categoryID); err != nil {
		return nil, err
	}
	return w.Confirm(ctx)
}

// Cancel discards the pending expense without storing it.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return ErrNoPending
	}
	w.pending = nil
	w.state = StateCancelled
	return nil
}
