package extract

import (
	"context"
	"time"

	"github.com/Veraticus/chitieu/internal/model"
)

// MsgAmountNotFound is the error message reported when no amount can be parsed.
const MsgAmountNotFound = "amount not found"

// Fallback is the deterministic, offline extraction strategy. It composes
// ParseAmount, ParseDate and a CategoryFinder and never touches the network.
type Fallback struct {
	categories CategoryFinder
	now        func() time.Time
}

// FallbackOption configures a Fallback.
type FallbackOption func(*Fallback)

// WithClock sets the clock used to resolve relative dates.
func WithClock(now func() time.Time) FallbackOption {
	return func(f *Fallback) {
		f.now = now
	}
}

// NewFallback creates the regex fallback strategy.
func NewFallback(categories CategoryFinder, opts ...FallbackOption) *Fallback {
	f := &Fallback{
		categories: categories,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name identifies the strategy in logs.
func (f *Fallback) Name() string {
	return "regex"
}

// Extract parses text without any external dependency.
func (f *Fallback) Extract(_ context.Context, text string) model.ExtractionResult {
	amount, ok := ParseAmount(text)
	if !ok {
		return model.FailedResult(MsgAmountNotFound)
	}

	expense := &model.ExtractedExpense{
		Amount:      amount,
		Description: text,
		Date:        ParseDate(text, f.now()),
	}

	cat, found := f.categories.FindCategory(text)
	if !found {
		expense.CategoryID = model.OtherCategoryID
		expense.CategoryName = model.OtherCategoryName
		expense.Confidence = model.ConfidenceLow
		return model.ExtractionResult{
			Success:             true,
			Data:                expense,
			NeedsManualCategory: true,
		}
	}

	expense.CategoryID = cat.ID
	expense.CategoryName = cat.Name
	expense.Confidence = model.ConfidenceMedium
	return model.ExtractionResult{
		Success: true,
		Data:    expense,
	}
}
