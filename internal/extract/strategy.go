// Package extract turns free-form purchase text into a structured expense.
// It provides the deterministic parsers, the regex fallback strategy and the
// pipeline that chains strategies together.
package extract

import (
	"context"

	"github.com/Veraticus/chitieu/internal/model"
)

// Strategy is one way of extracting an expense from text. Implementations
// report every failure through the returned result and never panic.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, text string) model.ExtractionResult
}

// Extractor is the single entry point used by callers of the pipeline.
type Extractor interface {
	Extract(ctx context.Context, text string) model.ExtractionResult
}

// CategoryFinder resolves free text to a category.
type CategoryFinder interface {
	FindCategory(label string) (model.Category, bool)
}
