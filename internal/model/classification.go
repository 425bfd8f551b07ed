// Package model defines the core domain models used throughout the application.
package model

// Confidence is the qualitative trust level attached to an extraction.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of the known confidence tiers.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ExtractedExpense is the structured form of a free-text purchase description.
type ExtractedExpense struct {
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Description  string     `json:"description"`
	Date         string     `json:"date"` // YYYY-MM-DD
	Confidence   Confidence `json:"confidence"`
	Amount       int64      `json:"amount"`
}

// ExtractionResult is the tagged outcome of one extraction attempt.
// Success implies Data is set.
type ExtractionResult struct {
	Data                *ExtractedExpense `json:"data,omitempty"`
	Error               string            `json:"error,omitempty"`
	Success             bool              `json:"success"`
	NeedsManualCategory bool              `json:"needsManualCategory"`
}

// NeedsConfirmation reports whether the result must be confirmed by the user
// before it can be stored.
func (r ExtractionResult) NeedsConfirmation() bool {
	if r.NeedsManualCategory {
		return true
	}
	return r.Data == nil || r.Data.Confidence == ConfidenceLow
}

// FailedResult builds a failed extraction result.
func FailedResult(msg string) ExtractionResult {
	return ExtractionResult{
		Error:               msg,
		NeedsManualCategory: true,
	}
}

// PendingExpense holds an extracted expense while the user picks its category.
type PendingExpense struct {
	Description string `json:"description"`
	Date        string `json:"date"`
	CategoryID  string `json:"categoryId,omitempty"`
	Amount      int64  `json:"amount"`
}
