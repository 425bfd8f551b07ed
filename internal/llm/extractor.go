package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/chitieu/internal/extract"
	"github.com/Veraticus/chitieu/internal/model"
)

// Soft failure messages reported by the AI strategy.
const (
	MsgParseFailed = "Failed to parse AI response"
	MsgTimeout     = "AI request timed out"
)

var _ extract.Strategy = (*Extractor)(nil)

// CategoryCatalog is the view of the category registry the extractor needs.
type CategoryCatalog interface {
	All() []model.Category
	FindCategory(label string) (model.Category, bool)
}

// Extractor is the AI-backed extraction strategy. Every failure is reported
// as a soft failure result so the pipeline can fall back.
type Extractor struct {
	client     Client
	configErr  error
	categories CategoryCatalog
	cache      *extractionCache
	limiter    *rateLimiter
	logger     *slog.Logger
	now        func() time.Time
	timeout    time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClient overrides the provider client built from Config.
func WithClient(client Client) Option {
	return func(e *Extractor) {
		e.client = client
	}
}

// WithClock sets the clock used for dates in the prompt and fallbacks.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates the AI strategy. A missing API key is not an error
// here; it surfaces as a soft failure on every Extract call. An unknown
// provider is a configuration error.
func NewExtractor(cfg Config, categories CategoryCatalog, logger *slog.Logger, opts ...Option) (*Extractor, error) {
	if categories == nil {
		return nil, fmt.Errorf("category catalog is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	e := &Extractor{
		categories: categories,
		cache:      newExtractionCache(cfg.CacheTTL),
		limiter:    newRateLimiter(cfg.RateLimit),
		logger:     logger,
		now:        time.Now,
		timeout:    cfg.Timeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.client == nil {
		client, err := NewClient(cfg)
		switch {
		case errors.Is(err, ErrMissingAPIKey):
			e.configErr = err
		case err != nil:
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		default:
			e.client = client
		}
	}

	return e, nil
}

// Name identifies the strategy in logs.
func (e *Extractor) Name() string {
	return "ai"
}

// Extract asks the model for a structured expense.
func (e *Extractor) Extract(ctx context.Context, text string) model.ExtractionResult {
	if e.client == nil {
		return model.FailedResult(e.configErr.Error())
	}

	now := e.now()
	key := cacheKey(text, now)
	if cached, ok := e.cache.get(key); ok {
		e.logger.Debug("extraction cache hit", "text", text)
		return model.ExtractionResult{Success: true, Data: &cached}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.limiter.wait(ctx); err != nil {
		return e.softFailure(err)
	}

	content, err := e.client.Complete(ctx, []Message{
		{Role: RoleSystem, Content: buildSystemPrompt(e.categories.All(), now)},
		{Role: RoleUser, Content: text},
	})
	if err != nil {
		return e.softFailure(err)
	}

	expense, err := e.resolve(content, text, now)
	if err != nil {
		e.logger.Warn("discarding AI reply", "error", err, "reply", content)
		return model.FailedResult(MsgParseFailed)
	}

	e.cache.set(key, expense)
	return model.ExtractionResult{Success: true, Data: &expense}
}

// resolve validates the reply and re-resolves its category locally so an
// invented id never reaches the caller.
func (e *Extractor) resolve(content, text string, now time.Time) (model.ExtractedExpense, error) {
	reply, err := parseReply(content)
	if err != nil {
		return model.ExtractedExpense{}, err
	}

	amount, ok := extract.RoundAmount(reply.Amount)
	if !ok {
		return model.ExtractedExpense{}, fmt.Errorf("amount %v is out of range", reply.Amount)
	}

	cat, ok := e.categories.FindCategory(reply.CategoryID)
	if !ok {
		return model.ExtractedExpense{}, fmt.Errorf("unknown category %q", reply.CategoryID)
	}

	date := reply.Date
	if !extract.ValidDate(date) {
		date = extract.ParseDate(text, now)
	}

	description := reply.Description
	if description == "" {
		description = text
	}

	return model.ExtractedExpense{
		Amount:       amount,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Description:  description,
		Date:         date,
		Confidence:   model.ConfidenceHigh,
	}, nil
}

func (e *Extractor) softFailure(err error) model.ExtractionResult {
	e.logger.Warn("AI extraction failed", "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return model.FailedResult(MsgTimeout)
	}
	return model.FailedResult(err.Error())
}
