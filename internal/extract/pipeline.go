package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/chitieu/internal/model"
)

// Pipeline runs strategies in order and stops at the first success. When all
// strategies fail, the last failure is returned. Strategies are never retried.
type Pipeline struct {
	logger     *slog.Logger
	strategies []Strategy
}

// NewPipeline creates a pipeline over the given strategies, tried in order.
// The last strategy should be one that always terminates without the network.
func NewPipeline(logger *slog.Logger, strategies ...Strategy) (*Pipeline, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("pipeline requires at least one strategy")
	}
	for i, s := range strategies {
		if s == nil {
			return nil, fmt.Errorf("strategy at index %d is nil", i)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		logger:     logger,
		strategies: strategies,
	}, nil
}

// Extract converts text into an ExtractionResult. It never returns an error;
// every outcome is reported through the result.
func (p *Pipeline) Extract(ctx context.Context, text string) model.ExtractionResult {
	var result model.ExtractionResult

	for i, strategy := range p.strategies {
		result = p.run(ctx, strategy, text)
		if result.Success && result.Data != nil {
			p.logger.Debug("expense extracted",
				"strategy", strategy.Name(),
				"amount", result.Data.Amount,
				"category", result.Data.CategoryID,
				"confidence", result.Data.Confidence)
			return finalize(result)
		}

		if i < len(p.strategies)-1 {
			p.logger.Warn("extraction strategy failed, trying next",
				"strategy", strategy.Name(),
				"next", p.strategies[i+1].Name(),
				"error", result.Error)
		}
	}

	p.logger.Info("no strategy could extract an expense", "error", result.Error)
	return finalize(result)
}

// run shields the pipeline from a panicking strategy.
func (p *Pipeline) run(ctx context.Context, strategy Strategy, text string) (result model.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("extraction strategy panicked", "strategy", strategy.Name(), "panic", r)
			result = model.FailedResult(fmt.Sprintf("%s extraction failed", strategy.Name()))
		}
	}()
	return strategy.Extract(ctx, text)
}

// finalize enforces the result invariants: success carries data, and low
// confidence always requires a manual category.
func finalize(result model.ExtractionResult) model.ExtractionResult {
	if result.Success && result.Data == nil {
		return model.FailedResult("extraction returned no data")
	}
	if !result.Success {
		result.Data = nil
		result.NeedsManualCategory = true
		return result
	}
	if result.Data.Confidence == model.ConfidenceLow {
		result.NeedsManualCategory = true
	}
	return result
}
