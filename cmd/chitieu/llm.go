package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/config"
	"github.com/Veraticus/chitieu/internal/extract"
	"github.com/Veraticus/chitieu/internal/llm"
)

// timeNow is the clock shared by the commands.
var timeNow = time.Now

// createPipeline builds the extraction chain: the AI strategy first when an
// API key is configured, then the offline keyword fallback.
func createPipeline(cfg *config.Config, categories *category.Registry, offline bool) (*extract.Pipeline, error) {
	logger := slog.Default()
	strategies := make([]extract.Strategy, 0, 2)

	switch {
	case offline:
		slog.Debug("AI extraction disabled by flag")
	case !cfg.HasAPIKey():
		slog.Info("No API key configured, using offline extraction", "provider", cfg.LLM.Provider)
	default:
		ai, err := llm.NewExtractor(cfg.LLM, categories, logger, llm.WithClock(timeNow))
		if err != nil {
			return nil, fmt.Errorf("failed to create AI extractor: %w", err)
		}
		strategies = append(strategies, ai)
	}

	strategies = append(strategies, extract.NewFallback(categories, extract.WithClock(timeNow)))
	return extract.NewPipeline(logger, strategies...)
}
