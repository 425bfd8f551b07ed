package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/chitieu/internal/config"
	"github.com/Veraticus/chitieu/internal/extract"
	"github.com/Veraticus/chitieu/internal/storage"
)

// loadConfig resolves the typed configuration from viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveDate accepts YYYY-MM-DD or the relative words understood by the
// extractor ("hôm qua", "mai", ...).
func resolveDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return extract.ParseDate("", timeNow()), nil
	}
	if extract.ValidDate(value) {
		return value, nil
	}
	resolved := extract.ParseDate(value, timeNow())
	if resolved == extract.ParseDate("", timeNow()) && !isTodayWord(value) {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", value)
	}
	return resolved, nil
}

func isTodayWord(value string) bool {
	switch strings.ToLower(value) {
	case "today", "hôm nay", "hom nay":
		return true
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
