package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/chitieu/internal/category"
)

func TestBuildSystemPrompt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	prompt := buildSystemPrompt(category.Default().All(), now)

	assert.Contains(t, prompt, "books (Books)")
	assert.Contains(t, prompt, "other (Other)")
	assert.Contains(t, prompt, "Today is 2026-03-01")
	assert.Contains(t, prompt, `"date": "2026-02-28"`, "yesterday example crosses the month boundary")
	assert.Contains(t, prompt, `"date": "2026-03-02"`)
	assert.Contains(t, prompt, "Respond ONLY with JSON")
}
