package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/chitieu/internal/model"
)

// ErrSelectionCancelled is returned when the user cancels a category choice.
var ErrSelectionCancelled = errors.New("selection cancelled")

// Prompter asks the user questions on a terminal.
type Prompter struct {
	writer io.Writer
	reader *LineReader
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// ReadMessage prompts for one chat message. Blank lines are skipped.
func (p *Prompter) ReadMessage(ctx context.Context, prompt string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// SelectCategory shows the pending expense with a numbered category list and
// returns the chosen category id. Entries may be picked by number, id or
// name; "c" cancels.
func (p *Prompter) SelectCategory(ctx context.Context, pending model.PendingExpense, categories []model.Category, formatAmount func(int64) string) (string, error) {
	if _, err := fmt.Fprintln(p.writer, RenderBox("Confirm category", p.formatPending(pending, formatAmount))); err != nil {
		return "", fmt.Errorf("failed to write pending expense: %w", err)
	}
	if err := p.writeCategoryList(categories, pending.CategoryID); err != nil {
		return "", err
	}

	for {
		prompt := "Category number, id or name ([c] cancel)"
		if pending.CategoryID != "" {
			prompt = "Category number, id or name ([enter] keep " + pending.CategoryID + ", [c] cancel)"
		}
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("input terminated")
			}
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(input))
		switch {
		case choice == "" && pending.CategoryID != "":
			return pending.CategoryID, nil
		case choice == "c" || choice == "cancel":
			return "", ErrSelectionCancelled
		}

		if id, ok := matchCategory(choice, categories); ok {
			return id, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Invalid choice. Please try again.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

// Confirm asks a yes/no question. Anything but y/yes is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (p *Prompter) formatPending(pending model.PendingExpense, formatAmount func(int64) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Amount:"), formatAmount(pending.Amount))
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Date:"), pending.Date)
	fmt.Fprintf(&b, "%s %s", BoldStyle.Render("Description:"), pending.Description)
	return b.String()
}

func (p *Prompter) writeCategoryList(categories []model.Category, selected string) error {
	for i, c := range categories {
		marker := " "
		if c.ID == selected {
			marker = SuccessStyle.Render("•")
		}
		line := fmt.Sprintf("%s %2d. %s %s", marker, i+1, FormatCategory(c), SubtleStyle.Render("("+c.ID+")"))
		if _, err := fmt.Fprintln(p.writer, line); err != nil {
			return fmt.Errorf("failed to write category list: %w", err)
		}
	}
	return nil
}

// matchCategory resolves a 1-based index, id or case-insensitive name.
func matchCategory(choice string, categories []model.Category) (string, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(categories) {
			return categories[n-1].ID, true
		}
		return "", false
	}
	for _, c := range categories {
		if c.ID == choice || strings.ToLower(c.Name) == choice {
			return c.ID, true
		}
	}
	return "", false
}
