package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/chat"
	"github.com/Veraticus/chitieu/internal/cli"
	"github.com/Veraticus/chitieu/internal/common"
	"github.com/Veraticus/chitieu/internal/model"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <text>",
		Short: "Show what would be extracted from a message",
		Long: `Run the extraction pipeline on a message without saving anything.
Useful for checking how amounts, dates and categories are understood.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Bool("offline", false, "Skip AI extraction and use keyword matching only")
	cmd.Flags().Bool("json", false, "Print the raw extraction result as JSON")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	offline, _ := cmd.Flags().GetBool("offline")
	asJSON, _ := cmd.Flags().GetBool("json")

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return common.NewUserError("Nothing to extract.", common.ErrEmptyInput)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeline, err := createPipeline(cfg, category.Default(), offline)
	if err != nil {
		return err
	}

	result := pipeline.Extract(cmd.Context(), text)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, formatExtraction(result))
	return nil
}

func formatExtraction(result model.ExtractionResult) string {
	if !result.Success || result.Data == nil {
		return cli.FormatError("No expense found: " + result.Error)
	}

	d := result.Data
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Amount:"), chat.FormatVND(d.Amount))
	fmt.Fprintf(&b, "%s %s (%s)\n", cli.BoldStyle.Render("Category:"), d.CategoryName, d.CategoryID)
	fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Date:"), d.Date)
	fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Description:"), d.Description)
	fmt.Fprintf(&b, "%s %s", cli.BoldStyle.Render("Confidence:"), d.Confidence)
	if result.NeedsConfirmation() {
		b.WriteString("\n" + cli.FormatWarning("Category needs confirmation"))
	}
	return cli.RenderBox("Extraction", b.String())
}
