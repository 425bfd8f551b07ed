package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/chat"
	"github.com/Veraticus/chitieu/internal/cli"
	"github.com/Veraticus/chitieu/internal/common"
	"github.com/Veraticus/chitieu/internal/extract"
	"github.com/Veraticus/chitieu/internal/model"
	"github.com/Veraticus/chitieu/internal/workflow"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a single expense",
		Long: `Add one expense, either from free text or from explicit fields.

  chitieu add "hôm qua đổ xăng 50k"
  chitieu add --amount 20k --category books --description "sách"

When the extracted category is uncertain you are asked to pick one, unless
--category is given.`,
		RunE: runAdd,
	}

	cmd.Flags().String("amount", "", "Amount in VND (20000, 20k, 1.5 triệu); skips text extraction")
	cmd.Flags().StringP("category", "c", "", "Category id to use instead of the extracted one")
	cmd.Flags().StringP("date", "d", "", "Date as YYYY-MM-DD or hôm qua/mai (with --amount)")
	cmd.Flags().String("description", "", "Description (with --amount)")
	cmd.Flags().Bool("offline", false, "Skip AI extraction and use keyword matching only")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	amountFlag, _ := cmd.Flags().GetString("amount")
	categoryID, _ := cmd.Flags().GetString("category")
	offline, _ := cmd.Flags().GetBool("offline")

	registry := category.Default()
	var selected *model.Category
	if categoryID != "" {
		c, err := registry.MustGet(strings.ToLower(categoryID))
		if err != nil {
			return common.NewUserError(fmt.Sprintf("Unknown category %q. Run 'chitieu categories' to list them.", categoryID), err)
		}
		selected = &c
	}

	if amountFlag == "" && len(args) == 0 {
		return common.NewUserError(`Describe the expense, e.g. chitieu add "mua sách 20k"`, common.ErrEmptyInput)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if amountFlag != "" {
		if selected == nil {
			return common.NewUserError("--category is required with --amount", errors.New("missing category"))
		}
		expense, err := buildManualExpense(cmd, amountFlag, *selected)
		if err != nil {
			return err
		}
		saved, err := store.AddExpense(ctx, expense)
		if err != nil {
			return fmt.Errorf("failed to save expense: %w", err)
		}
		fmt.Fprintln(out, cli.FormatSuccess(savedLine(saved)))
		return nil
	}

	pipeline, err := createPipeline(cfg, registry, offline)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	result := pipeline.Extract(ctx, text)
	if result.Success && selected != nil {
		result.Data.CategoryID = selected.ID
		result.Data.CategoryName = selected.Name
		result.Data.Confidence = model.ConfidenceHigh
		result.NeedsManualCategory = false
	}

	wf := workflow.New(store, registry, slog.Default())
	outcome, err := wf.Submit(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	switch outcome.Action {
	case workflow.ActionRejected:
		return common.NewUserError(chat.NotFoundText, errors.New(result.Error))
	case workflow.ActionCommitted:
		fmt.Fprintln(out, cli.FormatSuccess(savedLine(outcome.Expense)))
		return nil
	}

	prompter := cli.NewCLIPrompter(cmd.InOrStdin(), out)
	id, err := prompter.SelectCategory(ctx, *outcome.Pending, registry.All(), chat.FormatVND)
	if errors.Is(err, cli.ErrSelectionCancelled) {
		_ = wf.Cancel()
		fmt.Fprintln(out, cli.FormatInfo(chat.CancelledText))
		return nil
	}
	if err != nil {
		return err
	}

	expense, err := wf.ConfirmWith(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess(savedLine(expense)))
	return nil
}

func buildManualExpense(cmd *cobra.Command, amountFlag string, c model.Category) (model.NewExpense, error) {
	dateFlag, _ := cmd.Flags().GetString("date")
	description, _ := cmd.Flags().GetString("description")

	amount, ok := extract.ParseAmount(amountFlag)
	if !ok {
		return model.NewExpense{}, common.NewUserError(
			fmt.Sprintf("Could not read amount %q. Try 20000, 20k or 1.5 triệu.", amountFlag),
			common.ErrInvalidAmount)
	}

	date, err := resolveDate(dateFlag)
	if err != nil {
		return model.NewExpense{}, common.NewUserError(err.Error(), err)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = c.Name
	}

	return model.NewExpense{
		Amount:       amount,
		CategoryID:   c.ID,
		CategoryName: c.Name,
		Description:  description,
		Date:         date,
	}, nil
}

func savedLine(expense *model.Expense) string {
	return fmt.Sprintf("Saved %s - %s on %s %s",
		chat.FormatVND(expense.Amount),
		expense.CategoryName,
		expense.Date,
		cli.SubtleStyle.Render("("+expense.ID+")"))
}
