package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/chat"
	"github.com/Veraticus/chitieu/internal/cli"
	"github.com/Veraticus/chitieu/internal/common"
	"github.com/Veraticus/chitieu/internal/extract"
	"github.com/Veraticus/chitieu/internal/model"
	"github.com/Veraticus/chitieu/internal/storage"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"exp"},
		Short:   "List, edit and delete recorded expenses",
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		RunE:  runListExpenses,
	}

	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD, inclusive; default today)")
	cmd.Flags().StringP("category", "c", "", "Only show this category id")

	return cmd
}

func runListExpenses(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	categoryID, _ := cmd.Flags().GetString("category")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var expenses []model.Expense
	switch {
	case from != "" || to != "":
		if from == "" {
			from = "0001-01-01"
		}
		if to == "" {
			to = extract.ParseDate("", timeNow())
		}
		expenses, err = store.GetExpensesByDateRange(ctx, from, to)
	case categoryID != "":
		expenses, err = store.GetExpensesByCategory(ctx, categoryID)
	default:
		expenses, err = store.GetAllExpenses(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}

	// A date range combined with a category narrows the range result.
	if categoryID != "" && (from != "" || to != "") {
		filtered := expenses[:0]
		for _, e := range expenses {
			if e.CategoryID == categoryID {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}

	out := cmd.OutOrStdout()
	if len(expenses) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No expenses found. Use 'chitieu add' or 'chitieu chat' to record one."))
		return nil
	}

	fmt.Fprintln(out, renderExpenses(expenses, category.Default()))
	return nil
}

func renderExpenses(expenses []model.Expense, categories *category.Registry) string {
	rows := make([][]string, 0, len(expenses))
	var total int64
	for _, e := range expenses {
		label := e.CategoryName
		if c, ok := categories.Get(e.CategoryID); ok {
			label = cli.FormatCategory(c)
		}
		rows = append(rows, []string{
			e.Date,
			chat.FormatVND(e.Amount),
			label,
			truncate(e.Description, 40),
			cli.SubtleStyle.Render(e.ID),
		})
		total += e.Amount
	}

	table := cli.RenderTable([]string{"Date", "Amount", "Category", "Description", "ID"}, rows)
	summary := cli.BoldStyle.Render(fmt.Sprintf("%d expenses, total %s", len(expenses), chat.FormatVND(total)))
	return table + "\n\n" + summary
}

func updateExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdateExpense,
	}

	cmd.Flags().String("amount", "", "New amount (20000, 20k, 1.5 triệu)")
	cmd.Flags().StringP("category", "c", "", "New category id")
	cmd.Flags().StringP("date", "d", "", "New date (YYYY-MM-DD)")
	cmd.Flags().String("description", "", "New description")

	return cmd
}

func runUpdateExpense(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	update, err := expenseUpdateFromFlags(cmd, category.Default())
	if err != nil {
		return err
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

	expense, err := store.UpdateExpense(ctx, args[0], update)
	if errors.Is(err, storage.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("Expense %s not found.", args[0]), err)
	}
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated "+strings.TrimPrefix(savedLine(expense), "Saved ")))
	return nil
}

// expenseUpdateFromFlags collects the changed flags. At least one is required.
func expenseUpdateFromFlags(cmd *cobra.Command, categories *category.Registry) (model.ExpenseUpdate, error) {
	var update model.ExpenseUpdate
	flags := cmd.Flags()

	if flags.Changed("amount") {
		value, _ := flags.GetString("amount")
		amount, ok := extract.ParseAmount(value)
		if !ok {
			return update, common.NewUserError(fmt.Sprintf("Could not read amount %q.", value), common.ErrInvalidAmount)
		}
		update.Amount = &amount
	}
	if flags.Changed("category") {
		value, _ := flags.GetString("category")
		c, err := categories.MustGet(strings.ToLower(value))
		if err != nil {
			return update, common.NewUserError(fmt.Sprintf("Unknown category %q.", value), err)
		}
		update.CategoryID = &c.ID
		update.CategoryName = &c.Name
	}
	if flags.Changed("date") {
		value, _ := flags.GetString("date")
		date, err := resolveDate(value)
		if err != nil {
			return update, common.NewUserError(err.Error(), err)
		}
		update.Date = &date
	}
	if flags.Changed("description") {
		value, _ := flags.GetString("description")
		value = strings.TrimSpace(value)
		update.Description = &value
	}

	if update == (model.ExpenseUpdate{}) {
		return update, common.NewUserError("Nothing to update. Pass --amount, --category, --date or --description.", common.ErrEmptyInput)
	}
	return update, nil
}

func deleteExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteExpense,
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	return cmd
}

func runDeleteExpense(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	yes, _ := cmd.Flags().GetBool("yes")
	id := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	expense, err := store.GetExpense(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("Expense %s not found.", id), err)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}

	out := cmd.OutOrStdout()
	if !yes {
		prompter := cli.NewCLIPrompter(cmd.InOrStdin(), out)
		question := fmt.Sprintf("Delete %s - %s on %s?", chat.FormatVND(expense.Amount), expense.CategoryName, expense.Date)
		ok, err := prompter.Confirm(ctx, question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Nothing deleted."))
			return nil
		}
	}

	if err := store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess("Deleted expense "+id))
	return nil
}
