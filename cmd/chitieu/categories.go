package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show expense categories",
		Long:  `List the built-in expense categories and check which one a phrase maps to.`,
		RunE:  runListCategories,
	}

	cmd.Flags().Bool("keywords", false, "Show the keywords of each category")

	cmd.AddCommand(matchCategoryCmd())

	return cmd
}

func runListCategories(cmd *cobra.Command, _ []string) error {
	showKeywords, _ := cmd.Flags().GetBool("keywords")
	registry := category.Default()

	headers := []string{"#", "Category", "ID"}
	if showKeywords {
		headers = append(headers, "Keywords")
	}

	rows := make([][]string, 0, registry.Len())
	for i, c := range registry.All() {
		row := []string{fmt.Sprintf("%d", i+1), cli.FormatCategory(c), cli.SubtleStyle.Render(c.ID)}
		if showKeywords {
			row = append(row, truncate(strings.Join(c.Keywords, ", "), 60))
		}
		rows = append(rows, row)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Categories"))
	fmt.Fprintln(out, cli.RenderTable(headers, rows))
	return nil
}

func matchCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <text>",
		Short: "Show the category a phrase maps to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			c, ok := category.Default().FindCategory(text)
			if !ok {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No category matches %q; it would be filed under Other.", text)))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%q → %s (%s)", text, cli.FormatCategory(c), c.ID)))
			return nil
		},
	}
}
