package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/chitieu/internal/chat"
	"github.com/Veraticus/chitieu/internal/cli"
	"github.com/Veraticus/chitieu/internal/common"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [date]",
		Short: "Show the chat transcript of a day",
		Long: `Show the chat transcript of a day (default today). The date may be
YYYY-MM-DD or a relative word such as "hôm qua".`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}

	cmd.AddCommand(historyDatesCmd())
	cmd.AddCommand(clearHistoryCmd())

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var value string
	if len(args) == 1 {
		value = args[0]
	}
	date, err := resolveDate(value)
	if err != nil {
		return common.NewUserError(err.Error(), err)
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

	session := chat.NewSession(nil, nil, nil, chat.WithTranscript(store), chat.WithClock(timeNow))
	messages, err := session.History(ctx, date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(date))
	for _, msg := range messages {
		fmt.Fprintln(out, cli.FormatChatMessage(msg))
	}
	return nil
}

func historyDatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List the days that have a chat transcript",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dates, err := store.GetChatDates(ctx)
			if err != nil {
				return fmt.Errorf("failed to get chat dates: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(dates) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No conversations yet. Start one with 'chitieu chat'."))
				return nil
			}
			for _, d := range dates {
				fmt.Fprintln(out, d)
			}
			return nil
		},
	}
}

func clearHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <date>",
		Short: "Delete the chat transcript of a day",
		Long:  `Delete every chat message of a day. Recorded expenses are kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			yes, _ := cmd.Flags().GetBool("yes")

			date, err := resolveDate(args[0])
			if err != nil {
				return common.NewUserError(err.Error(), err)
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
			if !yes {
				prompter := cli.NewCLIPrompter(cmd.InOrStdin(), out)
				ok, err := prompter.Confirm(ctx, "Delete the conversation of "+date+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Nothing deleted."))
					return nil
				}
			}

			if err := store.DeleteChatMessagesByDate(ctx, date); err != nil {
				return fmt.Errorf("failed to delete chat history: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("Deleted the conversation of "+date))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	return cmd
}
