package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/chat"
	"github.com/Veraticus/chitieu/internal/cli"
	"github.com/Veraticus/chitieu/internal/common"
	"github.com/Veraticus/chitieu/internal/workflow"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Record expenses in an interactive chat",
		Long: `Start a chat session. Each message is turned into an expense:
confident extractions are saved immediately, the rest ask you to pick a
category first.

Commands inside the chat:
  /history   show today's conversation again
  /quit      leave the chat`,
		RunE: runChat,
	}

	cmd.Flags().Bool("offline", false, "Skip AI extraction and use keyword matching only")

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	offline, _ := cmd.Flags().GetBool("offline")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Debug("Loaded configuration", "config", cfg)

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	registry := category.Default()
	pipeline, err := createPipeline(cfg, registry, offline)
	if err != nil {
		return err
	}

	wf := workflow.New(store, registry, slog.Default())
	session := chat.NewSession(pipeline, wf, slog.Default(),
		chat.WithTranscript(store),
		chat.WithClock(timeNow))

	out := cmd.OutOrStdout()
	handler := cli.NewInterruptHandler(out, "Expenses waiting for a category were not saved.")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	c := &chatLoop{
		session:    session,
		prompter:   cli.NewCLIPrompter(cmd.InOrStdin(), out),
		categories: registry,
		out:        out,
	}
	if err := c.run(ctx); err != nil && !handler.WasInterrupted() {
		return err
	}
	return nil
}

// chatLoop drives one terminal conversation.
type chatLoop struct {
	session    *chat.Session
	prompter   *cli.Prompter
	categories *category.Registry
	out        io.Writer
}

func (c *chatLoop) run(ctx context.Context) error {
	c.println(cli.FormatTitle(cli.WalletIcon + " chitieu"))
	if err := c.showHistory(ctx); err != nil {
		return err
	}

	for {
		text, err := c.prompter.ReadMessage(ctx, "You")
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, cli.ErrInputCancelled):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read message: %w", err)
		}

		switch strings.ToLower(text) {
		case "/quit", "/exit", "/q":
			c.println(cli.FormatInfo("Hẹn gặp lại! " + cli.WalletIcon))
			return nil
		case "/history":
			if err := c.showHistory(ctx); err != nil {
				return err
			}
			continue
		}

		reply, err := c.session.Send(ctx, text)
		if errors.Is(err, common.ErrEmptyInput) {
			continue
		}
		if err != nil {
			return err
		}
		c.println(cli.FormatChatMessage(reply.Message))

		if reply.NeedsCategory() {
			if err := c.resolvePending(ctx, reply); err != nil {
				return err
			}
		}
	}
}

// resolvePending asks for a category until the pending expense is saved or
// cancelled.
func (c *chatLoop) resolvePending(ctx context.Context, reply chat.Reply) error {
	for reply.NeedsCategory() {
		id, err := c.prompter.SelectCategory(ctx, *reply.Pending, c.categories.All(), chat.FormatVND)
		if errors.Is(err, cli.ErrSelectionCancelled) {
			reply, err = c.session.CancelPending(ctx)
			if err != nil {
				return err
			}
			c.println(cli.FormatChatMessage(reply.Message))
			return nil
		}
		if err != nil {
			return err
		}

		reply, err = c.session.ConfirmCategory(ctx, id)
		if errors.Is(err, workflow.ErrUnknownCategory) {
			c.println(cli.FormatError(err.Error()))
			pending, ok := c.session.Pending()
			if !ok {
				return nil
			}
			reply.Pending = &pending
			continue
		}
		if err != nil {
			return err
		}
		c.println(cli.FormatChatMessage(reply.Message))
	}
	return nil
}

func (c *chatLoop) showHistory(ctx context.Context) error {
	messages, err := c.session.History(ctx, c.session.Today())
	if err != nil {
		return err
	}
	for _, msg := range messages {
		c.println(cli.FormatChatMessage(msg))
	}
	return nil
}

func (c *chatLoop) println(s string) {
	if _, err := fmt.Fprintln(c.out, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
