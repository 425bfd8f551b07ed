// Package chat runs the conversational loop: each user message is extracted,
// routed through the confirmation workflow and answered with a bot reply.
// Both sides of the conversation are kept as a per-day transcript.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/chitieu/internal/common"
	"github.com/Veraticus/chitieu/internal/extract"
	"github.com/Veraticus/chitieu/internal/model"
	"github.com/Veraticus/chitieu/internal/service"
	"github.com/Veraticus/chitieu/internal/workflow"
)

// Bot replies.
const (
	WelcomeText   = "Hello! How can I help you today?"
	NotFoundText  = "Could not extract expense information. Please try again with format like: 'mua sách 20k' or 'Đi chợ 15k'"
	CancelledText = "Expense cancelled. Feel free to try again!"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Reply is the bot's answer to one user action.
type Reply struct {
	Expense *model.Expense
	Pending *model.PendingExpense
	Message model.ChatMessage
}

// NeedsCategory reports whether the user must pick a category next.
func (r Reply) NeedsCategory() bool {
	return r.Pending != nil
}

// Session is one user's conversation.
type Session struct {
	extractor  extract.Extractor
	workflow   *workflow.Workflow
	transcript service.ChatStore
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithTranscript persists every message to store.
func WithTranscript(store service.ChatStore) Option {
	return func(s *Session) {
		s.transcript = store
	}
}

// WithClock sets the clock used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session.
func NewSession(extractor extract.Extractor, wf *workflow.Workflow, logger *slog.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		extractor: extractor,
		workflow:  wf,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send handles one user message.
func (s *Session) Send(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, common.ErrEmptyInput
	}

	s.record(ctx, model.ChatMessage{Text: text, IsUser: true})

	result := s.extractor.Extract(ctx, text)
	outcome, err := s.workflow.Submit(ctx, result)
	if err != nil {
		s.logger.Error("failed to save expense", "error", err)
		return s.reply(ctx, saveFailedText(err), model.IconError), nil
	}

	switch outcome.Action {
	case workflow.ActionCommitted:
		r := s.reply(ctx, savedText(outcome.Expense), model.IconSuccess)
		r.Expense = outcome.Expense
		return r, nil
	case workflow.ActionPending:
		text := fmt.Sprintf("I found an expense of %s. Please confirm the category below.", FormatVND(outcome.Pending.Amount))
		r := s.reply(ctx, text, model.IconInfo)
		r.Pending = outcome.Pending
		return r, nil
	default:
		s.logger.Debug("extraction rejected", "error", result.Error)
		return s.reply(ctx, NotFoundText, model.IconError), nil
	}
}

// ConfirmCategory stores the pending expense under categoryID.
func (s *Session) ConfirmCategory(ctx context.Context, categoryID string) (Reply, error) {
	expense, err := s.workflow.ConfirmWith(ctx, categoryID)
	switch {
	case errors.Is(err, workflow.ErrNoPending), errors.Is(err, workflow.ErrUnknownCategory):
		return Reply{}, err
	case err != nil:
		s.logger.Error("failed to save expense", "error", err)
		r := s.reply(ctx, saveFailedText(err), model.IconError)
		if pending, ok := s.workflow.Pending(); ok {
			r.Pending = &pending
		}
		return r, nil
	}

	r := s.reply(ctx, savedText(expense), model.IconSuccess)
	r.Expense = expense
	return r, nil
}

// CancelPending discards the pending expense.
func (s *Session) CancelPending(ctx context.Context) (Reply, error) {
	if err := s.workflow.Cancel(); err != nil {
		return Reply{}, err
	}
	return s.reply(ctx, CancelledText, model.IconInfo), nil
}

// Pending returns the expense waiting for a category, if any.
func (s *Session) Pending() (model.PendingExpense, bool) {
	return s.workflow.Pending()
}

// Today returns the transcript date for now.
func (s *Session) Today() string {
	return s.now().Format(dateLayout)
}

// History returns the transcript of date. A day without messages starts
// with the welcome message.
func (s *Session) History(ctx context.Context, date string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if s.transcript != nil {
		var err error
		messages, err = s.transcript.GetChatMessagesByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to load chat history: %w", err)
		}
	}
	if len(messages) == 0 {
		return []model.ChatMessage{s.welcome(date)}, nil
	}
	return messages, nil
}

func (s *Session) welcome(date string) model.ChatMessage {
	return model.ChatMessage{
		ID:        "welcome",
		Text:      WelcomeText,
		Date:      date,
		Timestamp: s.now().Format(timeLayout),
	}
}

func (s *Session) reply(ctx context.Context, text string, icon model.MessageIcon) Reply {
	msg := s.record(ctx, model.ChatMessage{Text: text, Icon: icon})
	return Reply{Message: msg}
}

// record stamps msg and appends it to the transcript. Transcript failures
// are logged, never returned: losing history must not lose an expense.
func (s *Session) record(ctx context.Context, msg model.ChatMessage) model.ChatMessage {
	now := s.now()
	msg.Date = now.Format(dateLayout)
	msg.Timestamp = now.Format(timeLayout)
	msg.CreatedAt = now

	if s.transcript == nil {
		return msg
	}
	if err := s.transcript.AddChatMessage(ctx, &msg); err != nil {
		s.logger.Warn("failed to save chat message", "error", err)
	}
	return msg
}

func savedText(expense *model.Expense) string {
	return fmt.Sprintf("Saved! %s - %s\n\"%s\"", FormatVND(expense.Amount), expense.CategoryName, expense.Description)
}

// saveFailedText reports the innermost cause; the wrapping chain only
// repeats "failed to save".
func saveFailedText(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}
	return "Failed to save expense: " + common.UserMessage(err)
}
