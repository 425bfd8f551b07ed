package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/chitieu/internal/model"
)

// AddChatMessage appends a message to the transcript of msg.Date. ID and
// CreatedAt are filled in when empty.
func (s *SQLiteStorage) AddChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateChatMessage(msg); err != nil {
		return err
	}

	if msg.ID == "" {
		msg.ID = "msg_" + s.newID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.timestamp()
	}
	if msg.Timestamp == "" {
		msg.Timestamp = msg.CreatedAt.Local().Format("15:04")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, date, text, is_user, timestamp, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Date, msg.Text, msg.IsUser, msg.Timestamp, string(msg.Icon), msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// GetChatMessagesByDate returns the transcript of one day in order.
func (s *SQLiteStorage) GetChatMessagesByDate(ctx context.Context, date string) ([]model.ChatMessage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, text, is_user, timestamp, icon, created_at
		FROM chat_messages
		WHERE date = ?
		ORDER BY created_at, rowid`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		var icon string
		if err := rows.Scan(&m.ID, &m.Date, &m.Text, &m.IsUser, &m.Timestamp, &icon, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		m.Icon = model.MessageIcon(icon)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}
	return messages, nil
}

// GetChatDates lists the days that have a transcript, newest first.
func (s *SQLiteStorage) GetChatDates(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT date FROM chat_messages ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan chat date: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat dates: %w", err)
	}
	return dates, nil
}

// DeleteChatMessagesByDate removes the transcript of one day.
func (s *SQLiteStorage) DeleteChatMessagesByDate(ctx context.Context, date string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE date = ?`, date); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}
	return nil
}
