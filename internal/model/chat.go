package model

import "time"

// MessageIcon marks how a bot message should be rendered.
type MessageIcon string

// Message icons.
const (
	IconNone    MessageIcon = ""
	IconSuccess MessageIcon = "success"
	IconError   MessageIcon = "error"
	IconInfo    MessageIcon = "info"
)

// ChatMessage is one line of the per-day chat transcript.
type ChatMessage struct {
	CreatedAt time.Time   `json:"createdAt"`
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Timestamp string      `json:"timestamp"` // HH:MM shown next to the message
	Date      string      `json:"date"`      // YYYY-MM-DD the transcript belongs to
	Icon      MessageIcon `json:"icon,omitempty"`
	IsUser    bool        `json:"isUser"`
}
