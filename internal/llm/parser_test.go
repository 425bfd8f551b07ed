package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "bare object", content: `{"amount":1}`, want: `{"amount":1}`},
		{name: "prose around", content: "Here you go: {\"amount\":1} hope it helps", want: `{"amount":1}`},
		{name: "markdown fence", content: "```json\n{\"amount\":1}\n```", want: `{"amount":1}`},
		{name: "nested braces kept", content: `x {"a":{"b":1}} y`, want: `{"a":{"b":1}}`},
		{name: "no object", content: "sorry, I cannot help", wantErr: true},
		{name: "closing before opening", content: "} {", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.content)
			if tt.wantErr {
				require.ErrorIs(t, err, errNoJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    aiReply
		wantErr bool
	}{
		{
			name:    "full reply",
			content: `{"amount": 20000, "categoryId": "books", "categoryName": "Books", "description": "mua sách", "date": "2026-01-11"}`,
			want:    aiReply{Amount: 20000, CategoryID: "books", CategoryName: "Books", Description: "mua sách", Date: "2026-01-11"},
		},
		{
			name:    "only required fields",
			content: `{"amount": 15000.5, "categoryId": " fuel "}`,
			want:    aiReply{Amount: 15000.5, CategoryID: "fuel"},
		},
		{
			name:    "null optional fields",
			content: `{"amount": 1000, "categoryId": "water", "date": null}`,
			want:    aiReply{Amount: 1000, CategoryID: "water"},
		},
		{name: "missing amount", content: `{"categoryId": "books"}`, wantErr: true},
		{name: "missing category", content: `{"amount": 20000}`, wantErr: true},
		{name: "empty category", content: `{"amount": 20000, "categoryId": ""}`, wantErr: true},
		{name: "zero amount", content: `{"amount": 0, "categoryId": "books"}`, wantErr: true},
		{name: "string amount", content: `{"amount": "20k", "categoryId": "books"}`, wantErr: true},
		{name: "malformed", content: `{"amount": 20000, "categoryId": }`, wantErr: true},
		{name: "no json", content: `I don't know`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReply(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
