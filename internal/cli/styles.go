// Package cli provides styled terminal output using lipgloss and the
// interactive prompts used by the chat loop.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/chitieu/internal/model"
)

var (
	// PrimaryColor is the main theme color (lotus pink).
	PrimaryColor = lipgloss.Color("#E85D9E")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#22C55E") // Green
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F59E0B") // Amber
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#EF4444") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#38BDF8") // Sky
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// UserStyle renders the user's own chat lines.
	UserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A78BFA"))
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "💸"
	BotIcon     = "🤖"
	UserIcon    = "🧑"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wallet icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatCategory renders a category with its icon and color.
func FormatCategory(c model.Category) string {
	label := c.Name
	if c.Icon != "" {
		label = c.Icon + " " + label
	}
	if c.Color == "" {
		return label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(label)
}

// FormatChatMessage renders one transcript line.
func FormatChatMessage(msg model.ChatMessage) string {
	stamp := SubtleStyle.Render(msg.Timestamp)
	if msg.IsUser {
		return stamp + " " + UserStyle.Render(UserIcon+" "+msg.Text)
	}

	text := msg.Text
	switch msg.Icon {
	case model.IconSuccess:
		text = FormatSuccess(text)
	case model.IconError:
		text = FormatError(text)
	case model.IconInfo:
		text = FormatInfo(text)
	}
	// Continuation lines line up under the first.
	indent := strings.Repeat(" ", lipgloss.Width(msg.Timestamp)+3)
	text = strings.ReplaceAll(text, "\n", "\n"+indent)
	return stamp + " " + BotIcon + " " + text
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// RenderTable renders rows under a header with aligned columns.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderRow(headers, TableHeaderStyle))
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
