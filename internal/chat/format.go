package chat

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount groups digits the Vietnamese way: 20000 becomes "20.000".
func FormatAmount(amount int64) string {
	return message.NewPrinter(language.Vietnamese).Sprintf("%d", amount)
}

// FormatVND formats an amount with its currency, e.g. "20.000 VND".
func FormatVND(amount int64) string {
	return FormatAmount(amount) + " VND"
}
