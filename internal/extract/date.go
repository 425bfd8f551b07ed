package extract

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the ISO calendar date layout used for expense dates.
const DateLayout = "2006-01-02"

var (
	yesterdayWords = []string{"hôm qua", "hom qua", "qua"}
	tomorrowWords  = []string{"ngày mai", "ngay mai", "mai"}
)

// ParseDate resolves relative-date words in text against now and returns an
// ISO date. Yesterday words are checked before tomorrow words; anything else
// is today. Absolute dates are not recognized.
func ParseDate(text string, now time.Time) string {
	normalized := normalizeText(text)

	switch {
	case containsAny(normalized, yesterdayWords):
		return now.AddDate(0, 0, -1).Format(DateLayout)
	case containsAny(normalized, tomorrowWords):
		return now.AddDate(0, 0, 1).Format(DateLayout)
	default:
		return now.Format(DateLayout)
	}
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
