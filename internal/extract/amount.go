package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	thousand = 1_000
	million  = 1_000_000
)

// amountRule is one notation recognized by ParseAmount.
type amountRule struct {
	re *regexp.Regexp
	// literal rules take the matched digits at face value, ignoring multiplier words.
	literal bool
}

// amountRules are tried in order; the first match wins.
var amountRules = []amountRule{
	{re: regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*k`)},
	{re: regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:nghìn|ngàn|nghin|ngan)`)},
	{re: regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:triệu|trieu)`)},
	{re: regexp.MustCompile(`(\d+(?:[.,]\d{3})*)`), literal: true},
}

// ParseAmount extracts a positive amount in VND from free text.
//
// The multiplier for suffixed notations is decided by scanning the whole
// input, not just the matched token: "triệu" anywhere means millions, else
// "k" or nghìn/ngàn (accented or not) anywhere means thousands.
func ParseAmount(text string) (int64, bool) {
	text = normalizeText(text)

	for _, rule := range amountRules {
		match := rule.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		var value float64
		if rule.literal {
			digits := strings.NewReplacer(".", "", ",", "").Replace(match[1])
			n, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				return 0, false
			}
			value = float64(n)
		} else {
			n, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
			if err != nil {
				return 0, false
			}
			value = n * float64(multiplier(text))
		}

		return RoundAmount(value)
	}

	return 0, false
}

// RoundAmount rounds value to whole VND. Values that are not positive or do
// not fit an int64 are rejected.
func RoundAmount(value float64) (int64, bool) {
	rounded := math.Round(value)
	if math.IsNaN(rounded) || rounded <= 0 || rounded >= math.MaxInt64 {
		return 0, false
	}
	return int64(rounded), true
}

func multiplier(text string) int64 {
	switch {
	case strings.Contains(text, "triệu"), strings.Contains(text, "trieu"):
		return million
	case strings.Contains(text, "k"),
		strings.Contains(text, "nghìn"), strings.Contains(text, "ngàn"),
		strings.Contains(text, "nghin"), strings.Contains(text, "ngan"):
		return thousand
	default:
		return 1
	}
}
