package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/chitieu/internal/model"
)

const dateLayout = "2006-01-02"

// buildSystemPrompt lists the catalog and the output contract. Worked
// examples are dated relative to now so the model sees the expected
// resolution of "hôm qua" and "ngày mai".
func buildSystemPrompt(categories []model.Category, now time.Time) string {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, fmt.Sprintf("%s (%s)", c.ID, c.Name))
	}

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)

	var b strings.Builder
	b.WriteString("You are an expense extraction assistant for Vietnamese users. ")
	b.WriteString("Extract expense information from Vietnamese or English text including date references.\n\n")
	fmt.Fprintf(&b, "Categories available: %s\n\n", strings.Join(ids, ", "))
	b.WriteString("Rules:\n")
	b.WriteString("1. Extract the amount in VND (k or nghìn = thousand, triệu = million, e.g. 20k = 20000)\n")
	b.WriteString("2. Identify the category based on the description and use its exact id\n")
	b.WriteString(`3. Parse date references: "hôm qua"/"qua" = yesterday, "ngày mai"/"mai" = tomorrow, otherwise = today` + "\n")
	fmt.Fprintf(&b, "4. Return the date in YYYY-MM-DD format. Today is %s\n", today)
	b.WriteString("5. Keep the original description without the date reference\n")
	b.WriteString("6. Respond ONLY with JSON in this exact format:\n")
	b.WriteString(`{"amount": <number>, "categoryId": "<category-id>", "categoryName": "<category-name>", "description": "<original description>", "date": "<YYYY-MM-DD>"}` + "\n\n")
	b.WriteString("Examples:\n")
	fmt.Fprintf(&b, "Input: \"mua sách 20k\"\nOutput: {\"amount\": 20000, \"categoryId\": \"books\", \"categoryName\": \"Books\", \"description\": \"mua sách\", \"date\": %q}\n\n", today)
	fmt.Fprintf(&b, "Input: \"hôm qua đổ xăng 50k\"\nOutput: {\"amount\": 50000, \"categoryId\": \"fuel\", \"categoryName\": \"Fuel\", \"description\": \"đổ xăng\", \"date\": %q}\n\n", yesterday)
	fmt.Fprintf(&b, "Input: \"ngày mai đi chợ 30k\"\nOutput: {\"amount\": 30000, \"categoryId\": \"groceries\", \"categoryName\": \"Groceries\", \"description\": \"đi chợ\", \"date\": %q}", tomorrow)

	return b.String()
}
