package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNoJSON = errors.New("no JSON found in response")

var fenceStripper = strings.NewReplacer("```json", "", "```JSON", "", "```", "")

// aiReply is the object the model is asked to return.
type aiReply struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
}

// extractJSONObject returns the span from the first '{' to the last '}'.
// Models often wrap the object in prose or markdown fences.
func extractJSONObject(content string) (string, error) {
	content = fenceStripper.Replace(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return content[start : end+1], nil
}

// parseReply decodes and validates the model's reply.
func parseReply(content string) (aiReply, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return aiReply{}, err
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return aiReply{}, fmt.Errorf("malformed JSON: %w", err)
	}
	if err := validateReply(doc); err != nil {
		return aiReply{}, err
	}

	var reply aiReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return aiReply{}, fmt.Errorf("malformed JSON: %w", err)
	}
	reply.CategoryID = strings.TrimSpace(reply.CategoryID)
	reply.Description = strings.TrimSpace(reply.Description)
	reply.Date = strings.TrimSpace(reply.Date)
	return reply, nil
}
