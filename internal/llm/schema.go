package llm

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const replySchemaURL = "reply.schema.json"

const replySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["amount", "categoryId"],
  "properties": {
    "amount":       {"type": "number", "exclusiveMinimum": 0},
    "categoryId":   {"type": "string", "minLength": 1},
    "categoryName": {"type": ["string", "null"]},
    "description":  {"type": ["string", "null"]},
    "date":         {"type": ["string", "null"]}
  }
}`

var replySchema = mustCompileReplySchema()

func mustCompileReplySchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(replySchemaURL, strings.NewReader(replySchemaJSON)); err != nil {
		panic(fmt.Sprintf("add reply schema: %v", err))
	}
	schema, err := compiler.Compile(replySchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile reply schema: %v", err))
	}
	return schema
}

// validateReply checks a decoded reply against the reply schema.
func validateReply(doc any) error {
	if err := replySchema.Validate(doc); err != nil {
		return fmt.Errorf("reply does not match schema: %w", err)
	}
	return nil
}
