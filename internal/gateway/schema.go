package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// analyzeSchemaJSON constrains the structured analysis reply. The
// model is instructed to return exactly this shape; anything else goes
// through the plain-text fallback instead.
const analyzeSchemaJSON = `{
	"type": "object",
	"properties": {
		"summary":             {"type": "string"},
		"edits_applied":       {"type": "array", "items": {"type": "string"}},
		"converted_file_link": {"type": "string"},
		"answer":              {"type": "string"}
	},
	"required": ["summary", "answer"],
	"additionalProperties": false
}`

var analyzeSchema = jsonschema.MustCompileString("analyze.json", analyzeSchemaJSON)

// validateAnalyzeJSON checks raw bytes against the analysis schema.
func validateAnalyzeJSON(raw []byte) error {
	var v any
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := analyzeSchema.Validate(v); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
