package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// AnalysisResult is the outcome of a structured document-analysis call.
// Report carries the schema-validated reply; Structured records whether
// the model honored the JSON contract or the plain-text fallback was
// used.
type AnalysisResult struct {
	Report     map[string]any `json:"report,omitempty"`
	Structured bool           `json:"structured"`
	Timestamp  string         `json:"timestamp"`
	Success    bool           `json:"success"`
	Err        string         `json:"error,omitempty"`
}

const analyzeSystemPrompt = `You are a document analysis assistant. Analyze the document below and respond
with a single JSON object and nothing else. The object must have exactly these fields:
  "summary": a concise summary of the document (string, required)
  "answer": your assessment of the document's purpose and key content (string, required)
  "edits_applied": suggested edits, if any (array of strings, optional)
  "converted_file_link": leave as an empty string (optional)
Do not wrap the JSON in markdown fences or add commentary.`

// Analyze requests one structured analysis of the document. A reply
// that is not valid JSON, or that fails schema validation, is wrapped
// into the same report shape with the raw text as the answer.
func (c *Client) Analyze(ctx context.Context, documentText string) AnalysisResult {
	fail := func(msg string) AnalysisResult {
		return AnalysisResult{Success: false, Err: msg, Timestamp: time.Now().UTC().Format(time.RFC3339)}
	}

	if strings.TrimSpace(documentText) == "" {
		return fail("document text is empty")
	}

	var prompt strings.Builder
	prompt.WriteString(analyzeSystemPrompt)
	prompt.WriteString("\n\nDocument Content:\n")
	prompt.WriteString(truncateRunes(documentText, analyzeDocLimit))

	reply, err := c.generate(ctx, prompt.String(), c.cfg.Temperature, 30*time.Second)
	if err != nil {
		c.logger.Error("gateway.analyze.failed", "error", err)
		return fail(err.Error())
	}

	raw := []byte(stripCodeFence(reply))
	if verr := validateAnalyzeJSON(raw); verr != nil {
		c.logger.Warn("gateway.analyze.fallback", "reason", verr.Error())
		return AnalysisResult{
			Report: map[string]any{
				"summary":             "",
				"answer":              reply,
				"edits_applied":       []any{},
				"converted_file_link": "",
			},
			Structured: false,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Success:    true,
		}
	}

	var report map[string]any
	if err := json.Unmarshal(raw, &report); err != nil {
		return fail("decode report: " + err.Error())
	}

	c.logger.Info("gateway.analyze.ok", "fields", len(report))
	return AnalysisResult{
		Report:     report,
		Structured: true,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Success:    true,
	}
}

// stripCodeFence removes a surrounding markdown code fence if the model
// added one despite the instructions.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
