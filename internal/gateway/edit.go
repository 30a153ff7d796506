package gateway

import (
	"context"
	"strings"
	"time"
)

// EditResult is the outcome of a smart-edit call. OriginalContent is
// the caller's full input, not the truncated text sent to the model.
// ContentChanged is a cheap sanity check, not a correctness guarantee:
// the model may legitimately return unchanged content for a no-op
// instruction.
type EditResult struct {
	OriginalContent string `json:"original_content,omitempty"`
	EditedContent   string `json:"edited_content,omitempty"`
	Instruction     string `json:"edit_instruction"`
	ContentChanged  bool   `json:"content_changed"`
	Timestamp       string `json:"timestamp"`
	Success         bool   `json:"success"`
	Err             string `json:"error,omitempty"`
}

const editSystemPrompt = `You are an expert content editor. You can rephrase, summarize, change tone,
fix grammar, restructure, and perform various editing tasks on documents.
Apply only the requested change and always maintain the core meaning and structure of the original.`

// Edit applies one editing instruction. Passing metadata["scope"] ==
// "document" raises the truncation budget for whole-document rewrites.
func (c *Client) Edit(ctx context.Context, documentText, instruction string, metadata map[string]string) EditResult {
	fail := func(msg string) EditResult {
		return EditResult{Instruction: instruction, Success: false, Err: msg, Timestamp: time.Now().UTC().Format(time.RFC3339)}
	}

	if strings.TrimSpace(documentText) == "" {
		return fail("document text is empty")
	}
	if strings.TrimSpace(instruction) == "" {
		return fail("edit instruction is empty")
	}

	limit := editDocLimit
	if metadata["scope"] == "document" {
		limit = editFullDocLimit
	}
	original := truncateRunes(documentText, limit)

	var prompt strings.Builder
	prompt.WriteString(editSystemPrompt)
	prompt.WriteString("\n\nOriginal Content:\n")
	prompt.WriteString(original)
	prompt.WriteString("\n\nEdit Instruction: ")
	prompt.WriteString(instruction)
	prompt.WriteString("\n\nPlease apply the requested editing changes and return the modified content.")

	edited, err := c.generate(ctx, prompt.String(), c.cfg.Temperature, 45*time.Second)
	if err != nil {
		c.logger.Error("gateway.edit.failed", "error", err)
		return fail(err.Error())
	}

	changed := strings.TrimSpace(edited) != strings.TrimSpace(original)
	if !changed {
		c.logger.Warn("gateway.edit.unchanged", "instruction", instruction)
	}

	c.logger.Info("gateway.edit.ok", "edited_chars", len(edited), "content_changed", changed)
	return EditResult{
		OriginalContent: documentText,
		EditedContent:   edited,
		Instruction:     instruction,
		ContentChanged:  changed,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Success:         true,
	}
}
