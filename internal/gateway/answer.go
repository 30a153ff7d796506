package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AnswerResult is the outcome of a document Q&A call.
type AnswerResult struct {
	Answer     string  `json:"answer,omitempty"`
	Question   string  `json:"question"`
	Confidence float64 `json:"confidence"`
	Sources    string  `json:"sources,omitempty"`
	Timestamp  string  `json:"timestamp"`
	Success    bool    `json:"success"`
	Err        string  `json:"error,omitempty"`
}

const answerSystemPrompt = `You are an AI assistant specialized in analyzing and answering questions about document content.
Provide accurate, helpful, and contextual answers based on the document provided.
If the answer cannot be found in the document, clearly state that you cannot find a clear answer.
Rate your own confidence in the answer and cite the supporting passage.`

// Answer asks one question about the document. Document text is
// truncated to the per-call budget before prompting; sampling is kept
// cold so repeated questions get stable answers.
func (c *Client) Answer(ctx context.Context, documentText, question string, extra map[string]string) AnswerResult {
	fail := func(msg string) AnswerResult {
		return AnswerResult{Question: question, Success: false, Err: msg, Timestamp: time.Now().UTC().Format(time.RFC3339)}
	}

	if strings.TrimSpace(documentText) == "" {
		return fail("document text is empty")
	}
	if strings.TrimSpace(question) == "" {
		return fail("question is empty")
	}

	var prompt strings.Builder
	prompt.WriteString(answerSystemPrompt)
	prompt.WriteString("\n\nDocument Content:\n")
	prompt.WriteString(truncateRunes(documentText, answerDocLimit))
	if len(extra) > 0 {
		prompt.WriteString("\n\nAdditional Context:\n")
		for k, v := range extra {
			fmt.Fprintf(&prompt, "%s: %s\n", k, v)
		}
	}
	prompt.WriteString("\n\nQuestion: ")
	prompt.WriteString(question)
	prompt.WriteString("\n\nPlease provide a comprehensive answer based on the document content above.")

	answer, err := c.generate(ctx, prompt.String(), c.cfg.Temperature, 30*time.Second)
	if err != nil {
		c.logger.Error("gateway.answer.failed", "error", err)
		return fail(err.Error())
	}

	c.logger.Info("gateway.answer.ok", "answer_chars", len(answer))
	return AnswerResult{
		Answer:     answer,
		Question:   question,
		Confidence: lengthConfidence(answer),
		Sources:    "document_content",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Success:    true,
	}
}
