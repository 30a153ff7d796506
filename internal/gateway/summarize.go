package gateway

import (
	"context"
	"strings"
	"time"
)

// SummaryResult is the outcome of a summarization call. Quality is a
// coarse tag derived from the compression ratio, not a model score.
type SummaryResult struct {
	Summary          string  `json:"summary,omitempty"`
	SummaryType      string  `json:"summary_type"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
	Quality          string  `json:"quality,omitempty"`
	Timestamp        string  `json:"timestamp"`
	Success          bool    `json:"success"`
	Err              string  `json:"error,omitempty"`
}

// summaryTemplate pairs an instruction with the compression-ratio band
// a well-formed summary of that type is expected to land in. Ratios
// outside the band downgrade Quality to "medium". The bands are
// heuristic constants.
type summaryTemplate struct {
	instruction string
	minRatio    float64
	maxRatio    float64
}

var summaryTemplates = map[string]summaryTemplate{
	"brief": {
		instruction: "Provide a brief summary (2-3 sentences) of the main points.",
		minRatio:    0.02, maxRatio: 0.20,
	},
	"detailed": {
		instruction: "Provide a detailed summary covering all major points and key details.",
		minRatio:    0.10, maxRatio: 0.60,
	},
	"bullet": {
		instruction: "Provide a bullet-point summary of the key points.",
		minRatio:    0.05, maxRatio: 0.35,
	},
	"executive": {
		instruction: "Provide an executive summary highlighting decisions, outcomes, and action items.",
		minRatio:    0.05, maxRatio: 0.30,
	},
}

// Summarize produces one summary of the requested type. Unrecognized
// types silently use the detailed template.
func (c *Client) Summarize(ctx context.Context, content, summaryType string) SummaryResult {
	fail := func(msg string) SummaryResult {
		return SummaryResult{SummaryType: summaryType, Success: false, Err: msg, Timestamp: time.Now().UTC().Format(time.RFC3339)}
	}

	if strings.TrimSpace(content) == "" {
		return fail("content is empty")
	}

	tmpl, ok := summaryTemplates[summaryType]
	if !ok {
		c.logger.Debug("gateway.summarize.unknown_type", "summary_type", summaryType)
		tmpl = summaryTemplates["detailed"]
	}

	var prompt strings.Builder
	prompt.WriteString("You are an expert at summarizing documents. ")
	prompt.WriteString(tmpl.instruction)
	prompt.WriteString("\nFocus on the most important information and maintain accuracy.")
	prompt.WriteString("\n\nContent to summarize:\n")
	prompt.WriteString(truncateRunes(content, summarizeDocLimit))
	prompt.WriteString("\n\nPlease provide the requested summary.")

	summary, err := c.generate(ctx, prompt.String(), c.cfg.Temperature, 60*time.Second)
	if err != nil {
		c.logger.Error("gateway.summarize.failed", "summary_type", summaryType, "error", err)
		return fail(err.Error())
	}

	ratio := 0.0
	if len(content) > 0 {
		ratio = float64(len(summary)) / float64(len(content))
	}
	quality := "high"
	if ratio < tmpl.minRatio || ratio > tmpl.maxRatio {
		quality = "medium"
	}

	c.logger.Info("gateway.summarize.ok",
		"summary_type", summaryType,
		"compression_ratio", ratio,
		"quality", quality,
	)
	return SummaryResult{
		Summary:          summary,
		SummaryType:      summaryType,
		OriginalLength:   len(content),
		SummaryLength:    len(summary),
		CompressionRatio: ratio,
		Quality:          quality,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Success:          true,
	}
}
