// Package gateway is the single integration point with the remote
// completion service. Every operation issues exactly one HTTP request
// with a bounded timeout and no retry; failures come back as typed
// result payloads, never as errors crossing the package boundary.
package gateway

import (
	"log/slog"
	"net/http"

	"github.com/docuforge/docuforge/internal/common"
)

// Per-operation character budgets applied to document text before it
// is embedded in a prompt.
const (
	answerDocLimit    = 8000
	editDocLimit      = 6000
	editFullDocLimit  = 12000
	summarizeDocLimit = 7000
	analyzeDocLimit   = 8000
)

type Client struct {
	cfg    common.GatewayConfig
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg common.GatewayConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-pro"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.2
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 2048
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

func truncateRunes(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// lengthConfidence infers a confidence tier from answer length. The
// tiers are heuristic constants, not a calibrated score.
func lengthConfidence(answer string) float64 {
	n := len([]rune(answer))
	switch {
	case n >= 200:
		return 0.9
	case n >= 50:
		return 0.75
	default:
		return 0.5
	}
}
