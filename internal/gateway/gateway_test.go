package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuforge/docuforge/internal/common"
)

// newTestClient points a Client at a scripted completion endpoint and
// captures each prompt it receives.
func newTestClient(t *testing.T, handler func(w http.ResponseWriter, prompt string)) (*Client, *[]string) {
	t.Helper()
	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		require.NotEmpty(t, req.Contents[0].Parts)
		prompt := req.Contents[0].Parts[0].Text
		prompts = append(prompts, prompt)
		handler(w, prompt)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(common.GatewayConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-pro",
	}, nil)
	return c, &prompts
}

func respondWith(w http.ResponseWriter, text string) {
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
}

func TestAnswerSuccess(t *testing.T) {
	c, prompts := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, strings.Repeat("The reported revenue was 4.2 million dollars. ", 5))
	})

	res := c.Answer(context.Background(), "Revenue was 4.2 million.", "What was the revenue?", nil)
	require.True(t, res.Success, res.Err)

	assert.Contains(t, res.Answer, "4.2 million")
	assert.Equal(t, "What was the revenue?", res.Question)
	assert.Equal(t, 0.9, res.Confidence)
	assert.Equal(t, "document_content", res.Sources)
	assert.NotEmpty(t, res.Timestamp)

	require.Len(t, *prompts, 1)
	assert.Contains(t, (*prompts)[0], "Revenue was 4.2 million.")
	assert.Contains(t, (*prompts)[0], "Question: What was the revenue?")
}

func TestAnswerConfidenceTiers(t *testing.T) {
	for _, tc := range []struct {
		answer string
		want   float64
	}{
		{strings.Repeat("a", 200), 0.9},
		{strings.Repeat("a", 50), 0.75},
		{"short", 0.5},
	} {
		assert.Equal(t, tc.want, lengthConfidence(tc.answer))
	}
}

func TestAnswerEmptyInputsFailLocally(t *testing.T) {
	c, prompts := newTestClient(t, func(w http.ResponseWriter, _ string) {
		t.Error("no request expected")
	})

	res := c.Answer(context.Background(), "", "question", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "document text is empty", res.Err)

	res = c.Answer(context.Background(), "text", "  ", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "question is empty", res.Err)

	assert.Empty(t, *prompts)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	res := c.Answer(context.Background(), "doc", "question", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "no valid response generated")
}

func TestGenerateRemoteError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("quota exceeded"))
	})

	res := c.Answer(context.Background(), "doc", "question", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "API error: 503")
	assert.Contains(t, res.Err, "quota exceeded")
}

func TestGenerateMalformedResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		w.Write([]byte("{not json"))
	})

	res := c.Answer(context.Background(), "doc", "question", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "decode response")
}

func TestGenerateNoRetry(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(common.GatewayConfig{APIKey: "k", BaseURL: srv.URL}, nil)
	res := c.Answer(context.Background(), "doc", "question", nil)

	assert.False(t, res.Success)
	assert.Equal(t, 1, hits)
}

func TestGenerateCanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, "never seen")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Answer(ctx, "doc", "question", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "request failed")
}

func TestEditTruncationBudgets(t *testing.T) {
	long := strings.Repeat("x", editFullDocLimit+500)

	c, prompts := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, "edited")
	})

	res := c.Edit(context.Background(), long, "tighten wording", nil)
	require.True(t, res.Success, res.Err)

	res = c.Edit(context.Background(), long, "tighten wording", map[string]string{"scope": "document"})
	require.True(t, res.Success, res.Err)

	// truncation applies to the prompt, not the reported original
	require.Len(t, *prompts, 2)
	assert.Contains(t, (*prompts)[0], strings.Repeat("x", editDocLimit))
	assert.NotContains(t, (*prompts)[0], strings.Repeat("x", editDocLimit+1))
	assert.Contains(t, (*prompts)[1], strings.Repeat("x", editFullDocLimit))
	assert.NotContains(t, (*prompts)[1], strings.Repeat("x", editFullDocLimit+1))
}

func TestEditReturnsFullOriginal(t *testing.T) {
	long := strings.Repeat("y", editDocLimit+300)

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, "edited")
	})

	res := c.Edit(context.Background(), long, "tighten wording", nil)
	require.True(t, res.Success, res.Err)
	assert.Equal(t, long, res.OriginalContent)
	assert.Equal(t, "edited", res.EditedContent)
}

func TestEditContentChanged(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, "original text")
	})

	res := c.Edit(context.Background(), "original text", "do nothing", nil)
	require.True(t, res.Success, res.Err)
	assert.False(t, res.ContentChanged)
}

func TestSummarizeUnknownTypeUsesDetailed(t *testing.T) {
	c, prompts := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, "a summary")
	})

	res := c.Summarize(context.Background(), strings.Repeat("content words here. ", 10), "haiku")
	require.True(t, res.Success, res.Err)
	assert.Equal(t, "haiku", res.SummaryType)

	require.Len(t, *prompts, 1)
	assert.Contains(t, (*prompts)[0], summaryTemplates["detailed"].instruction)
}

func TestSummarizeCompressionQuality(t *testing.T) {
	content := strings.Repeat("word ", 200) // 1000 chars

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, strings.Repeat("s", 100)) // ratio 0.1, inside brief band? brief max 0.20
	})
	res := c.Summarize(context.Background(), content, "brief")
	require.True(t, res.Success, res.Err)
	assert.Equal(t, "high", res.Quality)
	assert.InDelta(t, 0.1, res.CompressionRatio, 0.001)

	c2, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, strings.Repeat("s", 900)) // ratio 0.9, outside every band
	})
	res = c2.Summarize(context.Background(), content, "brief")
	require.True(t, res.Success, res.Err)
	assert.Equal(t, "medium", res.Quality)
}

func TestAnalyzeStructuredReply(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, `{"summary":"a contract","answer":"binding agreement","edits_applied":[],"converted_file_link":""}`)
	})

	res := c.Analyze(context.Background(), "contract text")
	require.True(t, res.Success, res.Err)
	assert.True(t, res.Structured)
	assert.Equal(t, "a contract", res.Report["summary"])
	assert.Equal(t, "binding agreement", res.Report["answer"])
}

func TestAnalyzeFallbackWrapsPlainText(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, "I could not produce JSON, but the document is a contract.")
	})

	res := c.Analyze(context.Background(), "contract text")
	require.True(t, res.Success, res.Err)
	assert.False(t, res.Structured)
	assert.Contains(t, res.Report["answer"], "the document is a contract")
}

func TestAnalyzeStripsCodeFence(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ string) {
		respondWith(w, "```json\n{\"summary\":\"s\",\"answer\":\"a\"}\n```")
	})

	res := c.Analyze(context.Background(), "doc")
	require.True(t, res.Success, res.Err)
	assert.True(t, res.Structured)
	assert.Equal(t, "s", res.Report["summary"])
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "ab", truncateRunes("abcd", 2))
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
}
