package orchestrator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuforge/docuforge/internal/convert"
	"github.com/docuforge/docuforge/internal/extract"
	"github.com/docuforge/docuforge/internal/gateway"
)

type stubAI struct {
	answerCalls    int
	lastQuestion   string
	lastSummaryTyp string
}

func (s *stubAI) Answer(_ context.Context, _, question string, _ map[string]string) gateway.AnswerResult {
	s.answerCalls++
	s.lastQuestion = question
	return gateway.AnswerResult{Answer: "stub answer", Question: question, Success: true}
}

func (s *stubAI) Edit(_ context.Context, _, instruction string, _ map[string]string) gateway.EditResult {
	return gateway.EditResult{EditedContent: "edited", Instruction: instruction, Success: true}
}

func (s *stubAI) Summarize(_ context.Context, _, summaryType string) gateway.SummaryResult {
	s.lastSummaryTyp = summaryType
	return gateway.SummaryResult{Summary: "summary", SummaryType: summaryType, Success: true}
}

func (s *stubAI) Analyze(_ context.Context, _ string) gateway.AnalysisResult {
	return gateway.AnalysisResult{Report: map[string]any{"summary": "s", "answer": "a"}, Structured: true, Success: true}
}

type stubExtractor struct{ res extract.Result }

func (s stubExtractor) Extract(_ context.Context, _, _ string) extract.Result { return s.res }

type stubConverter struct{ res convert.ConversionResult }

func (s stubConverter) Convert(_, _, _ string) convert.ConversionResult { return s.res }

func newTestOrchestrator(ai *stubAI) *Orchestrator {
	return New(
		stubExtractor{res: extract.Result{Text: "extracted", Success: true}},
		ai,
		stubConverter{res: convert.ConversionResult{FilePath: "/tmp/x.pdf", Format: "pdf", Success: true}},
		nil, nil, nil,
	)
}

func TestAskPassesThrough(t *testing.T) {
	ai := &stubAI{}
	o := newTestOrchestrator(ai)

	res := o.Ask(context.Background(), 1, 2, "document text", "what is this?")
	require.True(t, res.Success, res.Err)
	assert.Equal(t, "stub answer", res.Answer)
	assert.Equal(t, 1, ai.answerCalls)
}

func TestAskRejectsEmptyDocument(t *testing.T) {
	ai := &stubAI{}
	o := newTestOrchestrator(ai)

	res := o.Ask(context.Background(), 1, 2, "  ", "question")
	assert.False(t, res.Success)
	assert.Equal(t, "document has no extracted text", res.Err)
	assert.Zero(t, ai.answerCalls)
}

func TestAskRejectsOversizedQuestion(t *testing.T) {
	ai := &stubAI{}
	o := newTestOrchestrator(ai)

	res := o.Ask(context.Background(), 1, 2, "doc", strings.Repeat("q", maxPromptInput+1))
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "question exceeds maximum length")
	assert.Zero(t, ai.answerCalls)
}

func TestAskRejectsOversizedDocument(t *testing.T) {
	ai := &stubAI{}
	o := newTestOrchestrator(ai)

	res := o.Ask(context.Background(), 1, 2, strings.Repeat("d", maxDocumentAI+1), "question")
	assert.False(t, res.Success)
	assert.Equal(t, "document too large for AI processing", res.Err)
	assert.Zero(t, ai.answerCalls)
}

func TestEditRejectsEmptyInstruction(t *testing.T) {
	o := newTestOrchestrator(&stubAI{})

	res := o.Edit(context.Background(), 1, 2, "doc", "   ", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "instruction is empty", res.Err)
}

func TestSummarizePassesType(t *testing.T) {
	ai := &stubAI{}
	o := newTestOrchestrator(ai)

	res := o.Summarize(context.Background(), 1, 2, "doc", "bullet")
	require.True(t, res.Success, res.Err)
	assert.Equal(t, "bullet", ai.lastSummaryTyp)
}

func TestConvertDoesNotRequireExtractedTextCeiling(t *testing.T) {
	o := newTestOrchestrator(&stubAI{})

	// conversion is local: oversized documents are still convertible
	res := o.Convert(context.Background(), 2, strings.Repeat("d", maxDocumentAI+1), "big", "pdf")
	assert.True(t, res.Success)
	assert.Equal(t, "pdf", res.Format)
}

func TestExtractPassesThrough(t *testing.T) {
	o := newTestOrchestrator(&stubAI{})

	res := o.Extract(context.Background(), 2, "/tmp/f.pdf", "pdf")
	require.True(t, res.Success, res.Err)
	assert.Equal(t, "extracted", res.Text)
}

func TestAnalyzeValidatesDocument(t *testing.T) {
	o := newTestOrchestrator(&stubAI{})

	res := o.Analyze(context.Background(), 1, 2, "")
	assert.False(t, res.Success)

	res = o.Analyze(context.Background(), 1, 2, "real text")
	require.True(t, res.Success, res.Err)
	assert.True(t, res.Structured)
}
