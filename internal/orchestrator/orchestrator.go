// Package orchestrator is the facade in front of extraction, the
// remote completion gateway, and format conversion. Every call records
// a processing job so callers can audit what ran and how it ended.
package orchestrator

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/docuforge/docuforge/internal/convert"
	"github.com/docuforge/docuforge/internal/entity"
	"github.com/docuforge/docuforge/internal/extract"
	"github.com/docuforge/docuforge/internal/gateway"
	"github.com/docuforge/docuforge/internal/repository"
)

// Input ceilings enforced before any remote call is made.
const (
	maxPromptInput = 2000
	maxDocumentAI  = 50000
)

// AIClient is the slice of the gateway the orchestrator needs.
type AIClient interface {
	Answer(ctx context.Context, documentText, question string, extra map[string]string) gateway.AnswerResult
	Edit(ctx context.Context, documentText, instruction string, metadata map[string]string) gateway.EditResult
	Summarize(ctx context.Context, content, summaryType string) gateway.SummaryResult
	Analyze(ctx context.Context, documentText string) gateway.AnalysisResult
}

// FileExtractor is the slice of the extraction layer the orchestrator needs.
type FileExtractor interface {
	Extract(ctx context.Context, path, fileType string) extract.Result
}

// FormatConverter is the slice of the conversion layer the orchestrator needs.
type FormatConverter interface {
	Convert(content, title, target string) convert.ConversionResult
}

type Orchestrator struct {
	extractor FileExtractor
	ai        AIClient
	converter FormatConverter
	jobs      repository.JobRepository
	usage     repository.UsageRepository
	logger    *slog.Logger
}

func New(extractor FileExtractor, ai AIClient, converter FormatConverter,
	jobs repository.JobRepository, usage repository.UsageRepository, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		extractor: extractor,
		ai:        ai,
		converter: converter,
		jobs:      jobs,
		usage:     usage,
		logger:    logger,
	}
}

// Extract runs text extraction for a stored document file.
func (o *Orchestrator) Extract(ctx context.Context, documentID int64, path, fileType string) extract.Result {
	job := o.startJob(ctx, documentID, entity.JobTypeExtract, fileType)
	res := o.extractor.Extract(ctx, path, fileType)
	if !res.Success {
		o.logger.Error("orchestrator.extract.failed", "document_id", documentID, "error", res.Err)
		o.finishJob(ctx, job, nil, res.Err)
		return res
	}
	o.logger.Info("orchestrator.extract.ok", "document_id", documentID, "chars", len(res.Text))
	o.finishJob(ctx, job, res, "")
	return res
}

// Ask answers one question about a document's extracted text.
func (o *Orchestrator) Ask(ctx context.Context, userID, documentID int64, docText, question string) gateway.AnswerResult {
	job := o.startJob(ctx, documentID, entity.JobTypeQA, question)
	if msg := checkAIInput(docText, question, "question"); msg != "" {
		o.finishJob(ctx, job, nil, msg)
		return gateway.AnswerResult{Question: question, Success: false, Err: msg}
	}
	res := o.ai.Answer(ctx, docText, question, nil)
	o.recordOutcome(ctx, userID, job, "qa", docText, res.Success, res.Err, res)
	return res
}

// Edit applies one editing instruction to a document's extracted text.
func (o *Orchestrator) Edit(ctx context.Context, userID, documentID int64, docText, instruction string, metadata map[string]string) gateway.EditResult {
	job := o.startJob(ctx, documentID, entity.JobTypeEdit, instruction)
	if msg := checkAIInput(docText, instruction, "instruction"); msg != "" {
		o.finishJob(ctx, job, nil, msg)
		return gateway.EditResult{Instruction: instruction, Success: false, Err: msg}
	}
	res := o.ai.Edit(ctx, docText, instruction, metadata)
	o.recordOutcome(ctx, userID, job, "edit", docText, res.Success, res.Err, res)
	return res
}

// Summarize produces one summary of a document's extracted text.
func (o *Orchestrator) Summarize(ctx context.Context, userID, documentID int64, docText, summaryType string) gateway.SummaryResult {
	job := o.startJob(ctx, documentID, entity.JobTypeSummarize, summaryType)
	if msg := checkAIInput(docText, "-", ""); msg != "" {
		o.finishJob(ctx, job, nil, msg)
		return gateway.SummaryResult{SummaryType: summaryType, Success: false, Err: msg}
	}
	res := o.ai.Summarize(ctx, docText, summaryType)
	o.recordOutcome(ctx, userID, job, "summarize", docText, res.Success, res.Err, res)
	return res
}

// Analyze runs the structured whole-document analysis.
func (o *Orchestrator) Analyze(ctx context.Context, userID, documentID int64, docText string) gateway.AnalysisResult {
	job := o.startJob(ctx, documentID, entity.JobTypeAnalyze, "")
	if msg := checkAIInput(docText, "-", ""); msg != "" {
		o.finishJob(ctx, job, nil, msg)
		return gateway.AnalysisResult{Success: false, Err: msg}
	}
	res := o.ai.Analyze(ctx, docText)
	o.recordOutcome(ctx, userID, job, "analyze", docText, res.Success, res.Err, res)
	return res
}

// Convert renders a document's extracted text into a download artifact.
// Conversion is local and never bills usage.
func (o *Orchestrator) Convert(ctx context.Context, documentID int64, docText, title, target string) convert.ConversionResult {
	job := o.startJob(ctx, documentID, entity.JobTypeConvert, target)
	res := o.converter.Convert(docText, title, target)
	if !res.Success {
		o.logger.Error("orchestrator.convert.failed", "document_id", documentID, "target", target, "error", res.Err)
		o.finishJob(ctx, job, nil, res.Err)
		return res
	}
	o.logger.Info("orchestrator.convert.ok", "document_id", documentID, "target", target)
	o.finishJob(ctx, job, res, "")
	return res
}

// checkAIInput enforces local ceilings before spending a remote call.
// An empty return means the input is acceptable.
func checkAIInput(docText, prompt, promptName string) string {
	if strings.TrimSpace(docText) == "" {
		return "document has no extracted text"
	}
	if len(docText) > maxDocumentAI {
		return "document too large for AI processing"
	}
	if promptName != "" {
		if strings.TrimSpace(prompt) == "" {
			return promptName + " is empty"
		}
		if len(prompt) > maxPromptInput {
			return promptName + " exceeds maximum length"
		}
	}
	return ""
}

func (o *Orchestrator) startJob(ctx context.Context, documentID int64, jobType, input string) *entity.ProcessingJob {
	if o.jobs == nil {
		return nil
	}
	job, err := o.jobs.Create(ctx, documentID, jobType, input)
	if err != nil {
		o.logger.Warn("orchestrator.job.create_failed", "job_type", jobType, "error", err)
		return nil
	}
	return job
}

func (o *Orchestrator) finishJob(ctx context.Context, job *entity.ProcessingJob, result any, errMsg string) {
	if o.jobs == nil || job == nil {
		return
	}
	if errMsg != "" {
		_ = o.jobs.Fail(ctx, job.ID, errMsg)
		return
	}
	bs, err := json.Marshal(result)
	if err != nil {
		bs = []byte("{}")
	}
	_ = o.jobs.Complete(ctx, job.ID, string(bs))
}

func (o *Orchestrator) recordOutcome(ctx context.Context, userID int64, job *entity.ProcessingJob,
	endpoint, docText string, success bool, errMsg string, result any) {
	if success {
		o.logger.Info("orchestrator."+endpoint+".ok", "user_id", userID)
		o.finishJob(ctx, job, result, "")
	} else {
		o.logger.Error("orchestrator."+endpoint+".failed", "user_id", userID, "error", errMsg)
		o.finishJob(ctx, job, nil, errMsg)
	}
	if o.usage != nil && userID > 0 {
		// rough token accounting: four characters per token
		_ = o.usage.Record(ctx, userID, endpoint, len(docText)/4)
	}
}
