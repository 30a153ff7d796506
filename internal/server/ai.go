package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docuforge/docuforge/internal/entity"
)

type aiRequest struct {
	DocumentUUID string `json:"document_uuid" binding:"required"`
	Question     string `json:"question"`
	Instruction  string `json:"instruction"`
	Scope        string `json:"scope"`
	SummaryType  string `json:"summary_type"`
	TargetFormat string `json:"target_format"`
}

// resolveAIRequest binds the request body and loads the referenced
// document for the current user.
func (s *Server) resolveAIRequest(c *gin.Context) (*aiRequest, *entity.Document, bool) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_uuid is required"})
		return nil, nil, false
	}
	docUUID, err := uuid.Parse(req.DocumentUUID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return nil, nil, false
	}
	doc, err := s.documents.GetByUUID(c.Request.Context(), currentUserID(c), docUUID)
	if err != nil {
		handleError(c, err)
		return nil, nil, false
	}
	return &req, doc, true
}

func (s *Server) handleQA(c *gin.Context) {
	req, doc, ok := s.resolveAIRequest(c)
	if !ok {
		return
	}
	res := s.orch.Ask(c.Request.Context(), currentUserID(c), doc.ID, doc.ExtractedText, req.Question)
	c.JSON(statusFor(res.Success), res)
}

func (s *Server) handleEdit(c *gin.Context) {
	req, doc, ok := s.resolveAIRequest(c)
	if !ok {
		return
	}
	var metadata map[string]string
	if req.Scope != "" {
		metadata = map[string]string{"scope": req.Scope}
	}
	res := s.orch.Edit(c.Request.Context(), currentUserID(c), doc.ID, doc.ExtractedText, req.Instruction, metadata)
	c.JSON(statusFor(res.Success), res)
}

func (s *Server) handleSummarize(c *gin.Context) {
	req, doc, ok := s.resolveAIRequest(c)
	if !ok {
		return
	}
	summaryType := req.SummaryType
	if summaryType == "" {
		summaryType = "detailed"
	}
	res := s.orch.Summarize(c.Request.Context(), currentUserID(c), doc.ID, doc.ExtractedText, summaryType)
	c.JSON(statusFor(res.Success), res)
}

func (s *Server) handleConvert(c *gin.Context) {
	req, doc, ok := s.resolveAIRequest(c)
	if !ok {
		return
	}
	res := s.orch.Convert(c.Request.Context(), doc.ID, doc.ExtractedText, doc.OriginalName, req.TargetFormat)
	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"format":        res.Format,
		"artifact_name": filepath.Base(res.FilePath),
		"file_path":     res.FilePath,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	_, doc, ok := s.resolveAIRequest(c)
	if !ok {
		return
	}
	res := s.orch.Analyze(c.Request.Context(), currentUserID(c), doc.ID, doc.ExtractedText)
	c.JSON(statusFor(res.Success), res)
}

// statusFor maps typed result success to an HTTP status. Failures are
// 422: the request was well-formed but the operation did not produce a
// usable result.
func statusFor(success bool) int {
	if success {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}
