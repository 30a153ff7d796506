package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docuforge/docuforge/internal/entity"
)

// allowedExtensions is the upload allow-list, keyed by lowercase
// extension without the dot.
var allowedExtensions = map[string]bool{
	"pdf": true, "docx": true, "doc": true,
	"png": true, "jpg": true, "jpeg": true,
	"gif": true, "bmp": true, "tiff": true,
}

func (s *Server) handleUpload(c *gin.Context) {
	userID := currentUserID(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if fh.Size > s.cfg.Upload.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds maximum upload size"})
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file type not allowed: %s", ext)})
		return
	}

	if err := os.MkdirAll(s.cfg.Upload.Dir, 0o755); err != nil {
		handleError(c, err)
		return
	}
	docUUID := uuid.New()
	storedName := docUUID.String() + "." + ext
	storagePath := filepath.Join(s.cfg.Upload.Dir, storedName)
	if err := c.SaveUploadedFile(fh, storagePath); err != nil {
		s.logger.Error("upload.save_failed", "filename", fh.Filename, "error", err)
		handleError(c, err)
		return
	}

	doc, err := s.documents.Create(c.Request.Context(), &entity.Document{
		UUID:         docUUID,
		UserID:       userID,
		Filename:     storedName,
		OriginalName: fh.Filename,
		FileType:     ext,
		FileSize:     fh.Size,
		StoragePath:  storagePath,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	// extraction runs inline; the document row keeps the outcome either way
	res := s.orch.Extract(c.Request.Context(), doc.ID, storagePath, ext)
	if res.Success {
		meta, _ := json.Marshal(map[string]any{"metadata": res.Metadata, "structure": res.Structure})
		if err := s.documents.SetExtraction(c.Request.Context(), doc.ID, res.Text, string(meta)); err == nil {
			doc.ExtractedText = res.Text
			doc.Metadata = string(meta)
		}
	}

	s.logger.Info("upload.ok", "document_id", doc.ID, "file_type", ext, "extracted", res.Success)
	c.JSON(http.StatusCreated, gin.H{
		"document":   doc,
		"extraction": res,
	})
}

func (s *Server) handleListDocuments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	docs, err := s.documents.ListByUser(c.Request.Context(), currentUserID(c), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	if docs == nil {
		docs = []*entity.Document{}
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	doc, ok := s.lookupDocument(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) handleListJobs(c *gin.Context) {
	doc, ok := s.lookupDocument(c)
	if !ok {
		return
	}
	jobs, err := s.jobs.ListByDocument(c.Request.Context(), doc.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	if jobs == nil {
		jobs = []*entity.ProcessingJob{}
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (s *Server) handleGetJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	job, err := s.jobs.GetByUUID(c.Request.Context(), currentUserID(c), jobUUID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handleStats(c *gin.Context) {
	userID := currentUserID(c)
	docCount, err := s.documents.CountByUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	usage, err := s.usage.StatsForUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"document_count": docCount,
		"api_usage":      usage,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	doc, ok := s.lookupDocument(c)
	if !ok {
		return
	}
	if _, err := os.Stat(doc.StoragePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file no longer available"})
		return
	}
	c.FileAttachment(doc.StoragePath, doc.OriginalName)
}

// lookupDocument resolves the :uuid param to a document owned by the
// current user, writing the error response itself on failure.
func (s *Server) lookupDocument(c *gin.Context) (*entity.Document, bool) {
	docUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return nil, false
	}
	doc, err := s.documents.GetByUUID(c.Request.Context(), currentUserID(c), docUUID)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return doc, true
}
