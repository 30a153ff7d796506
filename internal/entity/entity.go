// Package entity defines the persistent domain model. Fields mirror
// the relational schema one to one; behavior lives in the repository
// and orchestrator layers.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Processing job lifecycle states.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job types correspond to orchestrator operations.
const (
	JobTypeExtract   = "extract"
	JobTypeQA        = "qa"
	JobTypeEdit      = "edit"
	JobTypeSummarize = "summarize"
	JobTypeConvert   = "convert"
	JobTypeAnalyze   = "analyze"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Document struct {
	ID            int64     `json:"id"`
	UUID          uuid.UUID `json:"uuid"`
	UserID        int64     `json:"user_id"`
	Filename      string    `json:"filename"`
	OriginalName  string    `json:"original_name"`
	FileType      string    `json:"file_type"`
	FileSize      int64     `json:"file_size"`
	StoragePath   string    `json:"-"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	Metadata      string    `json:"metadata,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
	ProcessedAt   time.Time `json:"processed_at,omitzero"`
}

type ProcessingJob struct {
	ID          int64     `json:"id"`
	UUID        uuid.UUID `json:"uuid"`
	DocumentID  int64     `json:"document_id"`
	JobType     string    `json:"job_type"`
	Status      string    `json:"status"`
	InputData   string    `json:"input_data,omitempty"`
	ResultData  string    `json:"result_data,omitempty"`
	ErrorDetail string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
}

type ChatMessage struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	DocumentID int64     `json:"document_id,omitempty"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// APIUsage records one remote completion call for accounting.
type APIUsage struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Endpoint   string    `json:"endpoint"`
	TokensUsed int       `json:"tokens_used"`
	CreatedAt  time.Time `json:"created_at"`
}
