package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docuforge/docuforge/internal/common"
	"github.com/docuforge/docuforge/internal/entity"
)

type JobRepository interface {
	Create(ctx context.Context, documentID int64, jobType, inputData string) (*entity.ProcessingJob, error)
	Complete(ctx context.Context, id int64, resultData string) error
	Fail(ctx context.Context, id int64, errorDetail string) error
	GetByUUID(ctx context.Context, userID int64, id uuid.UUID) (*entity.ProcessingJob, error)
	ListByDocument(ctx context.Context, documentID int64) ([]*entity.ProcessingJob, error)
}

type jobRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewJobRepository(db *DB, logger *slog.Logger) JobRepository {
	return &jobRepository{db: db, logger: logger}
}

const jobColumns = `id, uuid, document_id, job_type, status, input_data, result_data,
	error_detail, created_at, completed_at`

func (r *jobRepository) Create(ctx context.Context, documentID int64, jobType, inputData string) (*entity.ProcessingJob, error) {
	job := &entity.ProcessingJob{
		UUID:       uuid.New(),
		DocumentID: documentID,
		JobType:    jobType,
		Status:     entity.JobStatusProcessing,
		InputData:  inputData,
		CreatedAt:  time.Now().UTC(),
	}
	err := r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`INSERT INTO processing_jobs (uuid, document_id, job_type, status, input_data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		job.UUID.String(), job.DocumentID, job.JobType, job.Status, job.InputData, job.CreatedAt,
	).Scan(&job.ID)
	if err != nil {
		r.logger.Error("failed to create job", "job_type", jobType, "error", err)
		return nil, err
	}
	return job, nil
}

func (r *jobRepository) Complete(ctx context.Context, id int64, resultData string) error {
	return r.finish(ctx, id, entity.JobStatusCompleted, resultData, "")
}

func (r *jobRepository) Fail(ctx context.Context, id int64, errorDetail string) error {
	return r.finish(ctx, id, entity.JobStatusFailed, "", errorDetail)
}

func (r *jobRepository) finish(ctx context.Context, id int64, status, resultData, errorDetail string) error {
	_, err := r.db.sql.ExecContext(ctx, r.db.rebind(
		`UPDATE processing_jobs SET status = ?, result_data = ?, error_detail = ?, completed_at = ? WHERE id = ?`),
		status, resultData, errorDetail, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("failed to finish job", "job_id", id, "status", status, "error", err)
	}
	return err
}

// GetByUUID resolves a job only when its document belongs to userID.
func (r *jobRepository) GetByUUID(ctx context.Context, userID int64, id uuid.UUID) (*entity.ProcessingJob, error) {
	cols := "j.id, j.uuid, j.document_id, j.job_type, j.status, j.input_data, j.result_data,\n\t\tj.error_detail, j.created_at, j.completed_at"
	row := r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`SELECT `+cols+` FROM processing_jobs j
		 JOIN documents d ON d.id = j.document_id
		 WHERE j.uuid = ? AND d.user_id = ?`), id.String(), userID)
	job, err := scanJob(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return job, err
}

func (r *jobRepository) ListByDocument(ctx context.Context, documentID int64) ([]*entity.ProcessingJob, error) {
	rows, err := r.db.sql.QueryContext(ctx, r.db.rebind(
		`SELECT `+jobColumns+` FROM processing_jobs WHERE document_id = ? ORDER BY created_at DESC`), documentID)
	if err != nil {
		r.logger.Error("failed to list jobs", "document_id", documentID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var jobs []*entity.ProcessingJob
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(scan func(...any) error) (*entity.ProcessingJob, error) {
	var (
		job         entity.ProcessingJob
		rawUUID     string
		completedAt sql.NullTime
	)
	err := scan(&job.ID, &rawUUID, &job.DocumentID, &job.JobType, &job.Status, &job.InputData,
		&job.ResultData, &job.ErrorDetail, &job.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if job.UUID, err = uuid.Parse(rawUUID); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		job.CompletedAt = completedAt.Time
	}
	return &job, nil
}
