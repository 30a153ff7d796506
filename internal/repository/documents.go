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

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) (*entity.Document, error)
	GetByUUID(ctx context.Context, userID int64, id uuid.UUID) (*entity.Document, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Document, error)
	SetExtraction(ctx context.Context, id int64, text, metadata string) error
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type documentRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewDocumentRepository(db *DB, logger *slog.Logger) DocumentRepository {
	return &documentRepository{db: db, logger: logger}
}

const documentColumns = `id, uuid, user_id, filename, original_name, file_type, file_size,
	storage_path, extracted_text, metadata, uploaded_at, processed_at`

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) (*entity.Document, error) {
	if doc.UUID == uuid.Nil {
		doc.UUID = uuid.New()
	}
	doc.UploadedAt = time.Now().UTC()
	err := r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`INSERT INTO documents (uuid, user_id, filename, original_name, file_type, file_size,
			storage_path, extracted_text, metadata, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		doc.UUID.String(), doc.UserID, doc.Filename, doc.OriginalName, doc.FileType, doc.FileSize,
		doc.StoragePath, doc.ExtractedText, doc.Metadata, doc.UploadedAt,
	).Scan(&doc.ID)
	if err != nil {
		r.logger.Error("failed to create document", "filename", doc.OriginalName, "error", err)
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) GetByUUID(ctx context.Context, userID int64, id uuid.UUID) (*entity.Document, error) {
	row := r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`SELECT `+documentColumns+` FROM documents WHERE uuid = ? AND user_id = ?`),
		id.String(), userID)
	doc, err := scanDocument(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return doc, err
}

func (r *documentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Document, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.sql.QueryContext(ctx, r.db.rebind(
		`SELECT `+documentColumns+` FROM documents WHERE user_id = ?
		 ORDER BY uploaded_at DESC LIMIT ? OFFSET ?`), userID, limit, offset)
	if err != nil {
		r.logger.Error("failed to list documents", "user_id", userID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *documentRepository) SetExtraction(ctx context.Context, id int64, text, metadata string) error {
	_, err := r.db.sql.ExecContext(ctx, r.db.rebind(
		`UPDATE documents SET extracted_text = ?, metadata = ?, processed_at = ? WHERE id = ?`),
		text, metadata, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("failed to store extraction", "document_id", id, "error", err)
	}
	return err
}

func (r *documentRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`SELECT COUNT(*) FROM documents WHERE user_id = ?`), userID).Scan(&n)
	return n, err
}

func scanDocument(scan func(...any) error) (*entity.Document, error) {
	var (
		doc         entity.Document
		rawUUID     string
		processedAt sql.NullTime
	)
	err := scan(&doc.ID, &rawUUID, &doc.UserID, &doc.Filename, &doc.OriginalName, &doc.FileType,
		&doc.FileSize, &doc.StoragePath, &doc.ExtractedText, &doc.Metadata, &doc.UploadedAt, &processedAt)
	if err != nil {
		return nil, err
	}
	if doc.UUID, err = uuid.Parse(rawUUID); err != nil {
		return nil, err
	}
	if processedAt.Valid {
		doc.ProcessedAt = processedAt.Time
	}
	return &doc, nil
}
