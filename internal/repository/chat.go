package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/docuforge/docuforge/internal/entity"
)

type ChatRepository interface {
	Append(ctx context.Context, userID, documentID int64, role, content string) (*entity.ChatMessage, error)
	History(ctx context.Context, userID int64, limit int) ([]*entity.ChatMessage, error)
}

type chatRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewChatRepository(db *DB, logger *slog.Logger) ChatRepository {
	return &chatRepository{db: db, logger: logger}
}

func (r *chatRepository) Append(ctx context.Context, userID, documentID int64, role, content string) (*entity.ChatMessage, error) {
	msg := &entity.ChatMessage{
		UserID:     userID,
		DocumentID: documentID,
		Role:       role,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	var docID any
	if documentID > 0 {
		docID = documentID
	}
	err := r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`INSERT INTO chat_messages (user_id, document_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		msg.UserID, docID, msg.Role, msg.Content, msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		r.logger.Error("failed to append chat message", "user_id", userID, "error", err)
		return nil, err
	}
	return msg, nil
}

func (r *chatRepository) History(ctx context.Context, userID int64, limit int) ([]*entity.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.sql.QueryContext(ctx, r.db.rebind(
		`SELECT id, user_id, document_id, role, content, created_at
		 FROM chat_messages WHERE user_id = ? ORDER BY id DESC LIMIT ?`), userID, limit)
	if err != nil {
		r.logger.Error("failed to load chat history", "user_id", userID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var msgs []*entity.ChatMessage
	for rows.Next() {
		var (
			m     entity.ChatMessage
			docID sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.UserID, &docID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		if docID.Valid {
			m.DocumentID = docID.Int64
		}
		msgs = append(msgs, &m)
	}
	// oldest first for rendering
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, rows.Err()
}
