package repository

import (
	"context"
	"log/slog"
	"time"
)

// UsageStats aggregates remote-service accounting for one user.
type UsageStats struct {
	TotalCalls  int            `json:"total_calls"`
	TotalTokens int            `json:"total_tokens"`
	ByEndpoint  map[string]int `json:"by_endpoint"`
}

type UsageRepository interface {
	Record(ctx context.Context, userID int64, endpoint string, tokens int) error
	StatsForUser(ctx context.Context, userID int64) (*UsageStats, error)
}

type usageRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewUsageRepository(db *DB, logger *slog.Logger) UsageRepository {
	return &usageRepository{db: db, logger: logger}
}

func (r *usageRepository) Record(ctx context.Context, userID int64, endpoint string, tokens int) error {
	_, err := r.db.sql.ExecContext(ctx, r.db.rebind(
		`INSERT INTO api_usage (user_id, endpoint, tokens_used, created_at) VALUES (?, ?, ?, ?)`),
		userID, endpoint, tokens, time.Now().UTC())
	if err != nil {
		// accounting must never block the operation that triggered it
		r.logger.Warn("failed to record api usage", "user_id", userID, "endpoint", endpoint, "error", err)
	}
	return err
}

func (r *usageRepository) StatsForUser(ctx context.Context, userID int64) (*UsageStats, error) {
	rows, err := r.db.sql.QueryContext(ctx, r.db.rebind(
		`SELECT endpoint, COUNT(*), COALESCE(SUM(tokens_used), 0)
		 FROM api_usage WHERE user_id = ? GROUP BY endpoint`), userID)
	if err != nil {
		r.logger.Error("failed to load usage stats", "user_id", userID, "error", err)
		return nil, err
	}
	defer rows.Close()

	stats := &UsageStats{ByEndpoint: map[string]int{}}
	for rows.Next() {
		var (
			endpoint string
			calls    int
			tokens   int
		)
		if err := rows.Scan(&endpoint, &calls, &tokens); err != nil {
			return nil, err
		}
		stats.ByEndpoint[endpoint] = calls
		stats.TotalCalls += calls
		stats.TotalTokens += tokens
	}
	return stats, rows.Err()
}
