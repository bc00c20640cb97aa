package services

import (
	"context"
	"fmt"

	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/models"
)

// MaxHistoryLimit caps how many fetch log rows one history query returns
const MaxHistoryLimit = 100

// FetchLogService appends scrape attempts to the tiktok_fetch_log table
type FetchLogService struct {
	db     *core.Database
	logger *core.Logger
}

// NewFetchLogService creates a new fetch log service
func NewFetchLogService(db *core.Database, logger *core.Logger) *FetchLogService {
	return &FetchLogService{
		db:     db,
		logger: logger,
	}
}

// Record stores one attempt and fills in its id
func (s *FetchLogService) Record(ctx context.Context, rec *models.FetchRecord) error {
	query := `
		INSERT INTO tiktok_fetch_log (username, requested, returned, outcome, error, duration_ms, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecWithTimeout(ctx, query,
		rec.Username, rec.Count, rec.Returned, rec.Outcome, rec.Error, rec.DurationMs, rec.FetchedAt.UTC(),
	)
	if err != nil {
		return core.NewDatabaseError("failed to record fetch", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.NewDatabaseError("failed to read fetch log id", err)
	}
	rec.ID = id
	return nil
}

// Recent returns up to limit records, newest first
func (s *FetchLogService) Recent(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		return nil, core.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxHistoryLimit), nil)
	}

	query := `
		SELECT id, username, requested, returned, outcome, error, duration_ms, fetched_at
		FROM tiktok_fetch_log
		ORDER BY id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, core.NewDatabaseError("failed to query fetch log", err)
	}
	defer rows.Close()

	records := []models.FetchRecord{}
	for rows.Next() {
		var rec models.FetchRecord
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.Count, &rec.Returned, &rec.Outcome, &rec.Error, &rec.DurationMs, &rec.FetchedAt); err != nil {
			return nil, core.NewDatabaseError("failed to scan fetch log row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewDatabaseError("failed to iterate fetch log", err)
	}

	return records, nil
}
