package services

import (
	"context"
	"time"

	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/models"
)

// Scraper projects one profile page into video references
type Scraper interface {
	Scrape(ctx context.Context, req models.FeedRequest) (*ScrapeResult, error)
}

// FetchLogger records scrape attempts
type FetchLogger interface {
	Record(ctx context.Context, rec *models.FetchRecord) error
}

// FeedService answers feed requests and audits each attempt
type FeedService struct {
	scraper  Scraper
	fetchLog FetchLogger
	logger   *core.Logger
	now      func() time.Time
}

// NewFeedService creates a feed service. fetchLog may be nil.
func NewFeedService(scraper Scraper, fetchLog FetchLogger, logger *core.Logger) *FeedService {
	return &FeedService{
		scraper:  scraper,
		fetchLog: fetchLog,
		logger:   logger,
		now:      time.Now,
	}
}

// GetFeed scrapes the requested profile. Nothing is reused between calls.
func (s *FeedService) GetFeed(ctx context.Context, req models.FeedRequest) (*models.FeedResponse, error) {
	started := s.now()
	result, err := s.scraper.Scrape(ctx, req)

	rec := &models.FetchRecord{
		Username:   req.Username,
		Count:      req.Count,
		FetchedAt:  started,
		DurationMs: s.now().Sub(started).Milliseconds(),
	}
	switch {
	case err != nil:
		rec.Outcome = outcomeFor(err)
		rec.Error = err.Error()
	case !result.StateFound:
		rec.Outcome = models.OutcomeNoState
	default:
		rec.Outcome = models.OutcomeOK
		rec.Returned = len(result.Videos)
	}
	s.record(ctx, rec)

	if err != nil {
		return nil, err
	}
	return &models.FeedResponse{Videos: result.Videos}, nil
}

func (s *FeedService) record(ctx context.Context, rec *models.FetchRecord) {
	if s.fetchLog == nil {
		return
	}
	// The caller's response must not depend on the audit write
	if err := s.fetchLog.Record(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.WithContext(ctx).Warn("Failed to record fetch", "username", rec.Username, "error", err)
	}
}

func outcomeFor(err error) string {
	switch core.ErrorCode(err) {
	case core.ErrCodeUpstream:
		return models.OutcomeUpstreamErr
	case core.ErrCodeParse:
		return models.OutcomeParseErr
	default:
		return models.OutcomeError
	}
}
