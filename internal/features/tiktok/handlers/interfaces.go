package handlers

import (
	"context"

	"tiktok-carousel/internal/features/tiktok/models"
)

// FeedProvider resolves a feed request into videos
type FeedProvider interface {
	GetFeed(ctx context.Context, req models.FeedRequest) (*models.FeedResponse, error)
}

// HistoryProvider lists recent fetch log entries
type HistoryProvider interface {
	Recent(ctx context.Context, limit int) ([]models.FetchRecord, error)
}
