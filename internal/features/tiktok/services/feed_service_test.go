package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/models"
)

type stubScraper struct {
	result *ScrapeResult
	err    error
	calls  []models.FeedRequest
}

func (s *stubScraper) Scrape(ctx context.Context, req models.FeedRequest) (*ScrapeResult, error) {
	s.calls = append(s.calls, req)
	return s.result, s.err
}

type recordingLog struct {
	records []models.FetchRecord
	err     error
}

func (l *recordingLog) Record(ctx context.Context, rec *models.FetchRecord) error {
	l.records = append(l.records, *rec)
	return l.err
}

func TestGetFeed_RecordsOutcome(t *testing.T) {
	videos := []models.VideoRef{{ID: "v1", URL: "u1"}}

	tests := []struct {
		name        string
		scraper     *stubScraper
		wantOutcome string
		wantErr     bool
	}{
		{
			name:        "ok",
			scraper:     &stubScraper{result: &ScrapeResult{Videos: videos, StateFound: true}},
			wantOutcome: models.OutcomeOK,
		},
		{
			name:        "no state",
			scraper:     &stubScraper{result: &ScrapeResult{Videos: []models.VideoRef{}}},
			wantOutcome: models.OutcomeNoState,
		},
		{
			name:        "upstream",
			scraper:     &stubScraper{err: core.NewUpstreamError("failed to fetch profile", errors.New("dial tcp"))},
			wantOutcome: models.OutcomeUpstreamErr,
			wantErr:     true,
		},
		{
			name:        "parse",
			scraper:     &stubScraper{err: core.NewParseError("failed to parse hydration state", errors.New("eof"))},
			wantOutcome: models.OutcomeParseErr,
			wantErr:     true,
		},
		{
			name:        "other",
			scraper:     &stubScraper{err: errors.New("boom")},
			wantOutcome: models.OutcomeError,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLog{}
			svc := NewFeedService(tt.scraper, log, testLogger())

			feed, err := svc.GetFeed(context.Background(), models.FeedRequest{Username: "alice", Count: 3})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, feed)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.scraper.result.Videos, feed.Videos)
			}

			require.Len(t, log.records, 1)
			rec := log.records[0]
			assert.Equal(t, tt.wantOutcome, rec.Outcome)
			assert.Equal(t, "alice", rec.Username)
			assert.Equal(t, 3, rec.Count)
			assert.Equal(t, tt.wantErr, rec.Error != "")
		})
	}
}

func TestGetFeed_LogFailureDoesNotFailRequest(t *testing.T) {
	scraper := &stubScraper{result: &ScrapeResult{Videos: []models.VideoRef{{ID: "v1"}}, StateFound: true}}
	svc := NewFeedService(scraper, &recordingLog{err: errors.New("disk full")}, testLogger())

	feed, err := svc.GetFeed(context.Background(), models.FeedRequest{Username: "alice", Count: 1})
	require.NoError(t, err)
	assert.Len(t, feed.Videos, 1)
}

func TestGetFeed_WithoutFetchLog(t *testing.T) {
	scraper := &stubScraper{result: &ScrapeResult{Videos: []models.VideoRef{}, StateFound: true}}
	svc := NewFeedService(scraper, nil, testLogger())

	feed, err := svc.GetFeed(context.Background(), models.FeedRequest{Username: "alice", Count: 1})
	require.NoError(t, err)
	assert.Empty(t, feed.Videos)
	assert.Len(t, scraper.calls, 1)
}
