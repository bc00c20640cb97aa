package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/models"
)

// ScraperConfig holds configuration for the profile scraper
type ScraperConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	// Timeout of zero leaves the request bounded only by its context
	Timeout time.Duration
}

// ScrapeResult is the projection of one profile page
type ScrapeResult struct {
	Videos     []models.VideoRef
	StateFound bool
	Status     int
}

// ScraperService fetches profile pages and projects their hydration state
type ScraperService struct {
	client *http.Client
	logger *core.Logger
	config *ScraperConfig
}

// NewScraperService creates a new scraper service
func NewScraperService(logger *core.Logger, config *ScraperConfig) *ScraperService {
	return &ScraperService{
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
		config: config,
	}
}

// ProfileURL returns the public profile page for username
func (s *ScraperService) ProfileURL(username string) string {
	return fmt.Sprintf("%s/@%s", strings.TrimRight(s.config.BaseURL, "/"), url.PathEscape(username))
}

// Scrape fetches the profile of req.Username and returns at most req.Count videos.
// The id list is sliced before items are resolved, so unresolved ids still use up the count.
func (s *ScraperService) Scrape(ctx context.Context, req models.FeedRequest) (*ScrapeResult, error) {
	body, status, err := s.fetchProfile(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	result := &ScrapeResult{
		Videos: []models.VideoRef{},
		Status: status,
	}

	stateText, ok, err := findStateScript(body)
	if err != nil {
		return nil, core.NewParseError("failed to read profile page", err)
	}
	if !ok {
		s.logger.WithContext(ctx).Debug("Hydration state not found", "username", req.Username, "status", status)
		return result, nil
	}
	result.StateFound = true

	posts, err := parseUserPosts(stateText)
	if err != nil {
		return nil, core.NewParseError("failed to parse hydration state", err)
	}

	baseURL := strings.TrimRight(s.config.BaseURL, "/")
	for _, entry := range headSlice(posts.List, req.Count) {
		key, ok := keyOf(entry)
		if !ok {
			continue
		}
		id, ok := itemID(posts.Items[key])
		if !ok {
			continue
		}
		result.Videos = append(result.Videos, models.NewVideoRef(baseURL, req.Username, id))
	}

	s.logger.WithContext(ctx).Info("Scraped profile",
		"username", req.Username,
		"listed", len(posts.List),
		"returned", len(result.Videos),
	)
	return result, nil
}

// fetchProfile issues the single upstream GET and returns the whole body.
// The upstream status is reported but never rejected.
func (s *ScraperService) fetchProfile(ctx context.Context, username string) ([]byte, int, error) {
	profileURL := s.ProfileURL(username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return nil, 0, core.NewUpstreamError("failed to create request", err)
	}

	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept-Language", s.config.AcceptLanguage)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, core.NewUpstreamError("failed to fetch profile", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.WithContext(ctx).Warn("Profile returned non-200 status", "url", profileURL, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, core.NewUpstreamError("failed to read response body", err)
	}

	return body, resp.StatusCode, nil
}
