package handlers

import (
	"context"
	"net/http"
	"net/url"

	"tiktok-carousel/internal/carousel"
	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/models"
	"tiktok-carousel/internal/views"
)

// WebHandler serves the carousel page
type WebHandler struct {
	logger      *core.Logger
	config      carousel.Config
	feed        FeedProvider
	defaultUser string
	apiBaseURL  string
	client      *http.Client
}

// NewWebHandler creates the web handler. With an empty apiBaseURL the
// carousel is filled from feed in-process; otherwise it calls the feed
// endpoint at apiBaseURL.
func NewWebHandler(logger *core.Logger, config carousel.Config, feed FeedProvider, defaultUser, apiBaseURL string, client *http.Client) *WebHandler {
	return &WebHandler{
		logger:      logger,
		config:      config,
		feed:        feed,
		defaultUser: defaultUser,
		apiBaseURL:  apiBaseURL,
		client:      client,
	}
}

// CarouselPage handles GET /?user=&count=
func (h *WebHandler) CarouselPage(w http.ResponseWriter, r *http.Request) {
	cfg := h.config
	q := r.URL.Query()
	if user := q.Get("user"); user != "" {
		cfg.APIURL = withQueryParam(cfg.APIURL, "user", user)
	}
	if raw := q.Get("count"); raw != "" {
		if n, ok := parseLeadingInt(raw); ok && n > 0 {
			cfg.MaxVideos = n
		}
	}

	source, err := h.source()
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to create carousel source", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := carousel.NewPage()
	c := carousel.New(cfg, source, page, h.logger)
	c.Mount(r.Context())
	defer c.Unmount()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := views.Layout("Latest TikTok videos", c.Component(), page.ScriptTags())
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to render carousel page", "error", err)
	}
}

// source never derives an address from the incoming request
func (h *WebHandler) source() (carousel.Source, error) {
	if h.apiBaseURL == "" {
		return &feedSource{feed: h.feed, defaultUser: h.defaultUser}, nil
	}
	return carousel.NewHTTPSource(h.apiBaseURL, h.client)
}

// feedSource answers the carousel from the feed service directly. The user
// is read from the API URL's query the same way the feed endpoint reads it.
type feedSource struct {
	feed        FeedProvider
	defaultUser string
}

func (s *feedSource) Videos(ctx context.Context, apiURL string, count int) ([]carousel.Video, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, err
	}

	username := u.Query().Get("user")
	if username == "" {
		username = s.defaultUser
	}

	feed, err := s.feed.GetFeed(ctx, models.FeedRequest{Username: username, Count: count})
	if err != nil {
		return nil, err
	}

	videos := make([]carousel.Video, 0, len(feed.Videos))
	for _, v := range feed.Videos {
		videos = append(videos, carousel.Video{ID: v.ID, URL: v.URL})
	}
	return videos, nil
}

func withQueryParam(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
