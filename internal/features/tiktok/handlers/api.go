package handlers

import (
	"net/http"
	"strconv"

	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/models"
)

// FeedErrorMessage is the only failure detail the feed endpoint exposes
const FeedErrorMessage = "Failed to fetch TikTok videos"

const defaultHistoryLimit = 20

// APIHandler serves the JSON endpoints of the TikTok feature
type APIHandler struct {
	logger       *core.Logger
	feed         FeedProvider
	history      HistoryProvider
	defaultUser  string
	defaultCount int
}

// NewAPIHandler creates the API handler. history may be nil when the fetch log is off.
func NewAPIHandler(logger *core.Logger, feed FeedProvider, history HistoryProvider, defaultUser string, defaultCount int) *APIHandler {
	return &APIHandler{
		logger:       logger,
		feed:         feed,
		history:      history,
		defaultUser:  defaultUser,
		defaultCount: defaultCount,
	}
}

// GetVideos handles GET /api/tiktoks?user=&count=
func (h *APIHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	req := h.feedRequest(r)

	feed, err := h.feed.GetFeed(r.Context(), req)
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Error fetching TikTok videos",
			"username", req.Username,
			"count", req.Count,
			"code", core.ErrorCode(err),
			"error", err,
		)
		core.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": FeedErrorMessage})
		return
	}

	if feed.Videos == nil {
		feed.Videos = []models.VideoRef{}
	}
	core.WriteJSON(w, http.StatusOK, feed)
}

// GetHistory handles GET /api/tiktoks/history?limit=
func (h *APIHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		core.HandleError(w, core.NewNotFoundError("fetch log is disabled", nil))
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			core.HandleError(w, core.NewValidationError("limit must be an integer", err))
			return
		}
		limit = v
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to list fetch log", "error", err)
		core.HandleError(w, err)
		return
	}

	core.WriteJSON(w, http.StatusOK, map[string]any{"fetches": records})
}

// feedRequest applies the endpoint defaults: an absent or empty user or
// count falls back, and a count without leading digits selects nothing.
func (h *APIHandler) feedRequest(r *http.Request) models.FeedRequest {
	q := r.URL.Query()

	username := q.Get("user")
	if username == "" {
		username = h.defaultUser
	}

	count := h.defaultCount
	if raw := q.Get("count"); raw != "" {
		count, _ = parseLeadingInt(raw)
	}

	return models.FeedRequest{Username: username, Count: count}
}
