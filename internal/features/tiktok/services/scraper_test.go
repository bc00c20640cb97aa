package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok/models"
)

const threeVideoState = `{
	"ItemList": {
		"userPost": {
			"list": ["v9", "v8", "v7"],
			"map": {
				"v9": {"id": "v9"},
				"v8": {"id": "v8"},
				"v7": {"id": "v7"}
			}
		}
	}
}`

func profileHTML(state string) string {
	return `<!DOCTYPE html><html><head><title>profile</title>` +
		`<script id="SIGI_STATE" type="application/json">` + state + `</script>` +
		`</head><body><div id="app"></div></body></html>`
}

func testLogger() *core.Logger {
	return core.NewLoggerWithOptions(io.Discard, slog.LevelDebug)
}

// newTestScraper points a scraper at an upstream that always answers with page
func newTestScraper(t *testing.T, page string) (*ScraperService, *[]*http.Request) {
	t.Helper()

	var seen []*http.Request
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Clone(context.Background()))
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, page)
	}))
	t.Cleanup(upstream.Close)

	scraper := NewScraperService(testLogger(), &ScraperConfig{
		BaseURL:        upstream.URL,
		UserAgent:      core.DefaultUserAgent,
		AcceptLanguage: core.DefaultAcceptLanguage,
	})
	return scraper, &seen
}

func TestScrape_ReturnsFirstCountVideosInOrder(t *testing.T) {
	scraper, seen := newTestScraper(t, profileHTML(threeVideoState))

	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "alice", Count: 2})
	require.NoError(t, err)

	base := scraper.config.BaseURL
	assert.True(t, result.StateFound)
	assert.Equal(t, []models.VideoRef{
		{ID: "v9", URL: base + "/@alice/video/v9"},
		{ID: "v8", URL: base + "/@alice/video/v8"},
	}, result.Videos)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, "/@alice", req.URL.Path)
	assert.Equal(t, core.DefaultUserAgent, req.Header.Get("User-Agent"))
	assert.Equal(t, core.DefaultAcceptLanguage, req.Header.Get("Accept-Language"))
}

func TestScrape_CountLargerThanList(t *testing.T) {
	scraper, _ := newTestScraper(t, profileHTML(threeVideoState))

	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "alice", Count: 10})
	require.NoError(t, err)
	assert.Len(t, result.Videos, 3)
}

func TestScrape_MissingStateScriptIsEmptyNotError(t *testing.T) {
	scraper, _ := newTestScraper(t, `<html><head></head><body>blocked</body></html>`)

	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "alice", Count: 5})
	require.NoError(t, err)
	assert.False(t, result.StateFound)
	assert.NotNil(t, result.Videos)
	assert.Empty(t, result.Videos)
}

func TestScrape_EmptyStateScriptIsEmpty(t *testing.T) {
	scraper, _ := newTestScraper(t, profileHTML(""))

	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "alice", Count: 5})
	require.NoError(t, err)
	assert.False(t, result.StateFound)
	assert.Empty(t, result.Videos)
}

func TestScrape_MalformedJSONIsParseError(t *testing.T) {
	scraper, _ := newTestScraper(t, profileHTML(`{"ItemList": {`))

	_, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "alice", Count: 5})
	require.Error(t, err)
	assert.Equal(t, core.ErrCodeParse, core.ErrorCode(err))
}

func TestScrape_SlicesBeforeResolvingItems(t *testing.T) {
	state := `{"ItemList":{"userPost":{
		"list": ["gone", "v2", "v3"],
		"map": {"v2": {"id": "v2"}, "v3": {"id": "v3"}}
	}}}`
	scraper, _ := newTestScraper(t, profileHTML(state))

	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: 2})
	require.NoError(t, err)

	// "gone" uses up one of the two slots even though v3 would have resolved
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "v2", result.Videos[0].ID)
}

func TestScrape_SkipsItemsWithFalsyID(t *testing.T) {
	state := `{"ItemList":{"userPost":{
		"list": ["a", "b", "c", "d", "e"],
		"map": {
			"a": {"id": ""},
			"b": {"desc": "no id"},
			"c": {"id": "c"},
			"d": null,
			"e": {"id": 0}
		}
	}}}`
	scraper, _ := newTestScraper(t, profileHTML(state))

	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: 5})
	require.NoError(t, err)
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "c", result.Videos[0].ID)
}

func TestScrape_MissingLevelsDefaultToEmpty(t *testing.T) {
	states := map[string]string{
		"no ItemList":   `{"UserModule": {}}`,
		"no userPost":   `{"ItemList": {}}`,
		"null list":     `{"ItemList": {"userPost": {"list": null}}}`,
		"list, no map":  `{"ItemList": {"userPost": {"list": ["v1"]}}}`,
		"ItemList text": `{"ItemList": "unavailable"}`,
	}

	for name, state := range states {
		t.Run(name, func(t *testing.T) {
			scraper, _ := newTestScraper(t, profileHTML(state))

			result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: 5})
			require.NoError(t, err)
			assert.True(t, result.StateFound)
			assert.Empty(t, result.Videos)
		})
	}
}

func TestScrape_NonArrayListIsParseError(t *testing.T) {
	scraper, _ := newTestScraper(t, profileHTML(`{"ItemList":{"userPost":{"list": 42}}}`))

	_, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: 5})
	require.Error(t, err)
	assert.Equal(t, core.ErrCodeParse, core.ErrorCode(err))
}

func TestScrape_NonPositiveCounts(t *testing.T) {
	scraper, _ := newTestScraper(t, profileHTML(threeVideoState))

	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: 0})
	require.NoError(t, err)
	assert.Empty(t, result.Videos)

	// A negative count drops entries from the end of the list
	result, err = scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: -1})
	require.NoError(t, err)
	require.Len(t, result.Videos, 2)
	assert.Equal(t, "v9", result.Videos[0].ID)
	assert.Equal(t, "v8", result.Videos[1].ID)
}

func TestScrape_NonOKStatusStillParsed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, profileHTML(threeVideoState))
	}))
	defer upstream.Close()

	scraper := NewScraperService(testLogger(), &ScraperConfig{BaseURL: upstream.URL})
	result, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, result.Status)
	assert.Len(t, result.Videos, 1)
}

func TestScrape_NetworkFailureIsUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	baseURL := upstream.URL
	upstream.Close()

	scraper := NewScraperService(testLogger(), &ScraperConfig{BaseURL: baseURL})
	_, err := scraper.Scrape(context.Background(), models.FeedRequest{Username: "bob", Count: 5})
	require.Error(t, err)
	assert.Equal(t, core.ErrCodeUpstream, core.ErrorCode(err))
}

func TestProfileURL(t *testing.T) {
	scraper := NewScraperService(testLogger(), &ScraperConfig{BaseURL: "https://www.tiktok.com/"})

	assert.Equal(t, "https://www.tiktok.com/@fringebiscuit", scraper.ProfileURL("fringebiscuit"))
	assert.Equal(t, "https://www.tiktok.com/@a%20b", scraper.ProfileURL("a b"))
}
