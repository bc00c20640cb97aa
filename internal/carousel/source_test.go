package carousel

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Videos(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tiktoks", r.URL.Path)
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{"videos":[{"id":"1","url":"u1"},{"id":"2","url":"u2"}]}`)
	}))
	defer srv.Close()

	source, err := NewHTTPSource(srv.URL, srv.Client())
	require.NoError(t, err)

	videos, err := source.Videos(context.Background(), "/api/tiktoks", 5)
	require.NoError(t, err)
	assert.Equal(t, []Video{{ID: "1", URL: "u1"}, {ID: "2", URL: "u2"}}, videos)
	assert.Equal(t, "count=5", gotQuery)
}

func TestHTTPSource_DefensiveShapes(t *testing.T) {
	bodies := map[string]string{
		"videos is object":  `{"videos":{"id":"1"}}`,
		"videos is missing": `{"error":"Failed to fetch TikTok videos"}`,
		"videos is null":    `{"videos":null}`,
		"body is array":     `[{"id":"1"}]`,
		"body is string":    `"hello"`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			}))
			defer srv.Close()

			source, err := NewHTTPSource(srv.URL, nil)
			require.NoError(t, err)

			videos, err := source.Videos(context.Background(), "/api/tiktoks", 5)
			require.NoError(t, err)
			assert.NotNil(t, videos)
			assert.Empty(t, videos)
		})
	}
}

func TestHTTPSource_SkipsNonObjectEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"videos":["x", 3, {"id":"1","url":"u1"}]}`)
	}))
	defer srv.Close()

	source, err := NewHTTPSource(srv.URL, nil)
	require.NoError(t, err)

	videos, err := source.Videos(context.Background(), "/api/tiktoks", 5)
	require.NoError(t, err)
	assert.Equal(t, []Video{{ID: "1", URL: "u1"}}, videos)
}

func TestHTTPSource_Errors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"videos":[`)
		}))
		defer srv.Close()

		source, err := NewHTTPSource(srv.URL, nil)
		require.NoError(t, err)

		_, err = source.Videos(context.Background(), "/api/tiktoks", 5)
		assert.Error(t, err)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		source, err := NewHTTPSource(base, nil)
		require.NoError(t, err)

		_, err = source.Videos(context.Background(), "/api/tiktoks", 5)
		assert.Error(t, err)
	})
}

func TestHTTPSource_AbsoluteAPIURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("user"))
		assert.Equal(t, "2", r.URL.Query().Get("count"))
		io.WriteString(w, `{"videos":[]}`)
	}))
	defer srv.Close()

	source, err := NewHTTPSource("http://unused.invalid", nil)
	require.NoError(t, err)

	_, err = source.Videos(context.Background(), srv.URL+"/feed?user=alice&count=9", 2)
	require.NoError(t, err)
}
