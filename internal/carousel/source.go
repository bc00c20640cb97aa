package carousel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// HTTPSource reads videos from a feed endpoint over HTTP
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource resolves relative API URLs against baseURL
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: base, client: client}, nil
}

// Videos issues GET <apiURL>?count=<count>. A body whose videos field is
// not an array yields an empty list; only transport and JSON errors fail.
func (s *HTTPSource) Videos(ctx context.Context, apiURL string, count int) ([]Video, error) {
	endpoint, err := s.endpoint(apiURL, count)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	defer resp.Body.Close()

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode videos (status %d): %w", resp.StatusCode, err)
	}

	return videosFrom(body), nil
}

func (s *HTTPSource) endpoint(apiURL string, count int) (string, error) {
	ref, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid api url %q: %w", apiURL, err)
	}

	u := s.base.ResolveReference(ref)
	q := u.Query()
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func videosFrom(body any) []Video {
	obj, ok := body.(map[string]any)
	if !ok {
		return []Video{}
	}
	list, ok := obj["videos"].([]any)
	if !ok {
		return []Video{}
	}

	videos := make([]Video, 0, len(list))
	for _, entry := range list {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := fields["id"].(string)
		u, _ := fields["url"].(string)
		videos = append(videos, Video{ID: id, URL: u})
	}
	return videos
}
