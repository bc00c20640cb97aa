package models

import "fmt"

// VideoRef identifies one video on a profile
type VideoRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// NewVideoRef builds a reference with the canonical watch URL
func NewVideoRef(baseURL, username, id string) VideoRef {
	return VideoRef{
		ID:  id,
		URL: VideoURL(baseURL, username, id),
	}
}

// VideoURL returns <base>/@<username>/video/<id>
func VideoURL(baseURL, username, id string) string {
	return fmt.Sprintf("%s/@%s/video/%s", baseURL, username, id)
}

// FeedResponse is the body of a successful feed request
type FeedResponse struct {
	Videos []VideoRef `json:"videos"`
}

// FeedRequest carries the resolved query of one feed request
type FeedRequest struct {
	Username string
	Count    int
}
