package models

import "time"

// Fetch outcomes recorded in the fetch log
const (
	OutcomeOK          = "ok"
	OutcomeNoState     = "no_state"
	OutcomeUpstreamErr = "upstream_error"
	OutcomeParseErr    = "parse_error"
	OutcomeError       = "error"
)

// FetchRecord is one scrape attempt as stored in the fetch log
type FetchRecord struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Count      int       `json:"count"`
	Returned   int       `json:"returned"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	FetchedAt  time.Time `json:"fetched_at"`
}
