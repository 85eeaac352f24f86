package model

// Stats aggregates process-local counters over submitted points.
type Stats struct {
	Total        int64
	OutOfDisplay int64
	Misses       int64
	Area         float64
}

// CachedResponse is a stored HTTP response replayed for a repeated
// idempotency key.
type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}
