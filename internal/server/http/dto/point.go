package dto

import "github.com/polkiloo/areacheck/internal/domain/model"

// PointRequest is a point submission. Pointers distinguish a missing
// coordinate from zero.
type PointRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	R *float64 `json:"r"`
}

// PointResponse is one evaluated point.
type PointResponse struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	R   float64 `json:"r"`
	Hit bool    `json:"hit"`
}

// NewPointResponse converts a domain point.
func NewPointResponse(p model.Point) PointResponse {
	return PointResponse{X: p.X, Y: p.Y, R: p.R, Hit: p.Hit}
}

// StatsResponse exposes point statistics.
type StatsResponse struct {
	Total        int64   `json:"total"`
	OutOfDisplay int64   `json:"out_of_display"`
	Misses       int64   `json:"misses"`
	Area         float64 `json:"area"`
}
