// Package monitor keeps process-local statistics over submitted points.
package monitor

import (
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/polkiloo/areacheck/internal/domain/model"
)

// DisplayLimit bounds the plotted area on both axes.
const DisplayLimit = 5.0

// maxVertices caps the polygon; the oldest vertices are dropped first.
const maxVertices = 10000

type vertex struct {
	x, y float64
}

// Recorder counts points and tracks the polygon they span.
type Recorder struct {
	logger *slog.Logger

	mu           sync.Mutex
	total        int64
	outOfDisplay int64
	misses       int64
	vertices     []vertex
}

// NewRecorder creates an empty Recorder.
func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Record accounts for one stored point. Points outside the display are
// counted separately from misses and reported with a warning.
func (r *Recorder) Record(p model.Point) {
	outside := math.Abs(p.X) > DisplayLimit || math.Abs(p.Y) > DisplayLimit

	r.mu.Lock()
	r.total++
	switch {
	case outside:
		r.outOfDisplay++
	case !p.Hit:
		r.misses++
	}
	r.vertices = append(r.vertices, vertex{x: p.X, y: p.Y})
	if len(r.vertices) > maxVertices {
		r.vertices = append(r.vertices[:0], r.vertices[len(r.vertices)-maxVertices:]...)
	}
	r.mu.Unlock()

	if outside && r.logger != nil {
		r.logger.Warn("point outside display area",
			slog.Int64("user_id", p.UserID),
			slog.Float64("x", p.X),
			slog.Float64("y", p.Y),
		)
	}
}

// Snapshot returns the current counters and polygon area.
func (r *Recorder) Snapshot() model.Stats {
	r.mu.Lock()
	stats := model.Stats{
		Total:        r.total,
		OutOfDisplay: r.outOfDisplay,
		Misses:       r.misses,
	}
	vertices := make([]vertex, len(r.vertices))
	copy(vertices, r.vertices)
	r.mu.Unlock()

	stats.Area = polygonArea(vertices)
	return stats
}

// polygonArea orders vertices by angle around their centroid, then by
// distance from it, and applies the shoelace formula. vs is reordered.
func polygonArea(vs []vertex) float64 {
	if len(vs) < 3 {
		return 0
	}

	var cx, cy float64
	for _, v := range vs {
		cx += v.x
		cy += v.y
	}
	cx /= float64(len(vs))
	cy /= float64(len(vs))

	sort.SliceStable(vs, func(i, j int) bool {
		ai := math.Atan2(vs[i].y-cy, vs[i].x-cx)
		aj := math.Atan2(vs[j].y-cy, vs[j].x-cx)
		if ai != aj {
			return ai < aj
		}
		return math.Hypot(vs[i].x-cx, vs[i].y-cy) < math.Hypot(vs[j].x-cx, vs[j].y-cy)
	})

	var sum float64
	for i := range vs {
		j := (i + 1) % len(vs)
		sum += vs[i].x*vs[j].y - vs[j].x*vs[i].y
	}
	return math.Abs(sum) / 2
}
