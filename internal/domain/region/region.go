// Package region decides whether a point lies inside the fixed target area
// scaled by a radius R.
//
// The area is the union of three shapes, one per quadrant:
//
//	I   square      0 <= x <= R, 0 <= y <= R
//	II  triangle    vertices (0,0), (-R,0), (0,R/2)
//	IV  quarter disk of radius R
//
// Quadrant III is always outside. Boundaries are inclusive.
package region

import (
	"fmt"
	"math"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
)

type quadrant uint8

const (
	quadrantI quadrant = iota + 1
	quadrantII
	quadrantIII
	quadrantIV
)

// classify assigns points on an axis to the quadrant whose shape contains
// the whole shared edge, so the result equals the union of all shapes.
func classify(x, y float64) quadrant {
	switch {
	case x >= 0 && y >= 0:
		return quadrantI
	case x <= 0 && y >= 0:
		return quadrantII
	case x >= 0 && y <= 0:
		return quadrantIV
	default:
		return quadrantIII
	}
}

// Evaluate reports whether (x, y) is inside the area for radius r.
func Evaluate(x, y, r float64) (bool, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(r) {
		return false, fmt.Errorf("%w: coordinates must be numbers", domainErrors.ErrInvalidArgument)
	}
	if r < 0 {
		return false, fmt.Errorf("%w: r must be non-negative, got %g", domainErrors.ErrInvalidArgument, r)
	}

	switch classify(x, y) {
	case quadrantI:
		return x <= r && y <= r, nil
	case quadrantII:
		return x >= -r && y <= (x+r)/2, nil
	case quadrantIV:
		if x > r || -y > r {
			return false, nil
		}
		return math.Hypot(x, y) <= r, nil
	default:
		return false, nil
	}
}
