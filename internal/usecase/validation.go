package usecase

import (
	"fmt"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
)

// Y is restricted to the range the client offers.
const (
	MinY = -5.0
	MaxY = 5.0
)

// ValidateSubmission checks a raw point submission before evaluation.
func ValidateSubmission(x, y, r *float64) error {
	if x == nil || y == nil || r == nil {
		return fmt.Errorf("%w: x, y and r are required", domainErrors.ErrInvalidArgument)
	}
	if *y < MinY || *y > MaxY {
		return fmt.Errorf("%w: y must be within [%g, %g]", domainErrors.ErrInvalidArgument, MinY, MaxY)
	}
	if *r < 0 {
		return fmt.Errorf("%w: r must be non-negative", domainErrors.ErrInvalidArgument)
	}
	return nil
}
