package usecase

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
)

var tracer = otel.Tracer("github.com/polkiloo/areacheck/internal/usecase")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// storeFailure marks err as an unknown-outcome storage failure.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domainErrors.ErrStoreUnavailable, op, err)
}
