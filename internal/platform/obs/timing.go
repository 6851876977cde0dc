package obs

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

const tracerName = "mobility-context-service"

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// WithRequestID stores id in ctx under RequestIDKey.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time logs the duration and outcome of op when the returned func is deferred with
// the caller's named error. A span event is recorded on the active span as well.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)
	span := trace.SpanFromContext(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			span.AddEvent(name, trace.WithAttributes(
				attribute.Int64("dur_ms", dur.Milliseconds()),
				attribute.String("error", (*errp).Error()),
			))
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
		span.AddEvent(name, trace.WithAttributes(attribute.Int64("dur_ms", dur.Milliseconds())))
	}
}

// StartSpan opens a span on the global tracer provider. The returned func ends it,
// marking the span as failed when *errp is non-nil.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(errp *error)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
	if reqID := RequestID(ctx); reqID != "" {
		span.SetAttributes(attribute.String("request.id", reqID))
	}

	return ctx, func(errp *error) {
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
		}
		span.End()
	}
}
