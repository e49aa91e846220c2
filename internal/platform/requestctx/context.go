package requestctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

type contextKey string

const (
	loggerContextKey contextKey = "github.com/ironarian/ukr-jobs-japan/internal/platform/requestctx/logger"
	traceContextKey  contextKey = "github.com/ironarian/ukr-jobs-japan/internal/platform/requestctx/trace"
	langContextKey   contextKey = "github.com/ironarian/ukr-jobs-japan/internal/platform/requestctx/lang"
)

var noopLogger = zap.NewNop()

// TraceInfo captures trace metadata propagated through request context.
type TraceInfo struct {
	TraceID   string
	SpanID    string
	Sampled   bool
	ProjectID string
}

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// NoopLogger exposes the shared noop logger instance.
func NoopLogger() *zap.Logger { return noopLogger }

// WithTrace stores the trace metadata on the context.
func WithTrace(ctx context.Context, info TraceInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, traceContextKey, info)
}

// Trace retrieves the trace metadata from context when available.
func Trace(ctx context.Context) (TraceInfo, bool) {
	if ctx == nil {
		return TraceInfo{}, false
	}
	info, ok := ctx.Value(traceContextKey).(TraceInfo)
	return info, ok
}

// TraceID extracts the trace identifier from context when present.
func TraceID(ctx context.Context) string {
	info, _ := Trace(ctx)
	return info.TraceID
}

// WithLang stores the display language selected for the request.
func WithLang(ctx context.Context, lang domain.Lang) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, langContextKey, lang)
}

// Lang returns the request language, or false when none was selected.
func Lang(ctx context.Context) (domain.Lang, bool) {
	if ctx == nil {
		return "", false
	}
	lang, ok := ctx.Value(langContextKey).(domain.Lang)
	if !ok || !lang.Valid() {
		return "", false
	}
	return lang, true
}
