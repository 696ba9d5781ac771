package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

// MetricsRecorder records evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one evaluation with its duration and outcome.
	// Failures are also counted by error category.
	RecordEvaluation(ctx context.Context, grammarName string, duration time.Duration, err error)

	// RecordTokens records the token count of a lexed expression.
	RecordTokens(ctx context.Context, grammarName string, count int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations metric.Int64Counter
	latency     metric.Float64Histogram
	errors      metric.Int64Counter
	tokens      metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("boolexpr")

	evaluations, err := meter.Int64Counter("boolexpr.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("boolexpr.evaluation.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("boolexpr.evaluation.errors",
		metric.WithDescription("Number of failed evaluations"),
	)
	if err != nil {
		return nil, err
	}

	tokens, err := meter.Int64Histogram("boolexpr.expression.tokens",
		metric.WithDescription("Tokens per lexed expression"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations: evaluations,
		latency:     latency,
		errors:      errs,
		tokens:      tokens,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, grammarName string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("grammar", grammarName),
		attribute.Bool("success", err == nil),
	}
	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("grammar", grammarName),
			attribute.String("category", exprerrors.Categorize(err).String()),
		))
	}
}

// RecordTokens records a token count.
func (m *otelMetrics) RecordTokens(ctx context.Context, grammarName string, count int) {
	m.tokens.Record(ctx, int64(count), metric.WithAttributes(
		attribute.String("grammar", grammarName),
	))
}
