package boolexpr

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/grammar"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/observability"
)

// engineConfig holds the settings collected from options.
type engineConfig struct {
	grammar     *grammar.Grammar
	grammarName string
	grammarFile string

	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool

	truthyRoot bool
	timeout    time.Duration
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithGrammar sets the grammar used to scan and parse expressions.
// Default: grammar.Default().
func WithGrammar(g *grammar.Grammar) Option {
	return func(c *engineConfig) {
		c.grammar = g
		c.grammarName = ""
		c.grammarFile = ""
	}
}

// WithGrammarName selects a grammar from the process-wide registry.
// New fails with ErrUnknownGrammar if the name is not registered.
func WithGrammarName(name string) Option {
	return func(c *engineConfig) {
		c.grammar = nil
		c.grammarName = name
		c.grammarFile = ""
	}
}

// WithGrammarFile loads the grammar from a YAML or JSON file when the
// engine is created.
func WithGrammarFile(path string) Option {
	return func(c *engineConfig) {
		c.grammar = nil
		c.grammarName = ""
		c.grammarFile = path
	}
}

// WithLogger sets the logger for evaluation events.
// A nil logger (the default) disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithMetrics enables or disables OpenTelemetry metrics.
// Metrics use the global meter provider.
func WithMetrics(enabled bool) Option {
	return func(c *engineConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder installs a custom recorder.
func WithMetricsRecorder(r observability.MetricsRecorder) Option {
	return func(c *engineConfig) {
		if r == nil {
			return
		}
		c.metrics = r
	}
}

// WithTracing enables or disables OpenTelemetry tracing.
// Spans use the global tracer provider.
func WithTracing(enabled bool) Option {
	return func(c *engineConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager installs a custom span manager and enables tracing.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(c *engineConfig) {
		if sm == nil {
			return
		}
		c.tracingEnabled = true
		c.spans = sm
	}
}

// WithTruthyRoot controls what happens when an expression evaluates to a
// number. When false (the default) evaluation fails with
// ErrNonBooleanResult. When true the number is converted by truthiness:
// zero is false, anything else is true.
func WithTruthyRoot(enabled bool) Option {
	return func(c *engineConfig) {
		c.truthyRoot = enabled
	}
}

// WithTimeout bounds each evaluation. The deadline is checked between
// scanning, parsing, and evaluating. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *engineConfig) {
		if d >= 0 {
			c.timeout = d
		}
	}
}
