// Package observability provides structured logging, metrics, and tracing
// for expression evaluation.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds evaluation context to a logger.
// Returns a new logger with eval_id and grammar fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "8c0e...", "default")
//	enriched.Debug("lexed") // includes eval_id, grammar
func EnrichLogger(logger *slog.Logger, evalID, grammarName string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("eval_id", evalID),
		slog.String("grammar", grammarName),
	)
}

// LogEvaluateStart logs the start of an evaluation.
func LogEvaluateStart(logger *slog.Logger, evalID, text string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting",
		slog.String("eval_id", evalID),
		slog.String("expression", text),
	)
}

// LogEvaluateComplete logs a successful evaluation.
func LogEvaluateComplete(logger *slog.Logger, evalID string, result bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.String("eval_id", evalID),
		slog.Bool("result", result),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateError logs a failed evaluation with its error category.
func LogEvaluateError(logger *slog.Logger, evalID string, err error, category string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("evaluation failed",
		slog.String("eval_id", evalID),
		slog.String("error", err.Error()),
		slog.String("category", category),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogGrammarAmbiguity logs two operator symbols that lex differently when
// written back to back.
func LogGrammarAmbiguity(logger *slog.Logger, grammarName, first, second, lexedAs string) {
	if logger == nil {
		return
	}
	logger.Debug("grammar symbols are ambiguous when adjacent",
		slog.String("grammar", grammarName),
		slog.String("first", first),
		slog.String("second", second),
		slog.String("lexed_as", lexedAs),
	)
}

// LogStoreError logs a symbol store failure (non-fatal).
func LogStoreError(logger *slog.Logger, scope, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("symbol store failed",
		slog.String("scope", scope),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
