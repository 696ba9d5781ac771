package boolexpr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/grammar"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/observability"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/parser"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
)

// Engine evaluates expressions under one grammar.
// An Engine is immutable after New and safe for concurrent use.
type Engine struct {
	grammar *grammar.Grammar
	parser  *parser.Parser

	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool

	truthyRoot bool
	timeout    time.Duration
}

// New creates an engine. Without options it uses the default grammar,
// no logging, no metrics, no tracing, and requires boolean results.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g, err := resolveGrammar(&cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		grammar:        g,
		parser:         parser.New(g),
		logger:         cfg.logger,
		metrics:        cfg.metrics,
		spans:          cfg.spans,
		tracingEnabled: cfg.tracingEnabled,
		truthyRoot:     cfg.truthyRoot,
		timeout:        cfg.timeout,
	}

	for _, a := range g.Ambiguities() {
		observability.LogGrammarAmbiguity(e.logger, g.Name(), a.First, a.Second, a.LexedAs)
	}
	return e, nil
}

func resolveGrammar(cfg *engineConfig) (*grammar.Grammar, error) {
	switch {
	case cfg.grammar != nil:
		return cfg.grammar, nil
	case cfg.grammarName != "":
		return grammar.Lookup(cfg.grammarName)
	case cfg.grammarFile != "":
		g, err := grammar.LoadFile(cfg.grammarFile)
		if err != nil {
			return nil, fmt.Errorf("load grammar %s: %w", cfg.grammarFile, err)
		}
		return g, nil
	default:
		return grammar.Default(), nil
	}
}

// Grammar returns the grammar the engine parses with.
func (e *Engine) Grammar() *grammar.Grammar { return e.grammar }

// Parse scans and parses text without evaluating it. Identifiers in the
// returned tree resolve against table each time the tree is evaluated.
func (e *Engine) Parse(text string, table symbols.Table) (ast.Expr, error) {
	tokens, err := e.grammar.Lexer().Lex(text, table)
	if err != nil {
		return nil, err
	}
	return e.parser.Parse(tokens)
}

// Evaluate parses text and evaluates it against table.
func (e *Engine) Evaluate(text string, table symbols.Table) (bool, error) {
	return e.EvaluateContext(context.Background(), text, table)
}

// EvaluateScope evaluates text against one scope of a symbol store.
func (e *Engine) EvaluateScope(ctx context.Context, text string, store symbols.Store, scope string) (bool, error) {
	result, err := e.EvaluateContext(ctx, text, symbols.Bind(store, scope))

	var lookupErr *exprerrors.LookupError
	if errors.As(err, &lookupErr) &&
		!errors.Is(err, exprerrors.ErrUndefinedSymbol) &&
		!errors.Is(err, exprerrors.ErrUnsupportedValue) {
		observability.LogStoreError(e.logger, scope, "get", lookupErr.Err)
	}
	return result, err
}

// EvaluateContext parses text and evaluates it against table, honoring
// ctx cancellation between stages.
//
// Example:
//
//	ok, err := engine.EvaluateContext(ctx, "x > 3 & !done", symbols.MapTable{
//	    "x":    5,
//	    "done": false,
//	})
func (e *Engine) EvaluateContext(ctx context.Context, text string, table symbols.Table) (result bool, err error) {
	if ctx == nil {
		return false, ErrNilContext
	}

	evalID := uuid.NewString()
	elapsedMs := observability.TimedOperation()
	logger := observability.EnrichLogger(e.logger, evalID, e.grammar.Name())
	observability.LogEvaluateStart(logger, evalID, text)

	if e.tracingEnabled {
		var span trace.Span
		ctx, span = e.spans.StartEvaluateSpan(ctx, e.grammar.Name(), evalID)
		defer func() {
			e.spans.EndSpanWithError(span, err)
		}()
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	result, err = e.evaluate(ctx, text, table)

	durationMs := elapsedMs()
	duration := time.Duration(durationMs * float64(time.Millisecond))
	e.metrics.RecordEvaluation(ctx, e.grammar.Name(), duration, err)
	if err != nil {
		observability.LogEvaluateError(logger, evalID, err, exprerrors.Categorize(err).String(), durationMs)
	} else {
		observability.LogEvaluateComplete(logger, evalID, result, durationMs)
	}
	return result, err
}

func (e *Engine) evaluate(ctx context.Context, text string, table symbols.Table) (bool, error) {
	tokens, err := e.grammar.Lexer().Lex(text, table)
	if err != nil {
		return false, err
	}
	e.metrics.RecordTokens(ctx, e.grammar.Name(), len(tokens))
	e.spans.AddSpanEvent(ctx, observability.EventLexed, attribute.Int("tokens", len(tokens)))
	if err := ctx.Err(); err != nil {
		return false, err
	}

	expr, err := e.parser.Parse(tokens)
	if err != nil {
		return false, err
	}
	e.spans.AddSpanEvent(ctx, observability.EventParsed, attribute.String("tree", expr.String()))
	if err := ctx.Err(); err != nil {
		return false, err
	}

	v, err := expr.Eval()
	if err != nil {
		return false, err
	}
	result, err := e.root(v)
	if err != nil {
		return false, err
	}
	e.spans.AddSpanEvent(ctx, observability.EventEvaluated, attribute.Bool("result", result))
	return result, nil
}

// root converts the value of the whole expression to the final answer.
func (e *Engine) root(v symbols.Value) (bool, error) {
	switch {
	case v.Kind() == symbols.Boolean:
		return v.Bool(), nil
	case e.truthyRoot && v.IsValid():
		return v.Truthy(), nil
	default:
		return false, fmt.Errorf("%w: got %s %s", exprerrors.ErrNonBooleanResult, v.Kind(), v)
	}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
	defaultEngineErr  error
)

// Eval evaluates text against vars using the default grammar.
//
// Example:
//
//	ok, err := boolexpr.Eval("A & (B | !C)", map[string]any{
//	    "A": true, "B": false, "C": false,
//	})
func Eval(text string, vars map[string]any) (bool, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = New()
	})
	if defaultEngineErr != nil {
		return false, defaultEngineErr
	}
	return defaultEngine.Evaluate(text, symbols.MapTable(vars))
}
