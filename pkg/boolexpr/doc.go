/*
Package boolexpr evaluates boolean expressions written as text against a
table of named values.

# Overview

An expression such as

	A & (B | !C) & count >= 3

is scanned into tokens, parenthesized groups are parsed recursively, and the
flattened sequence is folded one precedence tier at a time into a tree whose
value is computed against the caller's symbol table. Identifiers are looked
up only when the tree is evaluated.

# Basic Usage

	ok, err := boolexpr.Eval("A & !B", map[string]any{"A": true, "B": false})

For repeated use, create an Engine once:

	engine, err := boolexpr.New(
	    boolexpr.WithLogger(slog.Default()),
	    boolexpr.WithMetrics(true),
	)
	if err != nil {
	    log.Fatal(err)
	}
	ok, err := engine.Evaluate("x > 3 & ready", symbols.MapTable{"x": 4, "ready": true})

# Grammars

Operator spellings, precedence tiers, and boolean literal words come from a
grammar. The built-in grammar, tightest first:

	!              not
	*  /           multiply, divide
	+  -           add, subtract
	<  <=  >  >=   comparisons
	==  !=         equality
	&              and
	^              xor
	|              or

Literals are True and False. Custom grammars can be built in code with
grammar.New, loaded from YAML or JSON with WithGrammarFile, or registered
by name and selected with WithGrammarName.

# Symbol Tables

Any symbols.Table works. symbols.MapTable adapts a map; symbols.Bind adapts
one scope of a persistent symbols.Store, backed by memory or SQLite.

# Errors

Every failure belongs to one category, reported by Categorize:
  - syntax: invalid characters, unbalanced parentheses, text that does not
    reduce to one expression
  - configuration: grammar defects and unknown grammars
  - evaluation: undefined symbols, type mismatches, division by zero, and
    non-boolean results

# Observability

Logging uses log/slog and is off unless WithLogger is given. Metrics and
tracing use OpenTelemetry and are off unless enabled with WithMetrics and
WithTracing. Each evaluation carries a unique eval_id.
*/
package boolexpr
