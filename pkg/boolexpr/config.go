package boolexpr

import (
	"fmt"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/config"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
)

// Configuration keys understood by OptionsFromConfig.
const (
	ConfigGrammar     = "grammar"
	ConfigGrammarFile = "grammar_file"
	ConfigTruthyRoot  = "truthy_root"
	ConfigMetrics     = "metrics"
	ConfigTracing     = "tracing"
	ConfigTimeout     = "timeout"
	ConfigSymbols     = "symbols"
)

// OptionsFromConfig translates settings into engine options.
// Missing keys leave the corresponding default untouched.
//
//	grammar: strict          # registered grammar name
//	grammar_file: ops.yaml   # or a grammar file, not both
//	truthy_root: false
//	metrics: true
//	tracing: true
//	timeout: 50ms
func OptionsFromConfig(cfg config.Config) ([]Option, error) {
	var opts []Option

	name := cfg.String(ConfigGrammar, "")
	file := cfg.String(ConfigGrammarFile, "")
	switch {
	case cfg.Has(ConfigGrammar) && name == "":
		return nil, fmt.Errorf("config %s: must be a non-empty string", ConfigGrammar)
	case cfg.Has(ConfigGrammarFile) && file == "":
		return nil, fmt.Errorf("config %s: must be a non-empty string", ConfigGrammarFile)
	case name != "" && file != "":
		return nil, fmt.Errorf("config: %s and %s are mutually exclusive", ConfigGrammar, ConfigGrammarFile)
	case name != "":
		opts = append(opts, WithGrammarName(name))
	case file != "":
		opts = append(opts, WithGrammarFile(file))
	}

	if cfg.Has(ConfigTruthyRoot) {
		opts = append(opts, WithTruthyRoot(cfg.Bool(ConfigTruthyRoot, false)))
	}
	if cfg.Has(ConfigMetrics) {
		opts = append(opts, WithMetrics(cfg.Bool(ConfigMetrics, false)))
	}
	if cfg.Has(ConfigTracing) {
		opts = append(opts, WithTracing(cfg.Bool(ConfigTracing, false)))
	}
	if cfg.Has(ConfigTimeout) {
		d := cfg.Duration(ConfigTimeout, -1)
		if d < 0 {
			return nil, fmt.Errorf("config %s: invalid duration %v", ConfigTimeout, cfg.Any(ConfigTimeout, nil))
		}
		opts = append(opts, WithTimeout(d))
	}
	return opts, nil
}

// NewFromConfig creates an engine from settings, applying extra options
// after the configured ones.
func NewFromConfig(cfg config.Config, extra ...Option) (*Engine, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(append(opts, extra...)...)
}

// SymbolsFromConfig returns the symbols mapping of cfg as a table.
// Values are converted when looked up, so unsupported values surface as
// evaluation errors.
func SymbolsFromConfig(cfg config.Config) symbols.MapTable {
	return symbols.MapTable(cfg.Sub(ConfigSymbols).Raw())
}
