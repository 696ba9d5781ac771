package grammar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
)

// File is the serialized form of a grammar.
//
//	name: strict
//	true_words: [True, yes]
//	false_words: [False, no]
//	tiers:
//	  - [{tag: not}]
//	  - [{tag: and, symbol: "&&"}]
//	  - [{tag: or, symbol: "||"}]
//
// A spec may also give an explicit pattern with expects, where each entry
// is a type name (boolean, numeric, any) or an operator symbol.
type File struct {
	Name       string       `yaml:"name" json:"name"`
	TrueWords  []string     `yaml:"true_words,omitempty" json:"true_words,omitempty"`
	FalseWords []string     `yaml:"false_words,omitempty" json:"false_words,omitempty"`
	Tiers      [][]FileSpec `yaml:"tiers" json:"tiers"`
}

// FileSpec is the serialized form of a Spec.
type FileSpec struct {
	Tag     string   `yaml:"tag" json:"tag"`
	Symbol  string   `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Expects []string `yaml:"expects,omitempty" json:"expects,omitempty"`
}

// Build converts the file into a validated Grammar.
func (f File) Build() (*Grammar, error) {
	tiers := make([]Tier, 0, len(f.Tiers))
	for i, fileTier := range f.Tiers {
		tier := make(Tier, 0, len(fileTier))
		for _, fs := range fileTier {
			spec, err := fs.spec()
			if err != nil {
				return nil, fmt.Errorf("grammar %q tier %d: %w", f.Name, i, err)
			}
			tier = append(tier, spec)
		}
		tiers = append(tiers, tier)
	}

	var opts []Option
	if len(f.TrueWords) > 0 || len(f.FalseWords) > 0 {
		trueWords, falseWords := f.TrueWords, f.FalseWords
		if len(trueWords) == 0 {
			trueWords = []string{"True"}
		}
		if len(falseWords) == 0 {
			falseWords = []string{"False"}
		}
		opts = append(opts, WithLiterals(trueWords, falseWords))
	}
	return New(f.Name, tiers, opts...)
}

func (fs FileSpec) spec() (Spec, error) {
	tag, err := ast.ParseTag(fs.Tag)
	if err != nil {
		return Spec{}, err
	}
	if len(fs.Expects) == 0 {
		symbol := fs.Symbol
		if symbol == "" {
			symbol = DefaultSymbol(tag)
		}
		return Standard(tag, symbol), nil
	}

	spec := Spec{Tag: tag}
	for _, e := range fs.Expects {
		if t, err := ast.ParseType(e); err == nil {
			spec.Expects = append(spec.Expects, Operand(t))
			continue
		}
		spec.Expects = append(spec.Expects, Op(e))
	}
	return spec, nil
}

// FileOf returns the serialized form of g.
func FileOf(g *Grammar) File {
	trueWords, falseWords := g.Literals()
	f := File{Name: g.Name(), TrueWords: trueWords, FalseWords: falseWords}
	for _, tier := range g.Tiers() {
		fileTier := make([]FileSpec, 0, len(tier))
		for _, spec := range tier {
			fs := FileSpec{Tag: spec.Tag.String()}
			for _, r := range spec.Expects {
				if r.IsOperator() {
					fs.Expects = append(fs.Expects, r.Symbol)
				} else {
					fs.Expects = append(fs.Expects, r.Type.String())
				}
			}
			fileTier = append(fileTier, fs)
		}
		f.Tiers = append(f.Tiers, fileTier)
	}
	return f
}

// FromYAML parses a YAML grammar.
func FromYAML(data []byte) (*Grammar, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return f.Build()
}

// FromJSON parses a JSON grammar.
func FromJSON(data []byte) (*Grammar, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return f.Build()
}

// LoadFile loads a grammar from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func LoadFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}
	return decode(path, data)
}

// LoadFS loads a grammar from a billy filesystem.
func LoadFS(fs billy.Filesystem, path string) (*Grammar, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammar file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) (*Grammar, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported grammar file extension: %s", ext)
	}
}
