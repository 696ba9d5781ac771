package parser

import (
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/grammar"
)

// trieNode indexes the patterns of one tier. Operator requirements are
// keyed by symbol, operand requirements by type.
type trieNode struct {
	ops   map[string]*trieNode
	types map[ast.Type]*trieNode
	// spec is set on nodes that complete a pattern.
	spec *grammar.Spec
}

func newTrieNode() *trieNode {
	return &trieNode{
		ops:   make(map[string]*trieNode),
		types: make(map[ast.Type]*trieNode),
	}
}

func buildTrie(tier grammar.Tier) *trieNode {
	root := newTrieNode()
	for i := range tier {
		spec := &tier[i]
		node := root
		for _, r := range spec.Expects {
			var next *trieNode
			if r.IsOperator() {
				if next = node.ops[r.Symbol]; next == nil {
					next = newTrieNode()
					node.ops[r.Symbol] = next
				}
			} else {
				if next = node.types[r.Type]; next == nil {
					next = newTrieNode()
					node.types[r.Type] = next
				}
			}
			node = next
		}
		if node.spec == nil {
			node.spec = spec
		}
	}
	return root
}

// find scans start positions left to right and returns the first match.
func (n *trieNode) find(items []Item) (start int, spec *grammar.Spec, length int, ok bool) {
	for start = range items {
		if spec, length, ok = n.walk(items, start, 0); ok {
			return start, spec, length, true
		}
	}
	return 0, nil, 0, false
}

// walk follows items from pos until a node completes a pattern. Running
// out of items or reaching a missing key is a miss, not an error.
func (n *trieNode) walk(items []Item, pos, depth int) (*grammar.Spec, int, bool) {
	if n.spec != nil {
		return n.spec, depth, true
	}
	if pos >= len(items) {
		return nil, 0, false
	}

	it := items[pos]
	if it.IsOperator() {
		next, ok := n.ops[it.Token.Text]
		if !ok {
			return nil, 0, false
		}
		return next.walk(items, pos+1, depth+1)
	}

	operand, ok := it.Operand()
	if !ok {
		return nil, 0, false
	}
	for _, key := range typeKeys(operand.Returns()) {
		next, ok := n.types[key]
		if !ok {
			continue
		}
		if spec, length, ok := next.walk(items, pos+1, depth+1); ok {
			return spec, length, true
		}
	}
	return nil, 0, false
}
