package grammar

import (
	"github.com/fuzzyrat/fuzzyrat/spec"
)

// SpaceName is the reserved production the space pattern is installed
// under. The name classifies as lexical, so the inserter leaves it alone.
const SpaceName = "_"

// DefaultSpacePattern matches any run of blanks and newlines.
const DefaultSpacePattern = `[ \t\n]*`

// InsertSpace installs pattern as the production `_` and rewrites every
// syntactic production so that `_` is generated at each boundary between
// symbols. Lexical productions define token interiors and are preserved
// byte for byte. If the start symbol is syntactic, a wrapper production
// `_ start _` becomes the new start so sentences are padded on both ends.
//
// A grammar without any syntactic production is left untouched.
func InsertSpace(g *Grammar, pattern spec.Node) {
	syntactic := false
	for _, name := range g.names {
		if !spec.IsLexical(name) {
			syntactic = true
			break
		}
	}
	if !syntactic {
		return
	}

	// A user-defined `_` wins over the supplied pattern.
	g.install(SpaceName, pattern)

	for _, name := range g.names {
		if spec.IsLexical(name) {
			continue
		}
		g.replace(name, insertSpaceNode(g.prods[name]))
	}

	if !spec.IsLexical(g.startSymbol) {
		wrapper := g.freshName("start")
		g.install(wrapper, &spec.SequenceNode{
			Left: spaceRef(),
			Right: &spec.SequenceNode{
				Left:  &spec.NonTerminalNode{Name: g.startSymbol},
				Right: spaceRef(),
			},
		})
		g.startSymbol = wrapper
	}
}

// insertSpaceNode rewrites one body. Juxtaposition gets a space between
// its two operands, and each iteration of a repetition gets a leading
// space; everything else only recurses.
func insertSpaceNode(n spec.Node) spec.Node {
	switch n := n.(type) {
	case *spec.SequenceNode:
		return &spec.SequenceNode{
			Tok:  n.Tok,
			Left: insertSpaceNode(n.Left),
			Right: &spec.SequenceNode{
				Left:  spaceRef(),
				Right: insertSpaceNode(n.Right),
			},
		}
	case *spec.ZeroOrMoreNode:
		return &spec.ZeroOrMoreNode{
			Tok: n.Tok,
			Expr: &spec.SequenceNode{
				Left:  spaceRef(),
				Right: insertSpaceNode(n.Expr),
			},
		}
	case *spec.OneOrMoreNode:
		return &spec.OneOrMoreNode{
			Tok: n.Tok,
			Expr: &spec.SequenceNode{
				Left:  spaceRef(),
				Right: insertSpaceNode(n.Expr),
			},
		}
	case *spec.OptionNode:
		return &spec.OptionNode{
			Tok:  n.Tok,
			Expr: insertSpaceNode(n.Expr),
		}
	case *spec.AlternativeNode:
		return &spec.AlternativeNode{
			Tok:   n.Tok,
			Left:  insertSpaceNode(n.Left),
			Right: insertSpaceNode(n.Right),
		}
	}
	return n
}

func spaceRef() spec.Node {
	return &spec.NonTerminalNode{Name: SpaceName}
}
