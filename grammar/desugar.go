package grammar

import (
	"github.com/fuzzyrat/fuzzyrat/spec"
)

// Desugar rewrites ?, *, and + into alternation and tail recursion. Every
// repetition becomes a reference to a synthesized production
//
//	<n>_repeat = X <n>_repeat | <empty> ;
//
// so that afterwards only Empty, Any, String, CharSet, Sequence,
// Alternative, and NonTerminal nodes remain.
func Desugar(g *Grammar) {
	for _, name := range append([]string(nil), g.names...) {
		g.replace(name, desugarNode(g, g.prods[name]))
	}
}

func desugarNode(g *Grammar, n spec.Node) spec.Node {
	switch n := n.(type) {
	case *spec.OptionNode:
		return &spec.AlternativeNode{
			Tok:   n.Tok,
			Left:  desugarNode(g, n.Expr),
			Right: &spec.EmptyNode{Tok: n.Tok},
		}
	case *spec.ZeroOrMoreNode:
		repeat := installRepeat(g, desugarNode(g, n.Expr), n.Tok)
		return &spec.NonTerminalNode{Tok: n.Tok, Name: repeat}
	case *spec.OneOrMoreNode:
		// X+ is X followed by X*. The subtree is shared between both
		// occurrences, so the repeat production gets a deep copy.
		expr := desugarNode(g, n.Expr)
		repeat := installRepeat(g, expr.Clone(), n.Tok)
		return &spec.SequenceNode{
			Tok:   n.Tok,
			Left:  expr,
			Right: &spec.NonTerminalNode{Tok: n.Tok, Name: repeat},
		}
	case *spec.SequenceNode:
		return &spec.SequenceNode{
			Tok:   n.Tok,
			Left:  desugarNode(g, n.Left),
			Right: desugarNode(g, n.Right),
		}
	case *spec.AlternativeNode:
		return &spec.AlternativeNode{
			Tok:   n.Tok,
			Left:  desugarNode(g, n.Left),
			Right: desugarNode(g, n.Right),
		}
	}
	return n
}

// installRepeat synthesizes the tail-recursive production for one
// repetition and returns its name. The body is already desugared, so the
// caller's Desugar loop must not revisit it.
func installRepeat(g *Grammar, expr spec.Node, tok spec.Token) string {
	name := g.freshName("repeat")
	g.install(name, &spec.AlternativeNode{
		Tok: tok,
		Left: &spec.SequenceNode{
			Tok:   tok,
			Left:  expr,
			Right: &spec.NonTerminalNode{Tok: tok, Name: name},
		},
		Right: &spec.EmptyNode{Tok: tok},
	})
	return name
}
