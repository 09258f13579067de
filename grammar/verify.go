package grammar

import (
	"github.com/fuzzyrat/fuzzyrat/spec"
)

// Verify checks that the start symbol names a production and that every
// non-terminal reference resolves. It runs before desugaring, so all node
// kinds may still appear.
func Verify(g *Grammar) error {
	if g.startSymbol == "" {
		return &SemanticError{Kind: SemErrUndefinedStart}
	}
	if _, ok := g.prods[g.startSymbol]; !ok {
		return &SemanticError{
			Kind:   SemErrUndefinedStart,
			Detail: g.startSymbol,
		}
	}

	for _, name := range g.names {
		if err := verifyNode(g, g.prods[name]); err != nil {
			return err
		}
	}
	return nil
}

func verifyNode(g *Grammar, n spec.Node) error {
	switch n := n.(type) {
	case *spec.NonTerminalNode:
		if _, ok := g.prods[n.Name]; !ok {
			return &SemanticError{
				Kind:   SemErrUndefinedNonTerminal,
				Token:  n.Tok,
				Detail: n.Name,
			}
		}
	case *spec.ZeroOrMoreNode:
		return verifyNode(g, n.Expr)
	case *spec.OneOrMoreNode:
		return verifyNode(g, n.Expr)
	case *spec.OptionNode:
		return verifyNode(g, n.Expr)
	case *spec.SequenceNode:
		if err := verifyNode(g, n.Left); err != nil {
			return err
		}
		return verifyNode(g, n.Right)
	case *spec.AlternativeNode:
		if err := verifyNode(g, n.Left); err != nil {
			return err
		}
		return verifyNode(g, n.Right)
	}
	return nil
}
