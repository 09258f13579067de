package grammar

import (
	"fmt"

	"github.com/fuzzyrat/fuzzyrat/spec"
)

// Grammar is the mutable pipeline state: a start symbol and the mapping
// from production name to body. Declaration order is preserved so that
// diagnostics, debug dumps, and production-id assignment stay
// deterministic.
type Grammar struct {
	startSymbol string
	prods       map[string]spec.Node
	names       []string
	synthCount  int
}

func newGrammar() *Grammar {
	return &Grammar{
		prods: map[string]spec.Node{},
	}
}

func (g *Grammar) StartSymbol() string {
	return g.startSymbol
}

func (g *Grammar) SetStartSymbol(name string) {
	g.startSymbol = name
}

// Names returns the production names in declaration order. Synthesized
// productions follow the user-declared ones.
func (g *Grammar) Names() []string {
	return g.names
}

func (g *Grammar) Body(name string) (spec.Node, bool) {
	body, ok := g.prods[name]
	return body, ok
}

func (g *Grammar) install(name string, body spec.Node) bool {
	if _, defined := g.prods[name]; defined {
		return false
	}
	g.prods[name] = body
	g.names = append(g.names, name)
	return true
}

func (g *Grammar) replace(name string, body spec.Node) {
	g.prods[name] = body
}

// freshName synthesizes a production name that cannot collide with user
// names, which never start with a digit.
func (g *Grammar) freshName(suffix string) string {
	name := fmt.Sprintf("%v_%v", g.synthCount, suffix)
	g.synthCount++
	return name
}

// Builder assembles a Grammar from a parse result. The first declared
// production becomes the start symbol unless StartSymbol overrides it.
type Builder struct {
	Productions []*spec.Production
	StartSymbol string
}

func (b *Builder) Build() (*Grammar, error) {
	g := newGrammar()
	g.startSymbol = b.StartSymbol
	for i, prod := range b.Productions {
		if i == 0 && g.startSymbol == "" {
			g.startSymbol = prod.Name
		}
		if !g.install(prod.Name, prod.Body) {
			return nil, &SemanticError{
				Kind:   SemErrDefinedProduction,
				Token:  prod.NameTok,
				Detail: prod.Name,
			}
		}
	}
	return g, nil
}
