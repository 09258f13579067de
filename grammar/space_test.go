package grammar

import (
	"testing"

	"github.com/fuzzyrat/fuzzyrat/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func spacePattern(t *testing.T) spec.Node {
	t.Helper()
	pattern, err := spec.ParsePattern(DefaultSpacePattern)
	if err != nil {
		t.Fatal(err)
	}
	return pattern
}

func TestInsertSpace(t *testing.T) {
	g := build(t, `
		a = 'x' B c?;
		c = 'y'+;
		B = [0-9] [0-9];
	`)
	InsertSpace(g, spacePattern(t))

	if _, ok := g.Body(SpaceName); !ok {
		t.Fatalf("the space production %v must be installed", SpaceName)
	}

	// a = 'x' (_ (B (_ c?)))
	want := spec.Node(&spec.SequenceNode{
		Left: &spec.StringNode{Value: `'x'`},
		Right: &spec.SequenceNode{
			Left: &spec.NonTerminalNode{Name: SpaceName},
			Right: &spec.SequenceNode{
				Left: &spec.NonTerminalNode{Name: "B"},
				Right: &spec.SequenceNode{
					Left:  &spec.NonTerminalNode{Name: SpaceName},
					Right: &spec.OptionNode{Expr: &spec.NonTerminalNode{Name: "c"}},
				},
			},
		},
	})
	got, _ := g.Body("a")
	if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(spec.Token{})); diff != "" {
		t.Fatalf("unexpected transformed body:\n%v", diff)
	}

	// c = (_ 'y')+
	want = &spec.OneOrMoreNode{
		Expr: &spec.SequenceNode{
			Left:  &spec.NonTerminalNode{Name: SpaceName},
			Right: &spec.StringNode{Value: `'y'`},
		},
	}
	got, _ = g.Body("c")
	if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(spec.Token{})); diff != "" {
		t.Fatalf("unexpected transformed body:\n%v", diff)
	}
}

func TestInsertSpace_LexicalProductionsAreUntouched(t *testing.T) {
	g := build(t, `
		a = B;
		B = [0-9] [0-9]* '.'?;
	`)
	before := spec.NodeString(mustBody(t, g, "B"))
	InsertSpace(g, spacePattern(t))
	after := spec.NodeString(mustBody(t, g, "B"))
	if before != after {
		t.Fatalf("a lexical body changed:\nbefore: %v\nafter:  %v", before, after)
	}
}

func TestInsertSpace_StartWrapper(t *testing.T) {
	g := build(t, `a = 'x';`)
	InsertSpace(g, spacePattern(t))

	start := g.StartSymbol()
	if start == "a" {
		t.Fatal("a syntactic start symbol must be replaced by a wrapper")
	}
	want := spec.Node(&spec.SequenceNode{
		Left: &spec.NonTerminalNode{Name: SpaceName},
		Right: &spec.SequenceNode{
			Left:  &spec.NonTerminalNode{Name: "a"},
			Right: &spec.NonTerminalNode{Name: SpaceName},
		},
	})
	got := mustBody(t, g, start)
	if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(spec.Token{})); diff != "" {
		t.Fatalf("unexpected wrapper body:\n%v", diff)
	}

	if err := Verify(g); err != nil {
		t.Fatalf("the grammar must stay consistent after insertion: %v", err)
	}
}

func TestInsertSpace_LexicalStartGetsNoWrapper(t *testing.T) {
	g := build(t, `
		A = [0-9];
		a = A;
	`)
	InsertSpace(g, spacePattern(t))
	if g.StartSymbol() != "A" {
		t.Fatalf("a lexical start symbol must stay; got: %v", g.StartSymbol())
	}
}

func TestInsertSpace_AllLexicalGrammarIsUntouched(t *testing.T) {
	g := build(t, `A = [0-9]; B = A 'x';`)
	InsertSpace(g, spacePattern(t))
	if _, ok := g.Body(SpaceName); ok {
		t.Fatal("a grammar without syntactic productions must not get a space production")
	}
}

func mustBody(t *testing.T, g *Grammar, name string) spec.Node {
	t.Helper()
	body, ok := g.Body(name)
	if !ok {
		t.Fatalf("production %v is not defined", name)
	}
	return body
}
