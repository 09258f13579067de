package spec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func nt(name string) *NonTerminalNode {
	return &NonTerminalNode{Name: name}
}

func str(value string) *StringNode {
	return &StringNode{Value: value}
}

func charSet(value string) *CharSetNode {
	return &CharSetNode{Value: value}
}

func seq(left, right Node) *SequenceNode {
	return &SequenceNode{Left: left, Right: right}
}

func alt(left, right Node) *AlternativeNode {
	return &AlternativeNode{Left: left, Right: right}
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		prods   []*Production
	}{
		{
			caption: "a syntactic production",
			src:     `expr = term '+' term | term ;`,
			prods: []*Production{
				{
					Name: "expr",
					Body: alt(
						seq(nt("term"), seq(str(`'+'`), nt("term"))),
						nt("term"),
					),
				},
			},
		},
		{
			caption: "suffix operators bind tighter than juxtaposition",
			src:     `list = item item* tail? ;`,
			prods: []*Production{
				{
					Name: "list",
					Body: seq(
						nt("item"),
						seq(
							&ZeroOrMoreNode{Expr: nt("item")},
							&OptionNode{Expr: nt("tail")},
						),
					),
				},
			},
		},
		{
			caption: "groups reset precedence",
			src:     `a = ('x' | 'y')+ ;`,
			prods: []*Production{
				{
					Name: "a",
					Body: &OneOrMoreNode{Expr: alt(str(`'x'`), str(`'y'`))},
				},
			},
		},
		{
			caption: "a lexical production uses the regex sub-grammar",
			src:     `NUM = [0-9]+ ('.' [0-9]+)? ;`,
			prods: []*Production{
				{
					Name: "NUM",
					Body: seq(
						&OneOrMoreNode{Expr: charSet("[0-9]")},
						&OptionNode{Expr: seq(str(`'.'`), &OneOrMoreNode{Expr: charSet("[0-9]")})},
					),
				},
			},
		},
		{
			caption: "dot and terminal references are regex primaries",
			src:     `W = . _SUB ;`,
			prods: []*Production{
				{
					Name: "W",
					Body: seq(&AnyNode{}, nt("_SUB")),
				},
			},
		},
		{
			caption: "a syntactic production may reference terminals",
			src: `
				json = object ;
				object = STRING ;
				STRING = '"' [a-z]* '"' ;
			`,
			prods: []*Production{
				{
					Name: "json",
					Body: nt("object"),
				},
				{
					Name: "object",
					Body: nt("STRING"),
				},
				{
					Name: "STRING",
					Body: seq(str(`'"'`), seq(&ZeroOrMoreNode{Expr: charSet("[a-z]")}, str(`'"'`))),
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			prods, err := ParseAll(NewLexer("test", []byte(tt.src)))
			if err != nil {
				t.Fatal(err)
			}
			opts := []cmp.Option{
				cmpopts.IgnoreTypes(Token{}),
			}
			if diff := cmp.Diff(tt.prods, prods, opts...); diff != "" {
				t.Fatalf("unexpected productions:\n%v", diff)
			}
		})
	}
}

func TestParser_SyntaxError(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		kind     ParseErrorKind
		expected []TokenKind
	}{
		{
			caption:  "a production must end with a semicolon",
			src:      `a = 'a'`,
			kind:     ParseErrTokenMismatched,
			expected: []TokenKind{KindSemiColon},
		},
		{
			caption:  "a production needs a definition operator",
			src:      `a 'a';`,
			kind:     ParseErrTokenMismatched,
			expected: []TokenKind{KindDef},
		},
		{
			caption:  "a charset cannot appear in a syntactic body",
			src:      `a = [abc];`,
			kind:     ParseErrNoViableAlternative,
			expected: []TokenKind{KindPOpen, KindTerm, KindNTerm, KindString},
		},
		{
			caption:  "a non-terminal cannot appear in a lexical body",
			src:      `A = abc;`,
			kind:     ParseErrNoViableAlternative,
			expected: []TokenKind{KindPOpen, KindTerm, KindDot, KindCharSet, KindString},
		},
		{
			caption:  "a dot cannot appear in a syntactic body",
			src:      `a = .;`,
			kind:     ParseErrNoViableAlternative,
			expected: []TokenKind{KindPOpen, KindTerm, KindNTerm, KindString},
		},
		{
			caption:  "a group must be closed",
			src:      `a = ('x' ;`,
			kind:     ParseErrTokenMismatched,
			expected: []TokenKind{KindPClose},
		},
		{
			caption: "an invalid token is reported as such",
			src:     `a = @;`,
			kind:    ParseErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := ParseAll(NewLexer("test", []byte(tt.src)))
			if err == nil {
				t.Fatal("expected an error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected a ParseError; got: %T", err)
			}
			if perr.Kind != tt.kind {
				t.Fatalf("unexpected error kind; want: %v, got: %v", tt.kind, perr.Kind)
			}
			if diff := cmp.Diff(tt.expected, perr.Expected); diff != "" {
				t.Fatalf("unexpected expected-token set:\n%v", diff)
			}
		})
	}
}

func TestParsePattern(t *testing.T) {
	body, err := ParsePattern(`[ \t\n]*`)
	if err != nil {
		t.Fatal(err)
	}
	want := Node(&ZeroOrMoreNode{Expr: charSet(`[ \t\n]`)})
	if diff := cmp.Diff(want, body, cmpopts.IgnoreTypes(Token{})); diff != "" {
		t.Fatalf("unexpected pattern body:\n%v", diff)
	}

	if _, err := ParsePattern(`abc`); err == nil {
		t.Fatal("a non-terminal reference must not be admissible in a pattern")
	}
}

func TestIsLexical(t *testing.T) {
	for name, want := range map[string]bool{
		"A":      true,
		"_":      true,
		"_x":     true,
		"NUM":    true,
		"a":      false,
		"json":   false,
		"value1": false,
	} {
		if got := IsLexical(name); got != want {
			t.Fatalf("IsLexical(%q) = %v; want %v", name, got, want)
		}
	}
}
