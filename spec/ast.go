package spec

// Node is a body expression of a production. Concrete nodes are matched by
// type switch; every node carries the token span it originates from.
type Node interface {
	Span() Token
	Clone() Node
}

var (
	_ Node = &EmptyNode{}
	_ Node = &AnyNode{}
	_ Node = &StringNode{}
	_ Node = &CharSetNode{}
	_ Node = &ZeroOrMoreNode{}
	_ Node = &OneOrMoreNode{}
	_ Node = &OptionNode{}
	_ Node = &SequenceNode{}
	_ Node = &AlternativeNode{}
	_ Node = &NonTerminalNode{}
)

// mergeSpan widens a to also cover b.
func mergeSpan(a, b Token) Token {
	if a.Pos <= b.Pos {
		a.Size = b.Pos + b.Size - a.Pos
	}
	return a
}

// EmptyNode generates nothing. It never appears in parsed bodies; the
// desugarer introduces it when rewriting ?, *, and +.
type EmptyNode struct {
	Tok Token
}

func NewEmptyNode(tok Token) *EmptyNode {
	return &EmptyNode{Tok: tok}
}

func (n *EmptyNode) Span() Token { return n.Tok }
func (n *EmptyNode) Clone() Node { return &EmptyNode{Tok: n.Tok} }

// AnyNode is the regex-syntax dot.
type AnyNode struct {
	Tok Token
}

func NewAnyNode(tok Token) *AnyNode {
	return &AnyNode{Tok: tok}
}

func (n *AnyNode) Span() Token { return n.Tok }
func (n *AnyNode) Clone() Node { return &AnyNode{Tok: n.Tok} }

// StringNode holds a string literal as written, surrounding quotes included.
type StringNode struct {
	Tok   Token
	Value string
}

func NewStringNode(tok Token, value string) *StringNode {
	return &StringNode{Tok: tok, Value: value}
}

func (n *StringNode) Span() Token { return n.Tok }
func (n *StringNode) Clone() Node { return &StringNode{Tok: n.Tok, Value: n.Value} }

// CharSetNode holds a bracket expression as written, brackets included.
type CharSetNode struct {
	Tok   Token
	Value string
}

func NewCharSetNode(tok Token, value string) *CharSetNode {
	return &CharSetNode{Tok: tok, Value: value}
}

func (n *CharSetNode) Span() Token { return n.Tok }
func (n *CharSetNode) Clone() Node { return &CharSetNode{Tok: n.Tok, Value: n.Value} }

type ZeroOrMoreNode struct {
	Tok  Token
	Expr Node
}

func NewZeroOrMoreNode(expr Node, opTok Token) *ZeroOrMoreNode {
	return &ZeroOrMoreNode{Tok: mergeSpan(expr.Span(), opTok), Expr: expr}
}

func (n *ZeroOrMoreNode) Span() Token { return n.Tok }
func (n *ZeroOrMoreNode) Clone() Node { return &ZeroOrMoreNode{Tok: n.Tok, Expr: n.Expr.Clone()} }

type OneOrMoreNode struct {
	Tok  Token
	Expr Node
}

func NewOneOrMoreNode(expr Node, opTok Token) *OneOrMoreNode {
	return &OneOrMoreNode{Tok: mergeSpan(expr.Span(), opTok), Expr: expr}
}

func (n *OneOrMoreNode) Span() Token { return n.Tok }
func (n *OneOrMoreNode) Clone() Node { return &OneOrMoreNode{Tok: n.Tok, Expr: n.Expr.Clone()} }

type OptionNode struct {
	Tok  Token
	Expr Node
}

func NewOptionNode(expr Node, opTok Token) *OptionNode {
	return &OptionNode{Tok: mergeSpan(expr.Span(), opTok), Expr: expr}
}

func (n *OptionNode) Span() Token { return n.Tok }
func (n *OptionNode) Clone() Node { return &OptionNode{Tok: n.Tok, Expr: n.Expr.Clone()} }

type SequenceNode struct {
	Tok   Token
	Left  Node
	Right Node
}

func NewSequenceNode(left, right Node) *SequenceNode {
	return &SequenceNode{Tok: mergeSpan(left.Span(), right.Span()), Left: left, Right: right}
}

func (n *SequenceNode) Span() Token { return n.Tok }
func (n *SequenceNode) Clone() Node {
	return &SequenceNode{Tok: n.Tok, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

type AlternativeNode struct {
	Tok   Token
	Left  Node
	Right Node
}

func NewAlternativeNode(left, right Node) *AlternativeNode {
	return &AlternativeNode{Tok: mergeSpan(left.Span(), right.Span()), Left: left, Right: right}
}

func (n *AlternativeNode) Span() Token { return n.Tok }
func (n *AlternativeNode) Clone() Node {
	return &AlternativeNode{Tok: n.Tok, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

// NonTerminalNode references another production by name. References to
// lexical and syntactic productions use the same node.
type NonTerminalNode struct {
	Tok  Token
	Name string
}

func NewNonTerminalNode(tok Token, name string) *NonTerminalNode {
	return &NonTerminalNode{Tok: tok, Name: name}
}

func (n *NonTerminalNode) Span() Token { return n.Tok }
func (n *NonTerminalNode) Clone() Node { return &NonTerminalNode{Tok: n.Tok, Name: n.Name} }

// IsLexical reports whether a production name selects the regex sub-grammar.
// Lexical names start with an underscore or an upper-case letter; syntactic
// names start with a lower-case letter.
func IsLexical(name string) bool {
	return len(name) > 0 && (name[0] == '_' || isUpper(name[0]))
}
