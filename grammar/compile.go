package grammar

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fuzzyrat/fuzzyrat/opcode"
	"github.com/fuzzyrat/fuzzyrat/spec"
)

type compileConfig struct {
	spacePattern string
	logger       *slog.Logger
}

type CompileOption func(config *compileConfig)

// WithSpacePattern overrides the default space pattern. The empty string
// disables whitespace insertion entirely.
func WithSpacePattern(pattern string) CompileOption {
	return func(config *compileConfig) {
		config.spacePattern = pattern
	}
}

// WithoutSpace disables whitespace insertion.
func WithoutSpace() CompileOption {
	return func(config *compileConfig) {
		config.spacePattern = ""
	}
}

// WithLogger enables the pipeline's info and debug logs.
func WithLogger(logger *slog.Logger) CompileOption {
	return func(config *compileConfig) {
		config.logger = logger
	}
}

// Compile runs the back half of the pipeline on a built grammar:
// verification, whitespace insertion, desugaring, and code generation.
// The grammar is mutated in place by the transform stages.
func Compile(g *Grammar, opts ...CompileOption) (*opcode.CompiledUnit, error) {
	config := &compileConfig{
		spacePattern: DefaultSpacePattern,
	}
	for _, opt := range opts {
		opt(config)
	}
	logger := config.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := Verify(g); err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("start production: %v", g.StartSymbol()))

	if config.spacePattern != "" {
		pattern, err := spec.ParsePattern(config.spacePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid space pattern %q: %w", config.spacePattern, err)
		}
		InsertSpace(g, pattern)
	}

	logger.Debug("before desugar\n" + dump(g))
	Desugar(g)
	logger.Debug("after desugar\n" + dump(g))

	return codegen(g)
}

func dump(g *Grammar) string {
	var b strings.Builder
	for _, name := range g.names {
		fmt.Fprintf(&b, "%v = %v;\n", name, spec.NodeString(g.prods[name]))
	}
	return b.String()
}

// codegen turns every production body into a linked opcode chain
// terminated by RetOp. Production ids are dense and follow declaration
// order.
func codegen(g *Grammar) (*opcode.CompiledUnit, error) {
	c := &compiler{
		ids: make(map[string]int, len(g.names)),
	}
	for i, name := range g.names {
		c.ids[name] = i
	}

	codes := make([]opcode.OpCode, len(g.names))
	for i, name := range g.names {
		if err := c.compileNode(g.prods[name]); err != nil {
			return nil, fmt.Errorf("production %v: %w", name, err)
		}
		c.append(&opcode.RetOp{})
		codes[i] = c.extract()
	}

	return opcode.NewCompiledUnit(c.ids[g.startSymbol], codes), nil
}

type compiler struct {
	ids  map[string]int
	head opcode.OpCode
	tail opcode.OpCode
}

func (c *compiler) append(op opcode.OpCode) {
	if c.head == nil {
		c.head = op
		c.tail = op
	} else {
		c.tail.SetNext(op)
		c.tail = op
	}
}

func (c *compiler) extract() opcode.OpCode {
	head := c.head
	c.head = nil
	c.tail = nil
	return head
}

func (c *compiler) compileNode(n spec.Node) error {
	switch n := n.(type) {
	case *spec.EmptyNode:
		c.append(&opcode.EmptyOp{})
	case *spec.AnyNode:
		c.append(&opcode.AnyOp{})
	case *spec.StringNode:
		for _, b := range decodeString(n.Value) {
			c.append(&opcode.CharOp{Code: b})
		}
	case *spec.CharSetNode:
		m, err := buildAsciiMap(n.Value)
		if err != nil {
			return err
		}
		c.append(&opcode.CharSetOp{Map: m})
	case *spec.SequenceNode:
		if err := c.compileNode(n.Left); err != nil {
			return err
		}
		return c.compileNode(n.Right)
	case *spec.AlternativeNode:
		return c.compileAlternative(n)
	case *spec.NonTerminalNode:
		id, ok := c.ids[n.Name]
		if !ok {
			return fmt.Errorf("not found production: %v", n.Name)
		}
		c.append(&opcode.CallOp{ProdID: id})
	default:
		return fmt.Errorf("cannot compile %T", n)
	}
	return nil
}

// compileAlternative flattens nested alternations into a single AltOp so
// that a | b | c | d selects among four arms with one draw. Each arm is an
// independent chain whose tail links to a shared EmptyOp join node; the
// join continues with whatever follows the alternation.
func (c *compiler) compileAlternative(n *spec.AlternativeNode) error {
	prevHead, prevTail := c.head, c.tail
	c.head = nil
	c.tail = nil

	var arms []spec.Node
	hasEmpty := false
	flattenAlternative(n, &arms, &hasEmpty)

	join := &opcode.EmptyOp{}
	heads := make([]opcode.OpCode, 0, len(arms))
	for _, arm := range arms {
		if err := c.compileNode(arm); err != nil {
			return err
		}
		c.tail.SetNext(join)
		heads = append(heads, c.extract())
	}

	alt := &opcode.AltOp{Arms: heads}
	if prevHead != nil {
		prevTail.SetNext(alt)
		c.head = prevHead
	} else {
		c.head = alt
	}
	c.tail = join
	return nil
}

// flattenAlternative collects the arms of a nested alternation in
// left-to-right order, keeping at most one Empty arm.
func flattenAlternative(n spec.Node, arms *[]spec.Node, hasEmpty *bool) {
	switch n := n.(type) {
	case *spec.AlternativeNode:
		flattenAlternative(n.Left, arms, hasEmpty)
		flattenAlternative(n.Right, arms, hasEmpty)
	case *spec.EmptyNode:
		if !*hasEmpty {
			*hasEmpty = true
			*arms = append(*arms, n)
		}
	default:
		*arms = append(*arms, n)
	}
}

// decodeString decodes a string literal as written, surrounding quotes
// included, into the bytes it denotes.
func decodeString(raw string) []byte {
	content := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); {
		b, next := decodeChar(content, i)
		out = append(out, b)
		i = next
	}
	return out
}

// decodeChar decodes one possibly escaped character at i and returns the
// byte along with the position after it. Unknown escapes yield the literal
// character following the backslash.
func decodeChar(s string, i int) (byte, int) {
	c := s[i]
	i++
	if c != '\\' || i >= len(s) {
		return c, i
	}
	e := s[i]
	i++
	switch e {
	case 't':
		return '\t', i
	case 'r':
		return '\r', i
	case 'n':
		return '\n', i
	case 'x':
		if i < len(s) && isHexDigit(s[i]) {
			code := hexValue(s[i])
			i++
			if i < len(s) && isHexDigit(s[i]) {
				code = code*16 + hexValue(s[i])
				i++
			}
			return byte(code), i
		}
		return e, i
	default:
		return e, i
	}
}

// buildAsciiMap interprets a bracket expression as written, brackets
// included. A leading ^ complements the set; an interior a-b adds the whole
// byte range.
func buildAsciiMap(raw string) (*opcode.AsciiMap, error) {
	content := raw[1 : len(raw)-1]
	negate := false
	if len(content) > 0 && content[0] == '^' {
		negate = true
		content = content[1:]
	}

	m := &opcode.AsciiMap{}
	for i := 0; i < len(content); {
		c, next := decodeChar(content, i)
		i = next
		if i < len(content) && content[i] == '-' && i+1 < len(content) {
			d, next := decodeChar(content, i+1)
			i = next
			if err := m.AddRange(c, d); err != nil {
				return nil, err
			}
			continue
		}
		if err := m.Add(c); err != nil {
			return nil, err
		}
	}

	if negate {
		m = m.Complement()
	}
	return m, nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
