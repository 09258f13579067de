// Package fuzzyrat generates random sentences belonging to the language of
// a user-supplied context-free grammar. A grammar source is wrapped in a
// Context, compiled into a Code, and executed any number of times; each
// execution walks the compiled opcode graph with a random source and
// yields one sentence.
package fuzzyrat

import (
	"errors"
	"log/slog"
	"os"

	"github.com/fuzzyrat/fuzzyrat/driver"
	ferr "github.com/fuzzyrat/fuzzyrat/error"
	"github.com/fuzzyrat/fuzzyrat/grammar"
	"github.com/fuzzyrat/fuzzyrat/opcode"
	"github.com/fuzzyrat/fuzzyrat/spec"
)

// RandSource is re-exported so callers of ExecWithSource need not import
// the driver package.
type RandSource = driver.RandSource

// NewRandSource returns the default entropy-seeded random source.
func NewRandSource() RandSource {
	return driver.NewDefaultRandSource()
}

// DefaultSpacePattern is the whitespace pattern installed between the
// symbols of syntactic productions unless overridden.
const DefaultSpacePattern = grammar.DefaultSpacePattern

// Context holds a grammar source and the compile-time options.
type Context struct {
	sourceName      string
	source          []byte
	spacePattern    string
	startProduction string
	logger          *slog.Logger
}

// NewContextFromFile reads the grammar source from a file.
func NewContextFromFile(path string) (*Context, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewContext(path, src)
}

// NewContext wraps an in-memory grammar source. The source must be
// non-empty.
func NewContext(sourceName string, src []byte) (*Context, error) {
	if len(src) == 0 {
		return nil, errors.New("empty grammar source")
	}
	if sourceName == "" {
		sourceName = "<unknown>"
	}
	return &Context{
		sourceName:   sourceName,
		source:       src,
		spacePattern: DefaultSpacePattern,
	}, nil
}

// SetSpacePattern overrides the default whitespace pattern. The empty
// string disables whitespace insertion; any other string is parsed with
// the regex sub-grammar at compile time.
func (c *Context) SetSpacePattern(pattern string) {
	c.spacePattern = pattern
}

// SetStartProduction overrides the default start symbol, which is the
// first declared production.
func (c *Context) SetStartProduction(name string) {
	c.startProduction = name
}

// SetLogger routes the pipeline's diagnostics and debug traces to logger.
// Without one the pipeline is silent.
func (c *Context) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// Code is a frozen compilation result. It is safe to run any number of
// evaluations against one Code, each with its own random source.
type Code struct {
	unit *opcode.CompiledUnit
}

// Result is one generated sentence.
type Result struct {
	Data []byte
}

// Compile parses, verifies, inserts whitespace, desugars, and compiles the
// grammar. Lexical, syntactic, and semantic failures come back as
// *error.FratError carrying a formatted source diagnostic.
func Compile(ctx *Context) (*Code, error) {
	lex := spec.NewLexer(ctx.sourceName, ctx.source)
	if ctx.logger != nil {
		lex.SetLogger(ctx.logger)
	}

	p := spec.NewParser(lex)
	if ctx.logger != nil {
		p.SetLogger(ctx.logger)
	}
	var prods []*spec.Production
	for {
		prod, err := p.Parse()
		if err != nil {
			return nil, diagnostic(lex, err)
		}
		if prod == nil {
			break
		}
		prods = append(prods, prod)
	}

	b := grammar.Builder{
		Productions: prods,
		StartSymbol: ctx.startProduction,
	}
	g, err := b.Build()
	if err != nil {
		return nil, diagnostic(lex, err)
	}

	opts := []grammar.CompileOption{
		grammar.WithSpacePattern(ctx.spacePattern),
	}
	if ctx.logger != nil {
		opts = append(opts, grammar.WithLogger(ctx.logger))
	}
	unit, err := grammar.Compile(g, opts...)
	if err != nil {
		return nil, diagnostic(lex, err)
	}

	return &Code{unit: unit}, nil
}

// Exec generates one sentence with an entropy-seeded random source.
func (c *Code) Exec() (*Result, error) {
	return c.ExecWithSource(NewRandSource())
}

// ExecWithSource generates one sentence drawing from src. It exists so
// tests can replay a deterministic sequence.
func (c *Code) ExecWithSource(src RandSource) (*Result, error) {
	if c == nil || src == nil {
		return nil, errors.New("code and random source must not be nil")
	}
	data, err := driver.Eval(c.unit, src)
	if err != nil {
		return nil, err
	}
	return &Result{Data: data}, nil
}

// diagnostic converts a pipeline error into a formatted source diagnostic
// when the error designates a token.
func diagnostic(lex *spec.Lexer, err error) error {
	var tok spec.Token
	switch err := err.(type) {
	case *spec.ParseError:
		tok = lex.ShiftEOS(err.Token)
	case *grammar.SemanticError:
		tok = err.Token
	default:
		return err
	}
	if tok.Size == 0 {
		return &ferr.FratError{
			SourceName: lex.SourceName(),
			Message:    err.Error(),
		}
	}
	lineTok := lex.LineToken(tok)
	return &ferr.FratError{
		SourceName: lex.SourceName(),
		Line:       lex.LineNumber(tok),
		Message:    err.Error(),
		LineText:   lex.Text(lineTok),
		Marker:     lex.LineMarker(lineTok, tok),
	}
}
