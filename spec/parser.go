package spec

import (
	"log/slog"
)

// Production is one parsed rule: its name token, the name text, and the
// body expression.
type Production struct {
	NameTok Token
	Name    string
	Body    Node
}

// Parser reads productions one at a time with single-token lookahead. The
// sub-grammar of a body is selected by the first character of the
// production name: lexical productions use the regex syntax, syntactic
// productions the plain production syntax.
type Parser struct {
	lex    *Lexer
	tok    Token
	kind   TokenKind
	logger *slog.Logger
}

func NewParser(lex *Lexer) *Parser {
	p := &Parser{
		lex: lex,
	}
	p.fetch()
	return p
}

// SetLogger enables the rule-entry debug trace.
func (p *Parser) SetLogger(logger *slog.Logger) {
	p.logger = logger
}

// Parse returns the next production, or (nil, nil) at the end of the
// source.
func (p *Parser) Parse() (*Production, error) {
	if p.kind == KindEOS {
		return nil, nil
	}
	return p.parseProduction()
}

// ParseAll collects every production in declaration order.
func ParseAll(lex *Lexer) ([]*Production, error) {
	p := NewParser(lex)
	var prods []*Production
	for {
		prod, err := p.Parse()
		if err != nil {
			return nil, err
		}
		if prod == nil {
			return prods, nil
		}
		prods = append(prods, prod)
	}
}

// ParsePattern parses a whole pattern string through the regex sub-grammar.
// The CLI uses this for the space-pattern option.
func ParsePattern(pattern string) (Node, error) {
	p := NewParser(NewLexer("<pattern>", []byte(pattern)))
	body, err := p.parseRegexAlt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(KindEOS); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) fetch() {
	p.tok, p.kind = p.lex.Next()
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.kind == KindInvalid {
		return Token{}, invalidToken(p.tok)
	}
	if p.kind != kind {
		return Token{}, mismatchedToken(p.tok, p.kind, kind)
	}
	tok := p.tok
	if kind != KindEOS {
		p.fetch()
	}
	return tok, nil
}

func (p *Parser) trace(rule string) {
	if p.logger != nil {
		p.logger.Debug("enter: " + rule)
	}
}

// production ≡ terminalProd | nonTerminalProd
func (p *Parser) parseProduction() (*Production, error) {
	p.trace("production")

	var nameTok Token
	var err error
	lexical := false
	switch p.kind {
	case KindTerm:
		lexical = true
		nameTok, err = p.expect(KindTerm)
	case KindNTerm:
		nameTok, err = p.expect(KindNTerm)
	case KindInvalid:
		return nil, invalidToken(p.tok)
	default:
		return nil, noViableAlternative(p.tok, p.kind, KindTerm, KindNTerm)
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindDef); err != nil {
		return nil, err
	}

	var body Node
	if lexical {
		body, err = p.parseRegexAlt()
	} else {
		body, err = p.parseAlternative()
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindSemiColon); err != nil {
		return nil, err
	}

	return &Production{
		NameTok: nameTok,
		Name:    p.lex.Text(nameTok),
		Body:    body,
	}, nil
}

// alternative ≡ sequence ('|' alternative)?
func (p *Parser) parseAlternative() (Node, error) {
	p.trace("alternative")

	left, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.kind == KindAlt {
		p.fetch()
		right, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		return NewAlternativeNode(left, right), nil
	}
	return left, nil
}

// sequence ≡ suffix (primary_FIRST sequence)?
func (p *Parser) parseSequence() (Node, error) {
	p.trace("sequence")

	left, err := p.parseSuffix()
	if err != nil {
		return nil, err
	}
	if startsPrimary(p.kind) {
		right, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		return NewSequenceNode(left, right), nil
	}
	return left, nil
}

// suffix ≡ primary ('*'|'+'|'?')*
func (p *Parser) parseSuffix() (Node, error) {
	p.trace("suffix")

	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseSuffixOps(node)
}

func (p *Parser) parseSuffixOps(node Node) (Node, error) {
	for {
		switch p.kind {
		case KindZero:
			node = NewZeroOrMoreNode(node, p.tok)
			p.fetch()
		case KindOne:
			node = NewOneOrMoreNode(node, p.tok)
			p.fetch()
		case KindOpt:
			node = NewOptionNode(node, p.tok)
			p.fetch()
		default:
			return node, nil
		}
	}
}

// primary ≡ '(' alternative ')' | TERM | NTERM | STRING
func (p *Parser) parsePrimary() (Node, error) {
	p.trace("primary")

	switch p.kind {
	case KindPOpen:
		p.fetch()
		node, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(KindPClose); err != nil {
			return nil, err
		}
		return node, nil
	case KindTerm, KindNTerm:
		tok := p.tok
		p.fetch()
		return NewNonTerminalNode(tok, p.lex.Text(tok)), nil
	case KindString:
		tok := p.tok
		p.fetch()
		return NewStringNode(tok, p.lex.Text(tok)), nil
	case KindInvalid:
		return nil, invalidToken(p.tok)
	}
	return nil, noViableAlternative(p.tok, p.kind, KindPOpen, KindTerm, KindNTerm, KindString)
}

// regexAlt ≡ regexSeq ('|' regexAlt)?
func (p *Parser) parseRegexAlt() (Node, error) {
	p.trace("regexAlt")

	left, err := p.parseRegexSeq()
	if err != nil {
		return nil, err
	}
	if p.kind == KindAlt {
		p.fetch()
		right, err := p.parseRegexAlt()
		if err != nil {
			return nil, err
		}
		return NewAlternativeNode(left, right), nil
	}
	return left, nil
}

// regexSeq ≡ regexSuffix (regexPrimary_FIRST regexSeq)?
func (p *Parser) parseRegexSeq() (Node, error) {
	p.trace("regexSeq")

	left, err := p.parseRegexSuffix()
	if err != nil {
		return nil, err
	}
	if startsRegexPrimary(p.kind) {
		right, err := p.parseRegexSeq()
		if err != nil {
			return nil, err
		}
		return NewSequenceNode(left, right), nil
	}
	return left, nil
}

// regexSuffix ≡ regexPrimary ('*'|'+'|'?')*
func (p *Parser) parseRegexSuffix() (Node, error) {
	p.trace("regexSuffix")

	node, err := p.parseRegexPrimary()
	if err != nil {
		return nil, err
	}
	return p.parseSuffixOps(node)
}

// regexPrimary ≡ '(' regexAlt ')' | TERM | '.' | CHARSET | STRING
func (p *Parser) parseRegexPrimary() (Node, error) {
	p.trace("regexPrimary")

	switch p.kind {
	case KindPOpen:
		p.fetch()
		node, err := p.parseRegexAlt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(KindPClose); err != nil {
			return nil, err
		}
		return node, nil
	case KindTerm:
		tok := p.tok
		p.fetch()
		return NewNonTerminalNode(tok, p.lex.Text(tok)), nil
	case KindDot:
		tok := p.tok
		p.fetch()
		return NewAnyNode(tok), nil
	case KindCharSet:
		tok := p.tok
		p.fetch()
		return NewCharSetNode(tok, p.lex.Text(tok)), nil
	case KindString:
		tok := p.tok
		p.fetch()
		return NewStringNode(tok, p.lex.Text(tok)), nil
	case KindInvalid:
		return nil, invalidToken(p.tok)
	}
	return nil, noViableAlternative(p.tok, p.kind, KindPOpen, KindTerm, KindDot, KindCharSet, KindString)
}

func startsPrimary(kind TokenKind) bool {
	switch kind {
	case KindPOpen, KindTerm, KindNTerm, KindString:
		return true
	}
	return false
}

func startsRegexPrimary(kind TokenKind) bool {
	switch kind {
	case KindPOpen, KindTerm, KindDot, KindCharSet, KindString:
		return true
	}
	return false
}
