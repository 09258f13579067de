package spec

import (
	"fmt"
	"log/slog"
	"strings"
)

// Lexer tokenizes a grammar source held in memory. Tokens are byte spans
// into the source, which keeps line recovery for diagnostics cheap.
type Lexer struct {
	sourceName string
	src        []byte
	pos        int
	logger     *slog.Logger
}

func NewLexer(sourceName string, src []byte) *Lexer {
	return &Lexer{
		sourceName: sourceName,
		src:        src,
	}
}

func (l *Lexer) SourceName() string {
	return l.sourceName
}

// SetLogger enables the per-token debug trace.
func (l *Lexer) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

func (l *Lexer) Text(tok Token) string {
	return string(l.src[tok.Pos : tok.Pos+tok.Size])
}

// Next returns the next token. Whitespace and //-comments are skipped. At
// the end of the source it keeps returning a zero-size token of KindEOS.
func (l *Lexer) Next() (Token, TokenKind) {
	tok, kind := l.next()
	if l.logger != nil {
		l.logger.Debug(fmt.Sprintf("nextToken(): %v, pos = %v, size = %v, text = %q", kind, tok.Pos, tok.Size, l.Text(tok)))
	}
	return tok, kind
}

func (l *Lexer) next() (Token, TokenKind) {
	l.skipSpaces()
	if l.pos >= len(l.src) {
		return Token{Pos: len(l.src)}, KindEOS
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '_' || isUpper(c):
		l.pos++
		for l.pos < len(l.src) && isTermChar(l.src[l.pos]) {
			l.pos++
		}
		return Token{Pos: start, Size: l.pos - start}, KindTerm
	case isLower(c):
		l.pos++
		for l.pos < len(l.src) && isNTermChar(l.src[l.pos]) {
			l.pos++
		}
		return Token{Pos: start, Size: l.pos - start}, KindNTerm
	}

	switch c {
	case '=', ':':
		l.pos++
		return Token{Pos: start, Size: 1}, KindDef
	case ';':
		l.pos++
		return Token{Pos: start, Size: 1}, KindSemiColon
	case '.':
		l.pos++
		return Token{Pos: start, Size: 1}, KindDot
	case '*':
		l.pos++
		return Token{Pos: start, Size: 1}, KindZero
	case '+':
		l.pos++
		return Token{Pos: start, Size: 1}, KindOne
	case '?':
		l.pos++
		return Token{Pos: start, Size: 1}, KindOpt
	case '(':
		l.pos++
		return Token{Pos: start, Size: 1}, KindPOpen
	case ')':
		l.pos++
		return Token{Pos: start, Size: 1}, KindPClose
	case '|':
		l.pos++
		return Token{Pos: start, Size: 1}, KindAlt
	case '\'', '"':
		if end, ok := l.scanQuoted(start, c); ok {
			l.pos = end
			return Token{Pos: start, Size: end - start}, KindString
		}
	case '[':
		if end, ok := l.scanQuoted(start, ']'); ok {
			l.pos = end
			return Token{Pos: start, Size: end - start}, KindCharSet
		}
	}

	l.pos = start + 1
	return Token{Pos: start, Size: 1}, KindInvalid
}

// scanQuoted scans a string or bracket-expression literal starting at the
// opening delimiter. The body must contain at least one character and may
// use backslash escapes; a backslash protects any following byte except a
// line break. Returns the position just past the closing delimiter.
func (l *Lexer) scanQuoted(start int, close byte) (int, bool) {
	i := start + 1
	for i < len(l.src) {
		c := l.src[i]
		switch c {
		case close:
			if i == start+1 {
				return 0, false
			}
			return i + 1, true
		case '\t', '\r', '\n':
			return 0, false
		case '\\':
			if i+1 >= len(l.src) {
				return 0, false
			}
			if e := l.src[i+1]; e == '\r' || e == '\n' {
				return 0, false
			}
			i += 2
		default:
			i++
		}
	}
	return 0, false
}

func (l *Lexer) skipSpaces() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		case '/':
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
				for l.pos < len(l.src) && l.src[l.pos] != '\n' {
					l.pos++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// LineNumber returns the 1-based line number of the token.
func (l *Lexer) LineNumber(tok Token) int {
	n := 1
	for i := 0; i < tok.Pos && i < len(l.src); i++ {
		if l.src[i] == '\n' {
			n++
		}
	}
	return n
}

// LineToken returns the span of the whole line containing tok, without the
// trailing line break.
func (l *Lexer) LineToken(tok Token) Token {
	start := tok.Pos
	if start > len(l.src) {
		start = len(l.src)
	}
	for start > 0 && l.src[start-1] != '\n' {
		start--
	}
	end := tok.Pos
	for end < len(l.src) && l.src[end] != '\n' {
		end++
	}
	return Token{Pos: start, Size: end - start}
}

func (l *Lexer) LineText(tok Token) string {
	return l.Text(l.LineToken(tok))
}

// LineMarker renders a caret underline for errTok, aligned under its column
// within lineTok. Tabs are preserved so the marker lines up in a terminal.
func (l *Lexer) LineMarker(lineTok, errTok Token) string {
	var b strings.Builder
	for i := lineTok.Pos; i < errTok.Pos && i < lineTok.Pos+lineTok.Size; i++ {
		if l.src[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	for i := 1; i < errTok.Size; i++ {
		b.WriteByte('~')
	}
	return b.String()
}

// ShiftEOS maps a zero-size end-of-source token onto the last visible byte
// so that a marker can point at something.
func (l *Lexer) ShiftEOS(tok Token) Token {
	if tok.Size > 0 || tok.Pos < len(l.src) {
		return tok
	}
	p := len(l.src)
	for p > 0 && (l.src[p-1] == '\n' || l.src[p-1] == '\r') {
		p--
	}
	if p == 0 {
		return Token{}
	}
	return Token{Pos: p - 1, Size: 1}
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isTermChar(c byte) bool {
	return c == '_' || isUpper(c) || isDigit(c)
}

func isNTermChar(c byte) bool {
	return c == '_' || isUpper(c) || isLower(c) || isDigit(c)
}
