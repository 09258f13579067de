package grammar

import (
	"fmt"

	"github.com/fuzzyrat/fuzzyrat/spec"
)

type SemanticErrorKind int

const (
	SemErrDefinedProduction SemanticErrorKind = iota
	SemErrUndefinedNonTerminal
	SemErrUndefinedStart
)

// SemanticError is reported for a grammar that is syntactically valid but
// inconsistent. Token designates the offending occurrence when the error
// has one; UndefinedStart may originate from an external override and then
// carries only the name in Detail.
type SemanticError struct {
	Kind   SemanticErrorKind
	Token  spec.Token
	Detail string
}

func (e *SemanticError) Error() string {
	switch e.Kind {
	case SemErrDefinedProduction:
		return fmt.Sprintf("already defined production: %v", e.Detail)
	case SemErrUndefinedNonTerminal:
		return fmt.Sprintf("undefined non-terminal: %v", e.Detail)
	case SemErrUndefinedStart:
		if e.Detail == "" {
			return "start production not found"
		}
		return fmt.Sprintf("undefined start production: %v", e.Detail)
	}
	return "semantic error"
}
