package error

import "fmt"

// FratError is a diagnostic attached to a location in the grammar source.
// LineText and Marker hold the offending line and a caret underline aligned
// under the offending token.
type FratError struct {
	SourceName string
	Line       int
	Message    string
	LineText   string
	Marker     string
}

func (e *FratError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("(%v): %v", e.SourceName, e.Message)
	}
	if e.LineText == "" {
		return fmt.Sprintf("(%v):%v: %v", e.SourceName, e.Line, e.Message)
	}
	return fmt.Sprintf("(%v):%v: %v\n%v\n%v", e.SourceName, e.Line, e.Message, e.LineText, e.Marker)
}
