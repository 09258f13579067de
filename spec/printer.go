package spec

import (
	"fmt"
	"io"
	"strings"
)

// WriteNode renders a body expression back to grammar-like text. The output
// is meant for debug dumps, not for re-parsing: synthesized Empty nodes are
// rendered as <empty>.
func WriteNode(w io.Writer, n Node) {
	writeNode(w, n, false)
}

// NodeString is WriteNode into a string.
func NodeString(n Node) string {
	var b strings.Builder
	WriteNode(&b, n)
	return b.String()
}

func writeNode(w io.Writer, n Node, grouped bool) {
	switch n := n.(type) {
	case *EmptyNode:
		io.WriteString(w, "<empty>")
	case *AnyNode:
		io.WriteString(w, ".")
	case *StringNode:
		io.WriteString(w, n.Value)
	case *CharSetNode:
		io.WriteString(w, n.Value)
	case *NonTerminalNode:
		io.WriteString(w, n.Name)
	case *ZeroOrMoreNode:
		writeNode(w, n.Expr, true)
		io.WriteString(w, "*")
	case *OneOrMoreNode:
		writeNode(w, n.Expr, true)
		io.WriteString(w, "+")
	case *OptionNode:
		writeNode(w, n.Expr, true)
		io.WriteString(w, "?")
	case *SequenceNode:
		if grouped {
			io.WriteString(w, "(")
		}
		writeNode(w, n.Left, needsGroup(n.Left))
		io.WriteString(w, " ")
		writeNode(w, n.Right, needsGroup(n.Right))
		if grouped {
			io.WriteString(w, ")")
		}
	case *AlternativeNode:
		if grouped {
			io.WriteString(w, "(")
		}
		writeNode(w, n.Left, false)
		io.WriteString(w, " | ")
		writeNode(w, n.Right, false)
		if grouped {
			io.WriteString(w, ")")
		}
	default:
		fmt.Fprintf(w, "<%T>", n)
	}
}

func needsGroup(n Node) bool {
	switch n.(type) {
	case *AlternativeNode:
		return true
	}
	return false
}
