// Package diagram renders an argument graph as diagram markup.
//
// Rendering is pure: nodes are declared first and edges second, both in the
// graph's insertion order, so the same graph always yields the same bytes.
package diagram

import (
	"errors"
	"fmt"
	"strings"

	"argminer/internal/graph"
)

type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
)

var Formats = []Format{FormatMermaid, FormatDOT}

var ErrUnknownFormat = errors.New("diagram: unknown format")

// ParseFormat resolves a format name; empty selects Mermaid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatMermaid), "mmd":
		return FormatMermaid, nil
	case string(FormatDOT), "graphviz", "gv":
		return FormatDOT, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// Render dispatches to the renderer for format.
func Render(g *graph.Graph, format Format) (string, error) {
	switch format {
	case FormatMermaid, "":
		return Mermaid(g), nil
	case FormatDOT:
		return DOT(g), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// EdgeLabel is the text drawn on an edge of type t.
func EdgeLabel(t graph.EdgeType) string {
	switch t {
	case graph.EdgeRespondsTo:
		return "responds to"
	case "":
		return "relates to"
	default:
		return string(t)
	}
}

type nodeStyle struct {
	class  string
	fill   string
	stroke string
	// Mermaid shape delimiters around the quoted label
	open, close string
	dotShape    string
}

var nodeStyles = map[graph.NodeType]nodeStyle{
	graph.NodeIssue:    {class: "issue", fill: "#fde68a", stroke: "#b45309", open: "((", close: "))", dotShape: "ellipse"},
	graph.NodePosition: {class: "position", fill: "#bfdbfe", stroke: "#1d4ed8", open: "[", close: "]", dotShape: "box"},
	graph.NodeArgument: {class: "argument", fill: "#e5e7eb", stroke: "#374151", open: ">", close: "]", dotShape: "cds"},
	graph.NodeDecision: {class: "decision", fill: "#bbf7d0", stroke: "#15803d", open: "{{", close: "}}", dotShape: "hexagon"},
}

func styleOf(t graph.NodeType) nodeStyle {
	if st, ok := nodeStyles[t]; ok {
		return st
	}
	return nodeStyles[graph.NodePosition]
}

func displayLabel(n graph.Node) []string {
	if n.Speaker == "" {
		return []string{n.Label}
	}
	return []string{n.Speaker, n.Label}
}
