package diagram

import (
	"strings"

	"argminer/internal/graph"
)

// Mermaid renders g as a Mermaid flowchart. An empty or nil graph yields the
// header line only.
func Mermaid(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	if g.IsEmpty() {
		return b.String()
	}

	ids := newIdentAllocator()
	seen := make(map[graph.NodeType]bool)
	for _, n := range g.Nodes() {
		st := styleOf(n.Type)
		b.WriteString("    ")
		b.WriteString(ids.ident(n.ID))
		b.WriteString(st.open)
		b.WriteByte('"')
		b.WriteString(mermaidText(displayLabel(n)))
		b.WriteByte('"')
		b.WriteString(st.close)
		b.WriteString(":::")
		b.WriteString(st.class)
		b.WriteByte('\n')
		seen[n.Type] = true
	}
	for _, e := range g.Edges() {
		b.WriteString("    ")
		b.WriteString(ids.ident(e.Source))
		b.WriteByte(' ')
		b.WriteString(mermaidArrow(e.Type))
		b.WriteByte('|')
		b.WriteString(EdgeLabel(e.Type))
		b.WriteString("| ")
		b.WriteString(ids.ident(e.Target))
		b.WriteByte('\n')
	}
	for _, t := range graph.NodeTypes {
		if !seen[t] {
			continue
		}
		st := styleOf(t)
		b.WriteString("    classDef ")
		b.WriteString(st.class)
		b.WriteString(" fill:")
		b.WriteString(st.fill)
		b.WriteString(",stroke:")
		b.WriteString(st.stroke)
		b.WriteByte('\n')
	}
	return b.String()
}

func mermaidArrow(t graph.EdgeType) string {
	switch t {
	case graph.EdgeOpposes:
		return "-.->"
	case graph.EdgeDecides:
		return "==>"
	default:
		return "-->"
	}
}

var mermaidEscaper = strings.NewReplacer(
	`"`, "#quot;",
	"\r\n", "<br/>",
	"\n", "<br/>",
	"\r", "<br/>",
)

func mermaidText(lines []string) string {
	for i, l := range lines {
		lines[i] = mermaidEscaper.Replace(l)
	}
	return strings.Join(lines, "<br/>")
}
