package diagram

import (
	"strings"

	"argminer/internal/graph"
)

// DOT renders g as a Graphviz digraph. An empty or nil graph yields an empty
// digraph body.
func DOT(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph argument {\n")
	if g.IsEmpty() {
		b.WriteString("}\n")
		return b.String()
	}
	b.WriteString("  rankdir=BT;\n")
	for _, n := range g.Nodes() {
		st := styleOf(n.Type)
		b.WriteString("  ")
		b.WriteString(dotQuote(n.ID))
		b.WriteString(" [label=")
		b.WriteString(dotQuote(strings.Join(displayLabel(n), "\n")))
		b.WriteString(", shape=")
		b.WriteString(st.dotShape)
		b.WriteString(", style=filled, fillcolor=")
		b.WriteString(dotQuote(st.fill))
		b.WriteString(", color=")
		b.WriteString(dotQuote(st.stroke))
		b.WriteString("];\n")
	}
	for _, e := range g.Edges() {
		b.WriteString("  ")
		b.WriteString(dotQuote(e.Source))
		b.WriteString(" -> ")
		b.WriteString(dotQuote(e.Target))
		b.WriteString(" [label=")
		b.WriteString(dotQuote(EdgeLabel(e.Type)))
		if e.Type == graph.EdgeOpposes {
			b.WriteString(", style=dashed")
		}
		b.WriteString("];\n")
	}
	b.WriteString("}\n")
	return b.String()
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
