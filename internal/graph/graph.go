// Package graph holds the validated argument graph extracted from a discussion.
//
// A Graph is a value object: it is only produced by New or Parse, both of
// which reject duplicated node identifiers, dangling edges and missing or
// malformed fields. Accessors return copies so callers cannot mutate it.
package graph

import (
	"encoding/json"
	"slices"
)

type NodeType string

const (
	NodeIssue    NodeType = "Issue"
	NodePosition NodeType = "Position"
	NodeArgument NodeType = "Argument"
	NodeDecision NodeType = "Decision"
)

// NodeTypes lists every node type in declaration order.
var NodeTypes = []NodeType{NodeIssue, NodePosition, NodeArgument, NodeDecision}

type EdgeType string

const (
	EdgeSupports   EdgeType = "supports"
	EdgeOpposes    EdgeType = "opposes"
	EdgeRespondsTo EdgeType = "responds-to"
	EdgeDecides    EdgeType = "decides"
)

// EdgeTypes lists every relation in declaration order.
var EdgeTypes = []EdgeType{EdgeSupports, EdgeOpposes, EdgeRespondsTo, EdgeDecides}

type Node struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
	// Speaker is empty when the discussion does not attribute the claim.
	Speaker string `json:"speaker,omitempty"`
	// Sequence is the 1-based order of appearance; 0 means unknown.
	Sequence int `json:"sequence,omitempty"`
}

type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

type Graph struct {
	nodes []Node
	edges []Edge
	index map[string]int
}

// New validates nodes and edges and returns the resulting Graph.
// The slices are copied.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	doc := document{
		Nodes: make([]wireNode, 0, len(nodes)),
		Edges: make([]wireEdge, 0, len(edges)),
	}
	for _, n := range nodes {
		doc.Nodes = append(doc.Nodes, wireNode{
			ID:       n.ID,
			Type:     string(n.Type),
			Label:    n.Label,
			Speaker:  n.Speaker,
			Sequence: n.Sequence,
		})
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, wireEdge{
			Source: e.Source,
			Target: e.Target,
			Type:   string(e.Type),
		})
	}
	return build(doc)
}

// Empty returns a graph with no nodes and no edges.
func Empty() *Graph {
	return &Graph{nodes: []Node{}, edges: []Edge{}, index: map[string]int{}}
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node {
	if g == nil {
		return nil
	}
	return slices.Clone(g.nodes)
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	if g == nil {
		return nil
	}
	return slices.Clone(g.edges)
}

func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return len(g.edges)
}

// Node looks up a node by identifier.
func (g *Graph) Node(id string) (Node, bool) {
	if g == nil {
		return Node{}, false
	}
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

func (g *Graph) IsEmpty() bool {
	return g.NodeCount() == 0 && g.EdgeCount() == 0
}

// MarshalJSON writes the {nodes, edges} wire shape accepted by Parse.
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}{Nodes: []Node{}, Edges: []Edge{}}
	if g != nil {
		out.Nodes = append(out.Nodes, g.nodes...)
		out.Edges = append(out.Edges, g.edges...)
	}
	return json.Marshal(out)
}
