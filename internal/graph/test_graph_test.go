package graph

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latencyDoc = `{
	"nodes": [
		{"id": "n1", "type": "Issue", "label": "How to reduce latency?"},
		{"id": "n2", "type": "Position", "label": "Add caching"}
	],
	"edges": [
		{"source": "n2", "target": "n1", "type": "responds-to"}
	]
}`

func requireSchemaError(t *testing.T, err error, field string) *SchemaError {
	t.Helper()
	require.Error(t, err)
	var se *SchemaError
	require.True(t, errors.As(err, &se), "expected *SchemaError, got %T: %v", err, err)
	assert.Equal(t, field, se.Field)
	return se
}

func TestParseValidDocument(t *testing.T) {
	g, err := Parse([]byte(latencyDoc))
	require.NoError(t, err)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	nodes := g.Nodes()
	assert.Equal(t, Node{ID: "n1", Type: NodeIssue, Label: "How to reduce latency?"}, nodes[0])
	assert.Equal(t, Node{ID: "n2", Type: NodePosition, Label: "Add caching"}, nodes[1])
	assert.Equal(t, []Edge{{Source: "n2", Target: "n1", Type: EdgeRespondsTo}}, g.Edges())
}

func TestParseKeepsInsertionOrder(t *testing.T) {
	raw := `{"nodes":[
		{"id":"z","type":"issue","label":"Z"},
		{"id":"a","type":"position","label":"A"},
		{"id":"m","type":"argument","label":"M"}
	],"edges":[
		{"source":"m","target":"a","type":"opposes"},
		{"source":"a","target":"z","type":"responds-to"}
	]}`
	g, err := Parse([]byte(raw))
	require.NoError(t, err)

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"z", "a", "m"}, ids)
	assert.Equal(t, "m", g.Edges()[0].Source)
	assert.Equal(t, "a", g.Edges()[1].Source)
}

func TestParseNormalizesTypeSpelling(t *testing.T) {
	raw := `{"nodes":[
		{"id":"i","type":"ISSUE","label":"Which database?"},
		{"id":"p","type":" position ","label":"Postgres"},
		{"id":"d","type":"decision","label":"Go with Postgres"}
	],"edges":[
		{"source":"p","target":"i","type":"Responds_To"},
		{"source":"d","target":"p","type":"DECIDES"}
	]}`
	g, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, NodeIssue, g.Nodes()[0].Type)
	assert.Equal(t, NodePosition, g.Nodes()[1].Type)
	assert.Equal(t, NodeDecision, g.Nodes()[2].Type)
	assert.Equal(t, EdgeRespondsTo, g.Edges()[0].Type)
	assert.Equal(t, EdgeDecides, g.Edges()[1].Type)
}

func TestParseCarriesSpeakerAndSequence(t *testing.T) {
	raw := `{"nodes":[{"id":"n1","type":"Issue","label":"Which language?","speaker":"Tanaka","sequence":1}],"edges":[]}`
	g, err := Parse([]byte(raw))
	require.NoError(t, err)

	n, ok := g.Node("n1")
	require.True(t, ok)
	assert.Equal(t, "Tanaka", n.Speaker)
	assert.Equal(t, 1, n.Sequence)
}

func TestParseEmptyGraph(t *testing.T) {
	g, err := Parse([]byte(`{"nodes":[],"edges":[]}`))
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())

	g, err = Parse([]byte(`{"nodes":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestParseRejectsDanglingEdges(t *testing.T) {
	cases := []struct {
		name  string
		edge  string
		field string
	}{
		{"unknown source", `{"source":"ghost","target":"n1","type":"supports"}`, "edges[0].source"},
		{"unknown target", `{"source":"n1","target":"ghost","type":"supports"}`, "edges[0].target"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := `{"nodes":[{"id":"n1","type":"Issue","label":"Q"}],"edges":[` + tc.edge + `]}`
			g, err := Parse([]byte(raw))
			assert.Nil(t, g)
			se := requireSchemaError(t, err, tc.field)
			assert.Contains(t, se.Reason, "ghost")
		})
	}
}

func TestParseRejectsDuplicateIdentifiers(t *testing.T) {
	raw := `{"nodes":[
		{"id":"n1","type":"Issue","label":"Q"},
		{"id":"n1","type":"Position","label":"A"}
	],"edges":[]}`
	_, err := Parse([]byte(raw))
	se := requireSchemaError(t, err, "nodes[1].id")
	assert.Contains(t, se.Reason, "duplicate")
}

func TestParseRejectsMissingOrMalformedFields(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		field string
	}{
		{"missing nodes", `{"edges":[]}`, "nodes"},
		{"missing id", `{"nodes":[{"type":"Issue","label":"Q"}]}`, "nodes[0].id"},
		{"blank id", `{"nodes":[{"id":"  ","type":"Issue","label":"Q"}]}`, "nodes[0].id"},
		{"missing label", `{"nodes":[{"id":"n1","type":"Issue"}]}`, "nodes[0].label"},
		{"missing type", `{"nodes":[{"id":"n1","label":"Q"}]}`, "nodes[0].type"},
		{"unknown node type", `{"nodes":[{"id":"n1","type":"Claim","label":"Q"}]}`, "nodes[0].type"},
		{"negative sequence", `{"nodes":[{"id":"n1","type":"Issue","label":"Q","sequence":-2}]}`, "nodes[0].sequence"},
		{"unknown edge type", `{"nodes":[{"id":"n1","type":"Issue","label":"Q"}],"edges":[{"source":"n1","target":"n1","type":"likes"}]}`, "edges[0].type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			requireSchemaError(t, err, tc.field)
		})
	}
}

func TestParseRejectsWrongFieldShape(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		field string
	}{
		{"numeric id", `{"nodes":[{"id":"n1","type":"Issue","label":"Q"},{"id":7,"type":"Position","label":"A"}]}`, "nodes[1].id"},
		{"numeric edge target", `{"nodes":[{"id":"n1","type":"Issue","label":"Q"}],"edges":[{"source":"n1","target":2,"type":"supports"}]}`, "edges[0].target"},
		{"node is not an object", `{"nodes":[{"id":"n1","type":"Issue","label":"Q"},5]}`, "nodes[1]"},
		{"nodes is not an array", `{"nodes":"n1"}`, "nodes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			se := requireSchemaError(t, err, tc.field)
			assert.Contains(t, se.Reason, "got JSON")
		})
	}
}

func TestParseRejectsNonJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	requireSchemaError(t, err, "")

	_, err = Parse(nil)
	requireSchemaError(t, err, "")
}

func TestNewValidatesLikeParse(t *testing.T) {
	_, err := New(
		[]Node{{ID: "a", Type: NodeIssue, Label: "Q"}},
		[]Edge{{Source: "a", Target: "b", Type: EdgeSupports}},
	)
	requireSchemaError(t, err, "edges[0].target")

	g, err := New(nil, nil)
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
}

func TestAccessorsReturnCopies(t *testing.T) {
	g, err := Parse([]byte(latencyDoc))
	require.NoError(t, err)

	nodes := g.Nodes()
	nodes[0].Label = "mutated"
	edges := g.Edges()
	edges[0].Type = EdgeOpposes

	assert.Equal(t, "How to reduce latency?", g.Nodes()[0].Label)
	assert.Equal(t, EdgeRespondsTo, g.Edges()[0].Type)
}

func TestMarshalRoundTrip(t *testing.T) {
	g, err := Parse([]byte(latencyDoc))
	require.NoError(t, err)

	raw, err := json.Marshal(g)
	require.NoError(t, err)
	again, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), again.Nodes())
	assert.Equal(t, g.Edges(), again.Edges())

	raw, err = json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(raw))
}
