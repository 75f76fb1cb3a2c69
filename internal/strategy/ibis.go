package strategy

import (
	"context"
	"errors"

	"argminer/internal/graph"
	"argminer/internal/llm"
)

const promptIBIS = `You structure discussions using the IBIS (Issue-Based Information System) model.
Read the conversation log in the user message and extract its argumentative structure.

Node types:
- Issue: a question or open problem under discussion.
- Position: a proposal or stance that answers an Issue.
- Argument: a reason given for or against a Position.
- Decision: a conclusion the participants actually reached.

Edge types (source -> target):
- Position -> responds-to -> Issue
- Argument -> supports -> Position   (reason in favour)
- Argument -> opposes -> Position    (concern or objection)
- Decision -> decides -> Position    (the adopted proposal)

Rules:
1. Identify the main Issues first, then the Positions answering them, then the Arguments.
2. Only emit a Decision when the log shows the participants agreed on one.
3. "label" is a short summary of the claim, written in the language of the conversation.
4. "speaker" is the name of the participant who made the claim, or "" if unknown.
5. "sequence" is the 1-based order in which the claim first appears in the log.
6. Node ids are short and unique ("n1", "n2", ...). Every edge must reference declared ids.
7. Do not invent claims that are not in the log.

Return JSON only, shaped like:
{
  "nodes": [
    {"id": "n1", "type": "Issue", "label": "Which language should we use?", "speaker": "Tanaka", "sequence": 1},
    {"id": "n2", "type": "Position", "label": "Use Python", "speaker": "Sato", "sequence": 2}
  ],
  "edges": [
    {"source": "n2", "target": "n1", "type": "responds-to"}
  ]
}
`

// ibisSchema mirrors graph.Parse's accepted document.
var ibisSchema = &llm.Schema{
	Title:       "ibis_graph",
	Type:        llm.TypeObject,
	Description: "IBIS argument graph",
	Order:       []string{"nodes", "edges"},
	Properties: map[string]*llm.Schema{
		"nodes": {
			Type: llm.TypeArray,
			Items: &llm.Schema{
				Type:  llm.TypeObject,
				Order: []string{"id", "type", "label", "speaker", "sequence"},
				Properties: map[string]*llm.Schema{
					"id":       {Type: llm.TypeString},
					"type":     {Type: llm.TypeString, Enum: nodeTypeNames()},
					"label":    {Type: llm.TypeString},
					"speaker":  {Type: llm.TypeString},
					"sequence": {Type: llm.TypeInteger},
				},
			},
		},
		"edges": {
			Type: llm.TypeArray,
			Items: &llm.Schema{
				Type:  llm.TypeObject,
				Order: []string{"source", "target", "type"},
				Properties: map[string]*llm.Schema{
					"source": {Type: llm.TypeString},
					"target": {Type: llm.TypeString},
					"type":   {Type: llm.TypeString, Enum: edgeTypeNames()},
				},
			},
		},
	},
}

// IBISStrategy is a single prompt-and-parse round trip: no post-processing,
// merging or scoring of the model's reply.
type IBISStrategy struct {
	llm llm.LLMClient
}

func NewIBIS(client llm.LLMClient) *IBISStrategy {
	return &IBISStrategy{llm: client}
}

func (s *IBISStrategy) Kind() Kind { return IBIS }

// Analyze returns *llm.LLMCallError when the provider call fails and
// *AnalysisError when the reply is not a valid graph.
func (s *IBISStrategy) Analyze(ctx context.Context, text string) (*graph.Graph, error) {
	raw, err := s.llm.GenerateJSON(ctx, promptIBIS, text, ibisSchema)
	if err != nil {
		return nil, err
	}
	g, err := graph.Parse(raw)
	if err != nil {
		ae := &AnalysisError{Strategy: IBIS, Err: err}
		var se *graph.SchemaError
		if errors.As(err, &se) {
			ae.Field = se.Field
		}
		return nil, ae
	}
	return g, nil
}

func nodeTypeNames() []string {
	out := make([]string, 0, len(graph.NodeTypes))
	for _, t := range graph.NodeTypes {
		out = append(out, string(t))
	}
	return out
}

func edgeTypeNames() []string {
	out := make([]string, 0, len(graph.EdgeTypes))
	for _, t := range graph.EdgeTypes {
		out = append(out, string(t))
	}
	return out
}
