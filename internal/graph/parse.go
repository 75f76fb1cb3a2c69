package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type document struct {
	Nodes []wireNode `json:"nodes" validate:"required,dive"`
	Edges []wireEdge `json:"edges" validate:"dive"`
}

type wireNode struct {
	ID       string `json:"id" validate:"required"`
	Type     string `json:"type" validate:"required,node_type"`
	Label    string `json:"label" validate:"required"`
	Speaker  string `json:"speaker"`
	Sequence int    `json:"sequence" validate:"gte=0"`
}

type wireEdge struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
	Type   string `json:"type" validate:"required,edge_type"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("node_type", func(fl validator.FieldLevel) bool {
		_, ok := ParseNodeType(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("edge_type", func(fl validator.FieldLevel) bool {
		_, ok := ParseEdgeType(fl.Field().String())
		return ok
	})
	return v
}

// Parse decodes the {nodes, edges} JSON document produced by the model and
// validates it into a Graph. Every failure is a *SchemaError.
func Parse(raw []byte) (*Graph, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &SchemaError{Reason: "empty document"}
	}
	doc, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return build(doc)
}

// rawDocument defers element decoding so type errors carry an indexed path.
type rawDocument struct {
	Nodes []json.RawMessage `json:"nodes"`
	Edges []json.RawMessage `json:"edges"`
}

func decode(raw []byte) (document, error) {
	var rd rawDocument
	if err := json.Unmarshal(raw, &rd); err != nil {
		return document{}, decodeError("", err)
	}
	var doc document
	if rd.Nodes != nil {
		doc.Nodes = make([]wireNode, len(rd.Nodes))
	}
	for i, r := range rd.Nodes {
		if err := json.Unmarshal(r, &doc.Nodes[i]); err != nil {
			return document{}, decodeError(fmt.Sprintf("nodes[%d]", i), err)
		}
	}
	if rd.Edges != nil {
		doc.Edges = make([]wireEdge, len(rd.Edges))
	}
	for i, r := range rd.Edges {
		if err := json.Unmarshal(r, &doc.Edges[i]); err != nil {
			return document{}, decodeError(fmt.Sprintf("edges[%d]", i), err)
		}
	}
	return doc, nil
}

// ParseNodeType matches s case-insensitively against the known node types.
func ParseNodeType(s string) (NodeType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range NodeTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// ParseEdgeType matches s against the known relations. Case, underscores and
// spaces are ignored, so "Responds_To" resolves to EdgeRespondsTo.
func ParseEdgeType(s string) (EdgeType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	for _, t := range EdgeTypes {
		if s == string(t) {
			return t, true
		}
	}
	return "", false
}

func build(doc document) (*Graph, error) {
	normalize(&doc)
	if err := validate.Struct(doc); err != nil {
		return nil, validationError(err)
	}

	g := &Graph{
		nodes: make([]Node, 0, len(doc.Nodes)),
		edges: make([]Edge, 0, len(doc.Edges)),
		index: make(map[string]int, len(doc.Nodes)),
	}
	for i, n := range doc.Nodes {
		if first, dup := g.index[n.ID]; dup {
			return nil, &SchemaError{
				Field:  fmt.Sprintf("nodes[%d].id", i),
				Reason: fmt.Sprintf("duplicate identifier %q (first declared at nodes[%d])", n.ID, first),
			}
		}
		nt, _ := ParseNodeType(n.Type)
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, Node{
			ID:       n.ID,
			Type:     nt,
			Label:    n.Label,
			Speaker:  n.Speaker,
			Sequence: n.Sequence,
		})
	}
	for i, e := range doc.Edges {
		if _, ok := g.index[e.Source]; !ok {
			return nil, &SchemaError{
				Field:  fmt.Sprintf("edges[%d].source", i),
				Reason: fmt.Sprintf("unknown node %q", e.Source),
			}
		}
		if _, ok := g.index[e.Target]; !ok {
			return nil, &SchemaError{
				Field:  fmt.Sprintf("edges[%d].target", i),
				Reason: fmt.Sprintf("unknown node %q", e.Target),
			}
		}
		et, _ := ParseEdgeType(e.Type)
		g.edges = append(g.edges, Edge{Source: e.Source, Target: e.Target, Type: et})
	}
	return g, nil
}

func normalize(doc *document) {
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		n.ID = strings.TrimSpace(n.ID)
		n.Type = strings.TrimSpace(n.Type)
		n.Label = strings.TrimSpace(n.Label)
		n.Speaker = strings.TrimSpace(n.Speaker)
	}
	for i := range doc.Edges {
		e := &doc.Edges[i]
		e.Source = strings.TrimSpace(e.Source)
		e.Target = strings.TrimSpace(e.Target)
		e.Type = strings.TrimSpace(e.Type)
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &SchemaError{Reason: err.Error()}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "node_type":
		reason = fmt.Sprintf("unknown node type %q", fe.Value())
	case "edge_type":
		reason = fmt.Sprintf("unknown edge type %q", fe.Value())
	case "gte":
		reason = fmt.Sprintf("must be >= %s", fe.Param())
	default:
		reason = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &SchemaError{Field: field, Reason: reason}
}

func decodeError(prefix string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		switch {
		case prefix == "":
		case field == "":
			field = prefix
		default:
			field = prefix + "." + field
		}
		return &SchemaError{
			Field:  field,
			Reason: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SchemaError{Reason: fmt.Sprintf("invalid JSON at offset %d: %v", syntaxErr.Offset, syntaxErr)}
	}
	return &SchemaError{Reason: err.Error()}
}
