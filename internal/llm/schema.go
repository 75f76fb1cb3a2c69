package llm

import (
	"sort"

	"github.com/sashabaranov/go-openai/jsonschema"
	genai "google.golang.org/genai"
)

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
)

// Schema is a provider-neutral subset of JSON Schema describing the reply
// shape. Every property of an object is treated as required.
type Schema struct {
	// Title names the schema for providers that require it; use [a-z0-9_].
	Title       string
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	// Order fixes property ordering for providers that honour it; properties
	// missing from Order follow in lexical order.
	Order []string
	Items *Schema
	Enum  []string
}

func (s *Schema) propertyNames() []string {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(s.Properties))
	out := make([]string, 0, len(s.Properties))
	for _, k := range s.Order {
		if _, ok := s.Properties[k]; ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	rest := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func (s *Schema) genai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Title:       s.Title,
		Description: s.Description,
		Enum:        append([]string(nil), s.Enum...),
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	case TypeArray:
		out.Type = genai.TypeArray
	case TypeInteger:
		out.Type = genai.TypeInteger
	default:
		out.Type = genai.TypeString
	}
	if s.Items != nil {
		out.Items = s.Items.genai()
	}
	if names := s.propertyNames(); len(names) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(names))
		for _, k := range names {
			out.Properties[k] = s.Properties[k].genai()
		}
		out.PropertyOrdering = names
		out.Required = names
	}
	return out
}

// openAI converts to a strict-mode definition: all properties required and
// no additional properties.
func (s *Schema) openAI() jsonschema.Definition {
	if s == nil {
		return jsonschema.Definition{}
	}
	out := jsonschema.Definition{
		Type:        jsonschema.DataType(s.Type),
		Description: s.Description,
		Enum:        append([]string(nil), s.Enum...),
	}
	if s.Items != nil {
		items := s.Items.openAI()
		out.Items = &items
	}
	if s.Type == TypeObject {
		names := s.propertyNames()
		out.Properties = make(map[string]jsonschema.Definition, len(names))
		for _, k := range names {
			out.Properties[k] = s.Properties[k].openAI()
		}
		out.Required = names
		out.AdditionalProperties = false
	}
	return out
}
