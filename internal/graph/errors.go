package graph

import "fmt"

// SchemaError reports a structural violation in graph input. Field is a
// JSON path such as "nodes[1].id" or "edges[0].target".
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("graph schema: %s", e.Reason)
	}
	return fmt.Sprintf("graph schema: %s: %s", e.Field, e.Reason)
}
