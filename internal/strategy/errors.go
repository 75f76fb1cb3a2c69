package strategy

import "fmt"

// AnalysisError reports a model reply that could not be turned into a valid
// graph. Field names the offending JSON path when one is known.
type AnalysisError struct {
	Strategy Kind
	Field    string
	Err      error
}

func (e *AnalysisError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s analysis failed: %v", e.Strategy, e.Err)
	}
	return fmt.Sprintf("%s analysis failed at %s: %v", e.Strategy, e.Field, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
