package llm

import (
	"encoding/json"
	"strings"
	"unicode"
)

// decodeReply trims whitespace and a surrounding markdown code fence, then
// checks that what remains is a single JSON value.
func decodeReply(provider, txt string) (json.RawMessage, error) {
	txt = stripFence(strings.TrimSpace(txt))
	if txt == "" {
		return nil, callError(provider, ErrEmptyResponse)
	}
	if !json.Valid([]byte(txt)) {
		return nil, callError(provider, ErrInvalidJSON)
	}
	return json.RawMessage(txt), nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else if body := strings.TrimLeftFunc(s, unicode.IsLetter); strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
		// one-line fence, optionally tagged: ```json{...}```
		s = body
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
