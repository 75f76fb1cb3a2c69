package diagram

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"
)

var plainIdent = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Words Mermaid treats as syntax inside a flowchart.
var reservedIdents = map[string]struct{}{
	"end": {}, "graph": {}, "flowchart": {}, "subgraph": {}, "direction": {},
	"style": {}, "class": {}, "classdef": {}, "click": {}, "linkstyle": {},
}

// identAllocator maps graph node identifiers to identifiers that are safe to
// emit in Mermaid. Plain identifiers are kept as-is; anything else becomes
// "<slug>_<hash>", with a numeric suffix on collision. Output depends only
// on the order of calls, so rendering stays deterministic.
type identAllocator struct {
	used  map[string]struct{}
	byKey map[string]string
}

func newIdentAllocator() *identAllocator {
	return &identAllocator{
		used:  make(map[string]struct{}),
		byKey: make(map[string]string),
	}
}

func (a *identAllocator) ident(id string) string {
	if out, ok := a.byKey[id]; ok {
		return out
	}
	base := id
	if !plainIdent.MatchString(id) || isReserved(id) {
		base = fmt.Sprintf("%s_%s", slug(id), shortHash(id))
	}
	out := base
	for n := 2; ; n++ {
		if _, taken := a.used[out]; !taken {
			break
		}
		out = fmt.Sprintf("%s_%d", base, n)
	}
	a.used[out] = struct{}{}
	a.byKey[id] = out
	return out
}

func isReserved(id string) bool {
	_, ok := reservedIdents[strings.ToLower(id)]
	return ok
}

func shortHash(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}

func slug(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" || !unicode.IsLetter(rune(out[0])) {
		out = "node_" + out
	}
	return strings.TrimSuffix(out, "_")
}
