package diag

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed codes.json
var codesJSON []byte

// CodeEntry is a single diagnostic code definition.
type CodeEntry struct {
	ID    string `json:"id"`    // e.g. "MPL0001"
	Title string `json:"title"` // short human title, e.g. "unterminated string"
	Help  string `json:"help"`  // optional default help text
}

// Registry is the top-level catalog format, one map per phase.
type Registry struct {
	Lexer    map[string]CodeEntry `json:"lexer"`
	Parser   map[string]CodeEntry `json:"parser"`
	Semantic map[string]CodeEntry `json:"semantic"`
	Codegen  map[string]CodeEntry `json:"codegen"`
}

var (
	regOnce sync.Once
	reg     Registry
	regErr  error
)

func load() error {
	regOnce.Do(func() {
		if len(codesJSON) == 0 {
			regErr = nil // empty catalog is allowed
			return
		}
		regErr = json.Unmarshal(codesJSON, &reg)
	})
	return regErr
}

// Lookup returns a code entry by (domain, key). Domain is one of "lexer",
// "parser", "semantic", "codegen".
func Lookup(domain, key string) (CodeEntry, bool) {
	if err := load(); err != nil {
		return CodeEntry{}, false
	}
	switch domain {
	case "lexer":
		if reg.Lexer == nil {
			return CodeEntry{}, false
		}
		ce, ok := reg.Lexer[key]
		return ce, ok
	case "parser":
		if reg.Parser == nil {
			return CodeEntry{}, false
		}
		ce, ok := reg.Parser[key]
		return ce, ok
	case "semantic":
		if reg.Semantic == nil {
			return CodeEntry{}, false
		}
		ce, ok := reg.Semantic[key]
		return ce, ok
	case "codegen":
		if reg.Codegen == nil {
			return CodeEntry{}, false
		}
		ce, ok := reg.Codegen[key]
		return ce, ok
	default:
		return CodeEntry{}, false
	}
}
