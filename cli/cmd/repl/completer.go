package repl

import (
	"github.com/sahilm/fuzzy"
)

// keywords are the flow-control words of the construct grammar.
var keywords = []string{
	"if", "else", "for", "in", "while", "break", "continue",
}

// builtins are the value-literal functions available in expressions.
var builtins = []string{
	"length", "edges", "corners", "color",
}

// isWordRune reports whether r can appear in a completable identifier.
func isWordRune(r byte) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

// complete returns full-line completion candidates for the trailing word of
// input, fuzzy-matched against bound entity names, keywords, and builtins.
func complete(input string, names []string) []string {
	start := len(input)
	for start > 0 && isWordRune(input[start-1]) {
		start--
	}

	word := input[start:]
	if word == "" {
		return nil
	}

	candidates := make([]string, 0, len(names)+len(keywords)+len(builtins))
	candidates = append(candidates, names...)
	candidates = append(candidates, keywords...)
	candidates = append(candidates, builtins...)

	// Find returns matches ordered best first.
	matches := fuzzy.Find(word, candidates)

	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		if _, dup := seen[m.Str]; dup {
			continue
		}

		seen[m.Str] = struct{}{}
		out = append(out, input[:start]+m.Str)
	}

	return out
}
