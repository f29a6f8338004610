package tree

import "github.com/alexvargashn/doc23/internal/schema"

// Match is the result of classifying a line that opens a new node.
type Match struct {
	Level  schema.Level
	Groups []string // capture groups, verbatim; Groups[0] feeds the title
}

// Classify tests a line against every level pattern in schema declaration
// order and returns the first match. Declaration order is the only tie-break:
// callers are expected to write mutually exclusive patterns per depth, and an
// ambiguous schema is a caller error, not a reason to guess by specificity.
// Returns false for lines that open no node (free text).
func Classify(s *schema.Schema, line string) (Match, bool) {
	for i := 0; i < s.Len(); i++ {
		groups := s.Regexp(i).FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		return Match{Level: s.At(i), Groups: groups[1:]}, true
	}
	return Match{}, false
}
