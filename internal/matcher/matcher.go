// Package matcher compiles a set of emoji sequences into a single
// multi-pattern automaton and scans text for occurrences.
//
// It wraps the petar-dambovaliev/aho-corasick library configured for
// leftmost-longest matching, so when one dictionary key is a prefix of
// another (skin-tone and gender modifier sequences, typically) the longer
// key always wins.
package matcher

import (
	"sort"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Match is a located occurrence of one pattern within a scanned text.
// Start and End are byte offsets into the input; text[Start:End] == Sequence.
type Match struct {
	Sequence string
	Start    int
	End      int
}

// Matcher is an immutable compiled automaton over a fixed pattern set.
// Safe for concurrent use once constructed.
type Matcher struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// New compiles the given sequences. Patterns are ordered longest-first
// before compilation so pattern indices are deterministic regardless of the
// caller's map iteration order.
func New(sequences []string) *Matcher {
	patterns := make([]string, len(sequences))
	copy(patterns, sequences)
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		MatchKind: aho.LeftMostLongestMatch,
		DFA:       true,
	})
	return &Matcher{
		automaton: builder.Build(patterns),
		patterns:  patterns,
	}
}

// Scan returns every non-overlapping occurrence of any pattern in text,
// left to right. Each call is independent; nil when nothing matches.
func (m *Matcher) Scan(text string) []Match {
	if len(m.patterns) == 0 || text == "" {
		return nil
	}
	found := m.automaton.FindAll(text)
	if len(found) == 0 {
		return nil
	}
	matches := make([]Match, len(found))
	for i := range found {
		matches[i] = Match{
			Sequence: m.patterns[found[i].Pattern()],
			Start:    found[i].Start(),
			End:      found[i].End(),
		}
	}
	return matches
}

// PatternCount reports the number of compiled patterns.
func (m *Matcher) PatternCount() int {
	return len(m.patterns)
}
