// Package demoji finds and replaces emoji sequences within text strings.
//
// The set of known emoji is bundled with the package and refreshable from
// its canonical source, the Unicode emoji registry. Matching is
// leftmost-longest: when one known sequence is a prefix of another (for
// example a base emoji and its skin-tone variant), the longer sequence is
// always the one reported.
package demoji

import (
	"strings"
	"sync"
	"time"

	"github.com/AIM-Technologies-CO/demoji/internal/dictionary"
	"github.com/AIM-Technologies-CO/demoji/internal/matcher"
)

// Version of the demoji library.
const Version = "1.1.0"

// Match is a located emoji occurrence within a scanned string. Start and
// End are byte offsets; the scanned text sliced at [Start:End) equals
// Sequence. Sequence is always a dictionary key, so Description is always
// populated.
type Match struct {
	Sequence    string
	Description string
	Start       int
	End         int
}

// Scanner pairs the loaded emoji dictionary with its compiled matcher.
// Immutable after construction and safe for unlimited concurrent readers.
type Scanner struct {
	codes map[string]string
	m     *matcher.Matcher
}

// New loads the bundled dictionary and compiles the matcher. It fails with
// an error wrapping dictionary.ErrDataUnavailable or
// dictionary.ErrMalformedData when the bundled resource is absent or not a
// flat JSON object of string to string.
func New() (*Scanner, error) {
	codes, err := dictionary.Load()
	if err != nil {
		return nil, err
	}
	sequences := make([]string, 0, len(codes))
	for seq := range codes {
		sequences = append(sequences, seq)
	}
	return &Scanner{codes: codes, m: matcher.New(sequences)}, nil
}

// Scan returns every non-overlapping emoji occurrence in text, left to
// right. Nil when text contains no known sequence.
func (s *Scanner) Scan(text string) []Match {
	raw := s.m.Scan(text)
	if len(raw) == 0 {
		return nil
	}
	matches := make([]Match, len(raw))
	for i, r := range raw {
		matches[i] = Match{
			Sequence:    r.Sequence,
			Description: s.codes[r.Sequence],
			Start:       r.Start,
			End:         r.End,
		}
	}
	return matches
}

// FindAll returns the distinct emoji sequences found in text, each mapped
// to its description. The map is empty (non-nil) when nothing matches.
func (s *Scanner) FindAll(text string) map[string]string {
	found := map[string]string{}
	for _, m := range s.Scan(text) {
		found[m.Sequence] = m.Description
	}
	return found
}

// FindAllList returns every emoji occurrence in text in left-to-right
// order, duplicates preserved. With desc true each element is the
// description, otherwise the raw sequence.
func (s *Scanner) FindAllList(text string, desc bool) []string {
	matches := s.Scan(text)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		if desc {
			out[i] = m.Description
		} else {
			out[i] = m.Sequence
		}
	}
	return out
}

// Replace returns text with every matched emoji sequence substituted by
// repl. Spans are exactly those Scan reports; non-emoji text passes
// through unchanged.
func (s *Scanner) Replace(text, repl string) string {
	matches := s.Scan(text)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, m := range matches {
		b.WriteString(text[prev:m.Start])
		b.WriteString(repl)
		prev = m.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

// ReplaceWithDesc returns text with each matched emoji replaced by its
// description wrapped in sep on both sides.
//
// Replacement runs once per unique sequence, in first-appearance order,
// replacing all literal occurrences of that sequence across the whole
// string. If a matched sequence happens to occur inside description text
// injected by an earlier pass, it is substituted there too. That quirk is
// long-standing observable behavior and is kept as is.
func (s *Scanner) ReplaceWithDesc(text, sep string) string {
	matches := s.Scan(text)
	result := text
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m.Sequence] {
			continue
		}
		seen[m.Sequence] = true
		result = strings.ReplaceAll(result, m.Sequence, sep+m.Description+sep)
	}
	return result
}

// Description returns the description for an exact emoji sequence.
func (s *Scanner) Description(sequence string) (string, bool) {
	desc, ok := s.codes[sequence]
	return desc, ok
}

// Len reports the number of sequences in the dictionary.
func (s *Scanner) Len() int {
	return len(s.codes)
}

// LastDownloadedTimestamp reports when the bundled emoji data was last
// refreshed from the Unicode registry: a fixed UTC instant recorded at
// refresh time, constant across a process run.
func LastDownloadedTimestamp() time.Time {
	return dictionary.LastDownloaded()
}

var (
	defaultMu      sync.Mutex
	defaultScanner *Scanner
	defaultErr     error
	defaultDone    bool
)

// Default returns the process-wide Scanner, constructing it on first call.
// Construction happens exactly once; concurrent first calls block until
// the single initialization finishes and then observe the same Scanner.
func Default() (*Scanner, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if !defaultDone {
		defaultScanner, defaultErr = New()
		defaultDone = true
	}
	return defaultScanner, defaultErr
}

// resetDefault drops the cached Scanner so tests can exercise
// initialization again. Not part of the public API.
func resetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultScanner, defaultErr, defaultDone = nil, nil, false
}

// FindAll finds emoji in text using the shared default Scanner.
func FindAll(text string) (map[string]string, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	return s.FindAll(text), nil
}

// FindAllList lists emoji occurrences in text using the shared default
// Scanner.
func FindAllList(text string, desc bool) ([]string, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	return s.FindAllList(text, desc), nil
}

// Replace substitutes emoji in text using the shared default Scanner.
func Replace(text, repl string) (string, error) {
	s, err := Default()
	if err != nil {
		return "", err
	}
	return s.Replace(text, repl), nil
}

// ReplaceWithDesc replaces emoji in text with their descriptions using the
// shared default Scanner.
func ReplaceWithDesc(text, sep string) (string, error) {
	s, err := Default()
	if err != nil {
		return "", err
	}
	return s.ReplaceWithDesc(text, sep), nil
}
