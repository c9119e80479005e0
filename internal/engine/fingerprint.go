package engine

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Fingerprint computes the deduplication key for a citation: the
// normalized title joined with the year (empty segment when unknown).
// Two submissions with equal fingerprints describe the same source.
func Fingerprint(title string, year int) string {
	yearPart := ""
	if year > 0 {
		yearPart = strconv.Itoa(year)
	}
	return NormalizeTitle(title) + "|" + yearPart
}

// NormalizeTitle lowercases a title, strips punctuation, and collapses
// runs of whitespace to single spaces.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped entirely.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// unionEntities merges two entity-id sets into a sorted, de-duplicated
// slice. The identifiers are opaque to this engine; union is the only
// operation ever applied to them.
func unionEntities(existing, incoming []string) []string {
	if len(incoming) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, id := range existing {
		seen[id] = true
	}
	for _, id := range incoming {
		if id != "" {
			seen[id] = true
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
