// Package style renders citations as style-correct reference strings and
// in-text markers. Every formatter is a pure function of the citation, the
// style, and (for numbered styles) the ordinal: no randomness, no clock,
// and timestamps are never rendered.
package style

import (
	"strconv"
	"strings"

	"github.com/matsen/citeline/internal/citation"
)

// Format renders one citation in one style. ordinal is the 1-based number
// used by IEEE and Nature; narrative styles ignore it. An unknown style is
// a ValidationError; formatting never fails for a citation that satisfies
// the data-model invariants (title and authors always present).
func Format(c citation.Citation, s citation.Style, ordinal int) (citation.FormattedReference, error) {
	switch s {
	case citation.APA:
		return citation.FormattedReference{
			Key:          c.Key,
			FullText:     apaFull(c),
			InTextMarker: apaInText(c),
		}, nil
	case citation.IEEE:
		return citation.FormattedReference{
			Key:          c.Key,
			FullText:     ieeeFull(c, ordinal),
			InTextMarker: numberedMarker(ordinal),
		}, nil
	case citation.Nature:
		return citation.FormattedReference{
			Key:          c.Key,
			FullText:     natureFull(c, ordinal),
			InTextMarker: numberedMarker(ordinal),
		}, nil
	case citation.MLA:
		return citation.FormattedReference{
			Key:          c.Key,
			FullText:     mlaFull(c),
			InTextMarker: mlaInText(c),
		}, nil
	}
	return citation.FormattedReference{}, citation.ValidationError{
		Field:  "style",
		Reason: "unknown style " + string(s),
	}
}

// numberedMarker renders the in-text marker for numbered styles. Nature's
// superscript is represented as plain [N] since no rich text is available.
func numberedMarker(ordinal int) string {
	return "[" + strconv.Itoa(ordinal) + "]"
}

// ensurePeriod appends a terminal period unless the string already ends
// with sentence punctuation, so titles like "Attention?" stay clean.
func ensurePeriod(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
