package style

import (
	"strconv"
	"strings"

	"github.com/matsen/citeline/internal/citation"
)

// natureFull renders a Nature reference:
// `N. Surname, F. & Surname, F. Title. Journal Volume, Pages (Year).`
// The leading N is the frozen first-usage ordinal; the in-text marker is a
// plain-text [N] standing in for Nature's superscript.
func natureFull(c citation.Citation, ordinal int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(ordinal))
	b.WriteString(". ")
	b.WriteString(ensurePeriod(natureAuthors(c.Authors)))
	b.WriteString(" ")
	b.WriteString(ensurePeriod(c.Title))

	tail := natureTail(c)
	if tail != "" {
		b.WriteString(" ")
		b.WriteString(tail)
		b.WriteString(".")
	}
	return b.String()
}

// natureAuthors formats authors surname-first with an ampersand before the
// last: "Vaswani, A. & Shazeer, N.".
func natureAuthors(authors []citation.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = apaAuthor(a) // same "Surname, F." shape as APA
	}

	switch {
	case len(names) == 1:
		return names[0]
	case len(names) == 2:
		return names[0] + " & " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}

// natureTail assembles "Journal Volume, Pages (Year)" omitting absent
// fields without dangling punctuation.
func natureTail(c citation.Citation) string {
	venue := joinNonEmpty([]string{c.Journal, c.Volume}, " ")
	base := joinNonEmpty([]string{venue, c.Pages}, ", ")
	if c.Year <= 0 {
		return base
	}
	yearPart := "(" + strconv.Itoa(c.Year) + ")"
	return joinNonEmpty([]string{base, yearPart}, " ")
}
