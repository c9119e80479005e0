package style

import (
	"strconv"
	"strings"

	"github.com/matsen/citeline/internal/citation"
)

// ieeeFull renders an IEEE reference:
// `[N] F. Surname, F. Surname, and F. Surname, "Title," Journal, vol. V, pp. P, Year.`
// N is the citation's frozen first-usage ordinal, not an alphabetical rank.
func ieeeFull(c citation.Citation, ordinal int) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strconv.Itoa(ordinal))
	b.WriteString("] ")
	b.WriteString(ieeeAuthors(c.Authors))
	b.WriteString(", ")

	var tailParts []string
	if c.Journal != "" {
		tailParts = append(tailParts, c.Journal)
	}
	if c.Volume != "" {
		tailParts = append(tailParts, "vol. "+c.Volume)
	}
	if c.Pages != "" {
		tailParts = append(tailParts, "pp. "+c.Pages)
	}
	if c.Year > 0 {
		tailParts = append(tailParts, strconv.Itoa(c.Year))
	}

	if len(tailParts) == 0 {
		b.WriteString(`"` + c.Title + `."`)
		return b.String()
	}
	b.WriteString(`"` + c.Title + `," `)
	b.WriteString(strings.Join(tailParts, ", "))
	b.WriteString(".")
	return b.String()
}

// ieeeAuthors formats authors initials-first: "A. Vaswani", two joined
// with "and", three or more comma-separated with ", and" before the last.
func ieeeAuthors(authors []citation.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = ieeeAuthor(a)
	}

	switch {
	case len(names) == 1:
		return names[0]
	case len(names) == 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// ieeeAuthor formats one author as "F. M. Surname".
func ieeeAuthor(a citation.Author) string {
	initials := a.Initials()
	if initials == "" {
		return a.Last
	}
	return initials + " " + a.Last
}
