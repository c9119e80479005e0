package style

import (
	"strconv"
	"strings"

	"github.com/matsen/citeline/internal/citation"
)

// apaMaxListedAuthors is the APA cutoff: beyond six authors the list is
// truncated to the first six, an ellipsis, and the final author.
const apaMaxListedAuthors = 6

// apaFull renders an APA reference:
// "Surname, F. M., & Surname, F. (Year). Title. Journal, Volume, Pages."
func apaFull(c citation.Citation) string {
	var b strings.Builder
	b.WriteString(apaAuthors(c.Authors))
	b.WriteString(" (")
	b.WriteString(apaYear(c.Year))
	b.WriteString("). ")
	b.WriteString(ensurePeriod(c.Title))

	tail := joinNonEmpty([]string{c.Journal, c.Volume, c.Pages}, ", ")
	if tail != "" {
		b.WriteString(" ")
		b.WriteString(tail)
		b.WriteString(".")
	}
	return b.String()
}

// apaAuthors formats an author list per APA rules: one author plain, two
// joined with "&", three to six comma-separated with "&" before the last,
// and more than six truncated with "… " before the final author.
func apaAuthors(authors []citation.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = apaAuthor(a)
	}

	switch {
	case len(names) == 1:
		return names[0]
	case len(names) == 2:
		return names[0] + ", & " + names[1]
	case len(names) <= apaMaxListedAuthors:
		return strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	default:
		return strings.Join(names[:apaMaxListedAuthors], ", ") + ", … " + names[len(names)-1]
	}
}

// apaAuthor formats one author as "Surname, F. M.".
func apaAuthor(a citation.Author) string {
	initials := a.Initials()
	if initials == "" {
		return a.Last
	}
	return a.Last + ", " + initials
}

// apaInText renders the narrative marker: "(Surname, Year)",
// "(Surname & Surname, Year)", or "(Surname et al., Year)" for three or
// more authors.
func apaInText(c citation.Citation) string {
	year := apaYear(c.Year)
	switch len(c.Authors) {
	case 1:
		return "(" + c.Authors[0].Last + ", " + year + ")"
	case 2:
		return "(" + c.Authors[0].Last + " & " + c.Authors[1].Last + ", " + year + ")"
	default:
		return "(" + c.Authors[0].Last + " et al., " + year + ")"
	}
}

// apaYear renders a year, with "n.d." for unknown.
func apaYear(year int) string {
	if year <= 0 {
		return "n.d."
	}
	return strconv.Itoa(year)
}
