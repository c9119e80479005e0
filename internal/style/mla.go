package style

import (
	"strconv"
	"strings"

	"github.com/matsen/citeline/internal/citation"
)

// mlaFull renders an MLA reference:
// `Surname, First Name, et al. "Title." Journal, vol. V, Year, pp. P.`
// "et al." appears whenever there are three or more authors.
func mlaFull(c citation.Citation) string {
	var b strings.Builder
	b.WriteString(ensurePeriod(mlaAuthors(c.Authors)))
	b.WriteString(" ")

	var tailParts []string
	if c.Journal != "" {
		tailParts = append(tailParts, c.Journal)
	}
	if c.Volume != "" {
		tailParts = append(tailParts, "vol. "+c.Volume)
	}
	if c.Year > 0 {
		tailParts = append(tailParts, strconv.Itoa(c.Year))
	}
	if c.Pages != "" {
		tailParts = append(tailParts, "pp. "+c.Pages)
	}

	if len(tailParts) == 0 {
		b.WriteString(`"` + ensurePeriod(c.Title) + `"`)
		return b.String()
	}
	b.WriteString(`"` + ensurePeriod(c.Title) + `" `)
	b.WriteString(strings.Join(tailParts, ", "))
	b.WriteString(".")
	return b.String()
}

// mlaAuthors formats the author block: "Surname, First" for one,
// "Surname, First, and First Surname" for two, "Surname, First, et al."
// for three or more.
func mlaAuthors(authors []citation.Author) string {
	first := mlaAuthorInverted(authors[0])
	switch len(authors) {
	case 1:
		return first
	case 2:
		return first + ", and " + mlaAuthorNatural(authors[1])
	default:
		return first + ", et al."
	}
}

// mlaAuthorInverted formats an author as "Surname, First Name".
func mlaAuthorInverted(a citation.Author) string {
	if a.First == "" {
		return a.Last
	}
	return a.Last + ", " + a.First
}

// mlaAuthorNatural formats an author as "First Name Surname".
func mlaAuthorNatural(a citation.Author) string {
	if a.First == "" {
		return a.Last
	}
	return a.First + " " + a.Last
}

// mlaInText renders "(Surname Pages)" using the pages field when present,
// "(Surname)" otherwise.
func mlaInText(c citation.Citation) string {
	last := c.FirstAuthor().Last
	if c.Pages == "" {
		return "(" + last + ")"
	}
	return "(" + last + " " + c.Pages + ")"
}
