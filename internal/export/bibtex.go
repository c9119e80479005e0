// Package export serializes citation snapshots to downstream formats:
// BibTeX, JSON, and CSV. These sit on top of the engine's data model and
// are distinct from the academic styles rendered by the style package.
package export

import (
	"fmt"
	"strings"

	"github.com/matsen/citeline/internal/citation"
)

// ToBibTeX converts a citation to a BibTeX entry.
func ToBibTeX(c citation.Citation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@article{%s,\n", c.Key))

	if len(c.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(c.Authors)))
	}
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(c.Title)))
	if c.Journal != "" {
		b.WriteString(fmt.Sprintf("  journal = {%s},\n", escapeLatex(c.Journal)))
	}
	if c.Year > 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", c.Year))
	}
	if c.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", escapeLatex(c.Volume)))
	}
	if c.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", escapeLatex(c.Pages)))
	}
	if c.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", c.DOI))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple citations to BibTeX format.
func ToBibTeXList(cites []citation.Citation) string {
	var entries []string
	for _, c := range cites {
		entries = append(entries, ToBibTeX(c))
	}
	return strings.Join(entries, "\n")
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []citation.Author) string {
	var formatted []string
	for _, a := range authors {
		if a.First != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", a.Last, a.First))
		} else {
			formatted = append(formatted, a.Last)
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
