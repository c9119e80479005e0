// Package bibliography composes the engine and the style formatters into
// ordered, deduplicated, style-consistent reference lists.
package bibliography

import (
	"sort"
	"strings"

	"github.com/matsen/citeline/internal/citation"
	"github.com/matsen/citeline/internal/engine"
	"github.com/matsen/citeline/internal/style"
)

// Options controls bibliography generation. The zero value is not the
// default; use DefaultOptions.
type Options struct {
	// UsedOnly restricts output to citations with at least one usage.
	UsedOnly bool
	// SortBy selects the presentation order: author, year, or title.
	SortBy citation.SortKey
}

// DefaultOptions returns the standard settings: used citations only,
// sorted by first-author surname.
func DefaultOptions() Options {
	return Options{UsedOnly: true, SortBy: citation.SortByAuthor}
}

// Generate renders the bibliography for one style. Output is deterministic
// and idempotent: identical inputs against unchanged engine state yield
// byte-identical results, including number assignments.
//
// For numbered styles the embedded numbers are the ordinals frozen at each
// citation's first usage; they never move when sort_by changes, because
// renumbering would break in-text markers already emitted elsewhere.
// Never-used citations (reachable only with UsedOnly false) receive
// provisional display numbers continuing past the highest frozen ordinal,
// assigned in display order and never persisted.
func Generate(eng *engine.Engine, s citation.Style, opts Options) ([]citation.FormattedReference, error) {
	if _, err := citation.ParseStyle(string(s)); err != nil {
		return nil, err
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = citation.SortByAuthor
	}
	if _, err := citation.ParseSortKey(string(sortBy)); err != nil {
		return nil, err
	}

	cites := eng.ListCitations(opts.UsedOnly)
	sortCitations(cites, sortBy)

	ordinals := displayOrdinals(cites)

	refs := make([]citation.FormattedReference, 0, len(cites))
	for i, c := range cites {
		ref, err := style.Format(c, s, ordinals[i])
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// InText renders the single in-text marker for one citation. Numbered
// styles require the frozen ordinal, so a citation that has never been
// used cannot be cited numerically; narrative styles compute inline.
func InText(eng *engine.Engine, key string, s citation.Style) (string, error) {
	if _, err := citation.ParseStyle(string(s)); err != nil {
		return "", err
	}
	c, err := eng.GetCitation(key)
	if err != nil {
		return "", err
	}
	if s.Numbered() && c.Ordinal == 0 {
		return "", citation.ValidationError{
			Field:  "citation_key",
			Reason: key + " has never been used; no ordinal assigned",
		}
	}
	ref, err := style.Format(c, s, c.Ordinal)
	if err != nil {
		return "", err
	}
	return ref.InTextMarker, nil
}

// sortCitations orders citations for presentation. Author and title sorts
// compare normalized values with the citation key as tie-break; year sort
// is ascending with unknown years last.
func sortCitations(cites []citation.Citation, sortBy citation.SortKey) {
	sort.SliceStable(cites, func(i, j int) bool {
		a, b := cites[i], cites[j]
		switch sortBy {
		case citation.SortByYear:
			ya, yb := sortableYear(a.Year), sortableYear(b.Year)
			if ya != yb {
				return ya < yb
			}
		case citation.SortByTitle:
			ta := engine.NormalizeTitle(a.Title)
			tb := engine.NormalizeTitle(b.Title)
			if ta != tb {
				return ta < tb
			}
		default: // author
			sa := strings.ToLower(a.FirstAuthor().Last)
			sb := strings.ToLower(b.FirstAuthor().Last)
			if sa != sb {
				return sa < sb
			}
		}
		return a.Key < b.Key
	})
}

// sortableYear pushes unknown years past every real year.
func sortableYear(year int) int {
	if year <= 0 {
		return int(^uint(0) >> 1) // max int
	}
	return year
}

// displayOrdinals returns the number to embed for each citation in display
// order: the frozen ordinal when present, otherwise a provisional number
// continuing past the highest frozen ordinal.
func displayOrdinals(cites []citation.Citation) []int {
	maxOrdinal := 0
	for _, c := range cites {
		if c.Ordinal > maxOrdinal {
			maxOrdinal = c.Ordinal
		}
	}

	out := make([]int, len(cites))
	next := maxOrdinal + 1
	for i, c := range cites {
		if c.Ordinal > 0 {
			out[i] = c.Ordinal
			continue
		}
		out[i] = next
		next++
	}
	return out
}
