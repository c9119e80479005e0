package citation

import "strings"

// Style identifies one supported citation formatting convention.
type Style string

// Supported styles.
const (
	APA    Style = "apa"
	IEEE   Style = "ieee"
	Nature Style = "nature"
	MLA    Style = "mla"
)

// Styles lists all supported styles in canonical order.
var Styles = []Style{APA, IEEE, Nature, MLA}

// ParseStyle converts user input to a Style (case-insensitive).
func ParseStyle(input string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(input)))
	switch s {
	case APA, IEEE, Nature, MLA:
		return s, nil
	}
	return "", ValidationError{Field: "style", Reason: "unknown style " + strings.TrimSpace(input)}
}

// Numbered reports whether the style renders numeric in-text markers whose
// assignment order follows first usage rather than alphabetical order.
func (s Style) Numbered() bool {
	return s == IEEE || s == Nature
}

// SortKey identifies a bibliography sort order.
type SortKey string

// Supported sort keys.
const (
	SortByAuthor SortKey = "author"
	SortByYear   SortKey = "year"
	SortByTitle  SortKey = "title"
)

// ParseSortKey converts user input to a SortKey (case-insensitive).
func ParseSortKey(input string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(input)))
	switch k {
	case SortByAuthor, SortByYear, SortByTitle:
		return k, nil
	}
	return "", ValidationError{Field: "sort_by", Reason: "unknown sort key " + strings.TrimSpace(input)}
}
