package citation

import "strings"

// Author represents a paper author.
type Author struct {
	First string `json:"first,omitempty"` // First/given name(s) or initials
	Last  string `json:"last"`            // Last/family name
}

// ParseAuthor normalizes a raw author string into an Author.
//
// Supported formats:
//   - "Vaswani, A."     → first="A.", last="Vaswani" (comma = Last, First)
//   - "Ashish Vaswani"  → first="Ashish", last="Vaswani" (space = First Last)
//   - "Vaswani"         → last="Vaswani" (single word = last name only)
//
// Names are trimmed; case is preserved.
func ParseAuthor(input string) Author {
	input = strings.TrimSpace(input)
	if input == "" {
		return Author{}
	}

	// Comma format: "Last, First"
	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		first := strings.TrimSpace(input[idx+1:])
		return Author{First: first, Last: last}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Author{Last: parts[0]}
	}

	// Multiple words: last word is the last name, rest is first name(s).
	last := parts[len(parts)-1]
	first := strings.Join(parts[:len(parts)-1], " ")
	return Author{First: first, Last: last}
}

// ParseAuthors normalizes a list of raw author strings, dropping empties.
func ParseAuthors(inputs []string) []Author {
	var authors []Author
	for _, in := range inputs {
		a := ParseAuthor(in)
		if a.Last == "" {
			continue
		}
		authors = append(authors, a)
	}
	return authors
}

// Initials renders the author's given names as spaced initials: "Ashish"
// → "A.", "F. M." → "F. M.", "First Middle" → "F. M.".
func (a Author) Initials() string {
	var out []string
	for _, part := range strings.Fields(a.First) {
		r := []rune(part)
		out = append(out, string(r[0])+".")
	}
	return strings.Join(out, " ")
}
