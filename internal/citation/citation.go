// Package citation defines the core domain types for the citation engine.
package citation

import "time"

// Citation represents one stored bibliographic source.
type Citation struct {
	// Key is the unique, human-readable identifier. It is assigned once,
	// deterministically, and never reused for a different source.
	Key string `json:"key"`

	// Metadata
	Title   string   `json:"title"`
	Authors []Author `json:"authors"`
	Year    int      `json:"year,omitempty"` // 0 if unknown
	Journal string   `json:"journal,omitempty"`
	Volume  string   `json:"volume,omitempty"`
	Pages   string   `json:"pages,omitempty"`
	DOI     string   `json:"doi,omitempty"`

	// LinkedEntities holds opaque knowledge-graph identifiers supplied at
	// ingestion. Kept sorted and de-duplicated; grows by union on merge.
	LinkedEntities []string `json:"linked_entities,omitempty"`

	// Ordinal is the stable number used by IEEE/Nature rendering.
	// Zero until the citation's first usage freezes it.
	Ordinal int `json:"ordinal,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Used reports whether the citation has a frozen ordinal, which is
// equivalent to having at least one usage record.
func (c Citation) Used() bool {
	return c.Ordinal > 0
}

// FirstAuthor returns the first author, or a zero Author if none exist.
// Valid citations always have at least one author.
func (c Citation) FirstAuthor() Author {
	if len(c.Authors) == 0 {
		return Author{}
	}
	return c.Authors[0]
}

// Clone returns a deep copy so callers can hand citations out of a locked
// section without sharing slices with the store.
func (c Citation) Clone() Citation {
	out := c
	out.Authors = append([]Author(nil), c.Authors...)
	out.LinkedEntities = append([]string(nil), c.LinkedEntities...)
	return out
}

// UsageRecord represents one occurrence of a citation supporting generated
// text. Records are append-only and never mutated.
type UsageRecord struct {
	ID          string    `json:"id"`
	CitationKey string    `json:"citation_key"`
	ContextText string    `json:"context_text"`
	Section     string    `json:"section,omitempty"`
	Confidence  float64   `json:"confidence"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// FormattedReference is the rendered form of one citation in one style.
type FormattedReference struct {
	Key          string `json:"key"`
	FullText     string `json:"full_text"`
	InTextMarker string `json:"in_text_marker"`
}

// Snapshot is a complete, serializable copy of engine state, sufficient to
// reconstruct the store exactly. Citations appear in insertion order and
// usage records in chronological order.
type Snapshot struct {
	Citations   []Citation    `json:"citations"`
	Usages      []UsageRecord `json:"usages"`
	NextOrdinal int           `json:"next_ordinal"`
}
