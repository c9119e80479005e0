package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matsen/citeline/internal/bibliography"
	"github.com/matsen/citeline/internal/citation"
	"github.com/matsen/citeline/internal/engine"
	"github.com/matsen/citeline/internal/stats"
)

// AddCitationInput is the input schema for the add_citation tool.
type AddCitationInput struct {
	Title          string   `json:"title" jsonschema:"title of the cited work"`
	Authors        []string `json:"authors" jsonschema:"author names, either 'Last, First' or 'First Last'"`
	Year           int      `json:"year,omitempty" jsonschema:"publication year, 0 if unknown"`
	Journal        string   `json:"journal,omitempty" jsonschema:"journal or venue name"`
	Volume         string   `json:"volume,omitempty" jsonschema:"volume identifier"`
	Pages          string   `json:"pages,omitempty" jsonschema:"page range"`
	DOI            string   `json:"doi,omitempty" jsonschema:"digital object identifier"`
	LinkedEntities []string `json:"linked_entities,omitempty" jsonschema:"document entities linked to this citation"`
}

// AddCitationOutput is the output schema for the add_citation tool.
type AddCitationOutput struct {
	Key    string `json:"key"`
	Merged bool   `json:"merged"`
}

// TrackCitationInput is the input schema for the track_citation tool.
type TrackCitationInput struct {
	Key        string  `json:"key" jsonschema:"citation key returned by add_citation"`
	Context    string  `json:"context,omitempty" jsonschema:"text surrounding the citation"`
	Section    string  `json:"section,omitempty" jsonschema:"document section containing the citation"`
	Confidence float64 `json:"confidence" jsonschema:"extraction confidence between 0.0 and 1.0"`
}

// TrackCitationOutput is the output schema for the track_citation tool.
type TrackCitationOutput struct {
	UsageID    string `json:"usage_id"`
	Key        string `json:"key"`
	Ordinal    int    `json:"ordinal"`
	UsageCount int    `json:"usage_count"`
}

// GetCitationInput is the input schema for the get_citation tool.
type GetCitationInput struct {
	Key string `json:"key" jsonschema:"citation key to look up"`
}

// GetCitationOutput is the output schema for the get_citation tool.
type GetCitationOutput struct {
	Citation citation.Citation `json:"citation"`
}

// BibliographyInput is the input schema for the generate_bibliography tool.
type BibliographyInput struct {
	Style    string `json:"style" jsonschema:"bibliography style: apa, ieee, nature, or mla"`
	SortBy   string `json:"sort_by,omitempty" jsonschema:"sort key: author, year, or title (default author)"`
	UsedOnly *bool  `json:"used_only,omitempty" jsonschema:"include only citations actually used (default true)"`
}

// BibliographyOutput is the output schema for the generate_bibliography tool.
type BibliographyOutput struct {
	Style   string                        `json:"style"`
	Entries []citation.FormattedReference `json:"entries"`
	Count   int                           `json:"count"`
}

// InTextInput is the input schema for the in_text_citation tool.
type InTextInput struct {
	Key   string `json:"key" jsonschema:"citation key to cite"`
	Style string `json:"style" jsonschema:"citation style: apa, ieee, nature, or mla"`
}

// InTextOutput is the output schema for the in_text_citation tool.
type InTextOutput struct {
	Key    string `json:"key"`
	Marker string `json:"marker"`
}

// StatsInput is the input schema for the citation_stats tool.
type StatsInput struct {
	TopN int `json:"top_n,omitempty" jsonschema:"ranking size for most-cited entries (default 10)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_citation",
		Description: "Register a citation, deduplicating against existing entries by title and year",
	}, s.handleAddCitation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "track_citation",
		Description: "Record a usage of a citation at a location in the document",
	}, s.handleTrackCitation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_citation",
		Description: "Look up a citation by its key",
	}, s.handleGetCitation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_bibliography",
		Description: "Generate a formatted bibliography in the requested style",
	}, s.handleBibliography)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "in_text_citation",
		Description: "Produce the in-text citation marker for a citation in the requested style",
	}, s.handleInText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "citation_stats",
		Description: "Report citation usage statistics across the document",
	}, s.handleStats)
}

func (s *Server) handleAddCitation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AddCitationInput,
) (*mcp.CallToolResult, AddCitationOutput, error) {
	before := len(s.eng.ListCitations(false))

	key, err := s.eng.AddCitation(engine.AddInput{
		Title:          input.Title,
		Authors:        input.Authors,
		Year:           input.Year,
		Journal:        input.Journal,
		Volume:         input.Volume,
		Pages:          input.Pages,
		DOI:            input.DOI,
		LinkedEntities: input.LinkedEntities,
	})
	if err != nil {
		return nil, AddCitationOutput{}, err
	}

	if err := s.persist(); err != nil {
		return nil, AddCitationOutput{}, err
	}

	merged := len(s.eng.ListCitations(false)) == before
	return nil, AddCitationOutput{Key: key, Merged: merged}, nil
}

func (s *Server) handleTrackCitation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TrackCitationInput,
) (*mcp.CallToolResult, TrackCitationOutput, error) {
	rec, err := s.eng.TrackCitation(input.Key, input.Context, input.Section, input.Confidence)
	if err != nil {
		return nil, TrackCitationOutput{}, err
	}

	if err := s.persist(); err != nil {
		return nil, TrackCitationOutput{}, err
	}

	c, err := s.eng.GetCitation(input.Key)
	if err != nil {
		return nil, TrackCitationOutput{}, err
	}
	count, err := s.eng.UsageCount(input.Key)
	if err != nil {
		return nil, TrackCitationOutput{}, err
	}

	return nil, TrackCitationOutput{
		UsageID:    rec.ID,
		Key:        input.Key,
		Ordinal:    c.Ordinal,
		UsageCount: count,
	}, nil
}

func (s *Server) handleGetCitation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetCitationInput,
) (*mcp.CallToolResult, GetCitationOutput, error) {
	c, err := s.eng.GetCitation(input.Key)
	if err != nil {
		return nil, GetCitationOutput{}, err
	}
	return nil, GetCitationOutput{Citation: c}, nil
}

func (s *Server) handleBibliography(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input BibliographyInput,
) (*mcp.CallToolResult, BibliographyOutput, error) {
	style, err := citation.ParseStyle(input.Style)
	if err != nil {
		return nil, BibliographyOutput{}, err
	}

	opts := bibliography.DefaultOptions()
	if input.SortBy != "" {
		sortBy, err := citation.ParseSortKey(input.SortBy)
		if err != nil {
			return nil, BibliographyOutput{}, err
		}
		opts.SortBy = sortBy
	}
	if input.UsedOnly != nil {
		opts.UsedOnly = *input.UsedOnly
	}

	entries, err := bibliography.Generate(s.eng, style, opts)
	if err != nil {
		return nil, BibliographyOutput{}, err
	}

	return nil, BibliographyOutput{
		Style:   string(style),
		Entries: entries,
		Count:   len(entries),
	}, nil
}

func (s *Server) handleInText(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input InTextInput,
) (*mcp.CallToolResult, InTextOutput, error) {
	style, err := citation.ParseStyle(input.Style)
	if err != nil {
		return nil, InTextOutput{}, err
	}

	marker, err := bibliography.InText(s.eng, input.Key, style)
	if err != nil {
		return nil, InTextOutput{}, err
	}

	return nil, InTextOutput{Key: input.Key, Marker: marker}, nil
}

func (s *Server) handleStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input StatsInput,
) (*mcp.CallToolResult, stats.CitationStats, error) {
	topN := input.TopN
	if topN <= 0 {
		topN = stats.DefaultTopN
	}
	return nil, stats.Report(s.eng, topN), nil
}
