package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/citeline/internal/citation"
)

// ToJSON serializes a snapshot as indented JSON.
func ToJSON(snap citation.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// csvHeader is the column layout for CSV export: one row per citation with
// its usage aggregates folded in.
var csvHeader = []string{
	"key", "title", "authors", "year", "journal", "volume", "pages", "doi",
	"linked_entities", "ordinal", "usage_count", "avg_confidence",
}

// ToCSV serializes a snapshot as CSV, one row per citation.
func ToCSV(snap citation.Snapshot) ([]byte, error) {
	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, rec := range snap.Usages {
		counts[rec.CitationKey]++
		sums[rec.CitationKey] += rec.Confidence
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, c := range snap.Citations {
		year := ""
		if c.Year > 0 {
			year = strconv.Itoa(c.Year)
		}
		avg := ""
		if n := counts[c.Key]; n > 0 {
			avg = strconv.FormatFloat(sums[c.Key]/float64(n), 'f', 4, 64)
		}
		row := []string{
			c.Key,
			c.Title,
			joinAuthors(c.Authors),
			year,
			c.Journal,
			c.Volume,
			c.Pages,
			c.DOI,
			strings.Join(c.LinkedEntities, ";"),
			strconv.Itoa(c.Ordinal),
			strconv.Itoa(counts[c.Key]),
			avg,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row for %s: %w", c.Key, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// joinAuthors renders authors as "Last, First; Last, First" for CSV cells.
func joinAuthors(authors []citation.Author) string {
	var parts []string
	for _, a := range authors {
		if a.First != "" {
			parts = append(parts, a.Last+", "+a.First)
		} else {
			parts = append(parts, a.Last)
		}
	}
	return strings.Join(parts, "; ")
}
