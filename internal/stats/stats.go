// Package stats derives aggregate health and usage metrics from engine
// state. Reporting is read-only and reflects one consistent snapshot.
package stats

import (
	"sort"

	"github.com/matsen/citeline/internal/engine"
)

// DefaultTopN is the default length of the citations-by-usage ranking.
const DefaultTopN = 10

// UsageEntry pairs a citation key with its usage aggregates.
type UsageEntry struct {
	Key           string  `json:"key"`
	UsageCount    int     `json:"usage_count"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// CitationStats summarizes the current state of the store and tracker.
type CitationStats struct {
	TotalCitations           int          `json:"total_citations"`
	TotalUsages              int          `json:"total_usages"`
	UsedCitations            int          `json:"used_citations"`
	UnusedCitations          int          `json:"unused_citations"`
	AverageConfidenceOverall float64      `json:"average_confidence_overall"`
	CitationsByUsageCount    []UsageEntry `json:"citations_by_usage_count"`
}

// Report computes statistics over one consistent snapshot of the engine.
// topN bounds the by-usage ranking; values <= 0 fall back to DefaultTopN.
// Ties are broken by citation key so the ranking is deterministic.
func Report(eng *engine.Engine, topN int) CitationStats {
	if topN <= 0 {
		topN = DefaultTopN
	}

	snap := eng.Snapshot()

	s := CitationStats{TotalCitations: len(snap.Citations)}

	counts := make(map[string]int, len(snap.Citations))
	sums := make(map[string]float64, len(snap.Citations))
	var confidenceSum float64
	for _, rec := range snap.Usages {
		counts[rec.CitationKey]++
		sums[rec.CitationKey] += rec.Confidence
		confidenceSum += rec.Confidence
	}
	s.TotalUsages = len(snap.Usages)
	if s.TotalUsages > 0 {
		s.AverageConfidenceOverall = confidenceSum / float64(s.TotalUsages)
	}

	var entries []UsageEntry
	for _, c := range snap.Citations {
		n := counts[c.Key]
		if n == 0 {
			s.UnusedCitations++
			continue
		}
		s.UsedCitations++
		entries = append(entries, UsageEntry{
			Key:           c.Key,
			UsageCount:    n,
			AvgConfidence: sums[c.Key] / float64(n),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].UsageCount != entries[j].UsageCount {
			return entries[i].UsageCount > entries[j].UsageCount
		}
		return entries[i].Key < entries[j].Key
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	s.CitationsByUsageCount = entries

	return s
}
