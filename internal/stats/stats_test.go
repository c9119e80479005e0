package stats

import (
	"fmt"
	"testing"

	"github.com/matsen/citeline/internal/engine"
)

func TestReport_Empty(t *testing.T) {
	eng := engine.New(nil)
	s := Report(eng, 0)

	if s.TotalCitations != 0 || s.TotalUsages != 0 {
		t.Errorf("empty report = %+v, want zeros", s)
	}
	if s.AverageConfidenceOverall != 0 {
		t.Errorf("overall confidence = %g, want 0 on empty store", s.AverageConfidenceOverall)
	}
	if len(s.CitationsByUsageCount) != 0 {
		t.Errorf("ranking = %v, want empty", s.CitationsByUsageCount)
	}
}

func TestReport_Aggregates(t *testing.T) {
	eng := engine.New(nil)

	keyA, _ := eng.AddCitation(engine.AddInput{Title: "Alpha", Authors: []string{"Adams, A."}, Year: 2020})
	keyB, _ := eng.AddCitation(engine.AddInput{Title: "Beta", Authors: []string{"Brown, B."}, Year: 2021})
	eng.AddCitation(engine.AddInput{Title: "Gamma", Authors: []string{"Clark, C."}, Year: 2022})

	eng.TrackCitation(keyA, "", "", 0.8)
	eng.TrackCitation(keyA, "", "", 0.6)
	eng.TrackCitation(keyB, "", "", 1.0)

	s := Report(eng, 10)

	if s.TotalCitations != 3 {
		t.Errorf("TotalCitations = %d, want 3", s.TotalCitations)
	}
	if s.TotalUsages != 3 {
		t.Errorf("TotalUsages = %d, want 3", s.TotalUsages)
	}
	if s.UsedCitations != 2 || s.UnusedCitations != 1 {
		t.Errorf("used/unused = %d/%d, want 2/1", s.UsedCitations, s.UnusedCitations)
	}
	if s.AverageConfidenceOverall < 0.7999 || s.AverageConfidenceOverall > 0.8001 {
		t.Errorf("overall confidence = %g, want 0.8", s.AverageConfidenceOverall)
	}

	if len(s.CitationsByUsageCount) != 2 {
		t.Fatalf("ranking size = %d, want 2", len(s.CitationsByUsageCount))
	}
	top := s.CitationsByUsageCount[0]
	if top.Key != keyA || top.UsageCount != 2 {
		t.Errorf("top entry = %+v, want %s with 2 usages", top, keyA)
	}
	if top.AvgConfidence < 0.6999 || top.AvgConfidence > 0.7001 {
		t.Errorf("top avg confidence = %g, want 0.7", top.AvgConfidence)
	}
}

func TestReport_RankingTiesAndTruncation(t *testing.T) {
	eng := engine.New(nil)

	// Five citations, each used once: tied counts break by key.
	var keys []string
	for i := 0; i < 5; i++ {
		key, err := eng.AddCitation(engine.AddInput{
			Title:   fmt.Sprintf("Paper %d", i),
			Authors: []string{fmt.Sprintf("Writer%d, W.", i)},
			Year:    2020,
		})
		if err != nil {
			t.Fatalf("AddCitation: %v", err)
		}
		eng.TrackCitation(key, "", "", 1)
		keys = append(keys, key)
	}

	s := Report(eng, 3)
	if len(s.CitationsByUsageCount) != 3 {
		t.Fatalf("ranking size = %d, want topN 3", len(s.CitationsByUsageCount))
	}
	for i := 1; i < len(s.CitationsByUsageCount); i++ {
		if s.CitationsByUsageCount[i-1].Key > s.CitationsByUsageCount[i].Key {
			t.Errorf("tied entries not sorted by key: %v", s.CitationsByUsageCount)
		}
	}
}
