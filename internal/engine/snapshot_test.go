package engine

import (
	"errors"
	"testing"

	"github.com/matsen/citeline/internal/citation"
)

func populatedEngine(t *testing.T) *Engine {
	t.Helper()
	eng := New(nil)
	key1, err := eng.AddCitation(AddInput{
		Title:   "Attention Is All You Need",
		Authors: []string{"Vaswani, Ashish", "Shazeer, Noam"},
		Year:    2017,
		Journal: "NeurIPS",
	})
	if err != nil {
		t.Fatalf("AddCitation: %v", err)
	}
	if _, err := eng.AddCitation(AddInput{
		Title:   "Deep Residual Learning",
		Authors: []string{"He, Kaiming"},
		Year:    2016,
	}); err != nil {
		t.Fatalf("AddCitation: %v", err)
	}
	if _, err := eng.TrackCitation(key1, "as shown in", "intro", 0.95); err != nil {
		t.Fatalf("TrackCitation: %v", err)
	}
	return eng
}

func TestSnapshotRestore_Roundtrip(t *testing.T) {
	eng := populatedEngine(t)
	snap := eng.Snapshot()

	restored := New(nil)
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	orig := eng.ListCitations(false)
	got := restored.ListCitations(false)
	if len(got) != len(orig) {
		t.Fatalf("restored %d citations, want %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i].Key != orig[i].Key || got[i].Ordinal != orig[i].Ordinal {
			t.Errorf("citation %d = %+v, want %+v", i, got[i], orig[i])
		}
	}
	if len(restored.Usages()) != len(eng.Usages()) {
		t.Errorf("restored %d usages, want %d", len(restored.Usages()), len(eng.Usages()))
	}

	// Dedup still works against restored state.
	key, err := restored.AddCitation(AddInput{
		Title:   "Attention Is All You Need",
		Authors: []string{"Vaswani, Ashish"},
		Year:    2017,
	})
	if err != nil {
		t.Fatalf("AddCitation after restore: %v", err)
	}
	if key != "vaswani2017" {
		t.Errorf("dedupe after restore returned %q, want vaswani2017", key)
	}

	// Disambiguation counters are rebuilt too.
	key, err = restored.AddCitation(AddInput{
		Title:   "Another Vaswani Paper",
		Authors: []string{"Vaswani, Ashish"},
		Year:    2017,
	})
	if err != nil {
		t.Fatalf("AddCitation after restore: %v", err)
	}
	if key != "vaswani2017a" {
		t.Errorf("disambiguated key = %q, want vaswani2017a", key)
	}
}

func TestRestore_OrdinalCounterContinues(t *testing.T) {
	eng := populatedEngine(t)

	restored := New(nil)
	if err := restored.Restore(eng.Snapshot()); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	// he2016 has no ordinal yet; its first usage must continue the sequence.
	if _, err := restored.TrackCitation("he2016", "", "", 1); err != nil {
		t.Fatalf("TrackCitation: %v", err)
	}
	c, _ := restored.GetCitation("he2016")
	if c.Ordinal != 2 {
		t.Errorf("ordinal = %d, want 2", c.Ordinal)
	}
}

func TestRestore_RejectsBadSnapshots(t *testing.T) {
	valid := citation.Citation{
		Key:     "smith2020",
		Title:   "A Paper",
		Authors: []citation.Author{{First: "J.", Last: "Smith"}},
		Year:    2020,
	}

	tests := []struct {
		name string
		snap citation.Snapshot
	}{
		{
			name: "missing title",
			snap: citation.Snapshot{Citations: []citation.Citation{{
				Key:     "x2020",
				Authors: []citation.Author{{Last: "X"}},
			}}},
		},
		{
			name: "duplicate key",
			snap: citation.Snapshot{Citations: []citation.Citation{valid, valid}},
		},
		{
			name: "dangling usage",
			snap: citation.Snapshot{
				Citations: []citation.Citation{valid},
				Usages:    []citation.UsageRecord{{ID: "u1", CitationKey: "ghost2020", Confidence: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := populatedEngine(t)
			before := len(eng.ListCitations(false))

			err := eng.Restore(tt.snap)
			var cerr citation.ConsistencyError
			if !errors.As(err, &cerr) {
				t.Fatalf("Restore error = %v, want ConsistencyError", err)
			}
			// Engine is untouched on error.
			if n := len(eng.ListCitations(false)); n != before {
				t.Errorf("citations after failed restore = %d, want %d", n, before)
			}
		})
	}
}
