package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matsen/citeline/internal/citation"
)

func testSnapshot() citation.Snapshot {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return citation.Snapshot{
		Citations: []citation.Citation{
			{
				Key:   "vaswani2017",
				Title: "Attention Is All You Need",
				Authors: []citation.Author{
					{First: "Ashish", Last: "Vaswani"},
					{First: "Noam", Last: "Shazeer"},
				},
				Year:           2017,
				Journal:        "NeurIPS",
				DOI:            "10.5555/3295222",
				LinkedEntities: []string{"entity-a"},
				Ordinal:        1,
				CreatedAt:      ts,
			},
			{
				Key:       "he2016",
				Title:     "Deep Residual Learning",
				Authors:   []citation.Author{{First: "Kaiming", Last: "He"}},
				Year:      2016,
				Ordinal:   3,
				CreatedAt: ts,
			},
		},
		Usages: []citation.UsageRecord{
			{ID: "u1", CitationKey: "vaswani2017", ContextText: "as shown", Section: "intro", Confidence: 0.9, RecordedAt: ts},
		},
		NextOrdinal: 4,
	}
}

func TestSaveLoadSnapshot_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	snap := testSnapshot()

	if err := SaveSnapshot(dir, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(loaded.Citations, snap.Citations) {
		t.Errorf("citations mismatch:\ngot  %+v\nwant %+v", loaded.Citations, snap.Citations)
	}
	if !reflect.DeepEqual(loaded.Usages, snap.Usages) {
		t.Errorf("usages mismatch:\ngot  %+v\nwant %+v", loaded.Usages, snap.Usages)
	}
	// Counter is recomputed as one past the highest stored ordinal.
	if loaded.NextOrdinal != 4 {
		t.Errorf("NextOrdinal = %d, want 4", loaded.NextOrdinal)
	}
}

func TestSaveSnapshot_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	if err := SaveSnapshot(dir, testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if _, err := os.Stat(CitationsPath(dir)); err != nil {
		t.Errorf("citations file not created: %v", err)
	}
}

func TestLoadSnapshot_MissingFiles(t *testing.T) {
	snap, err := LoadSnapshot(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSnapshot on empty dir: %v", err)
	}
	if len(snap.Citations) != 0 || len(snap.Usages) != 0 {
		t.Errorf("empty dir snapshot = %+v, want empty", snap)
	}
	if snap.NextOrdinal != 1 {
		t.Errorf("NextOrdinal = %d, want 1", snap.NextOrdinal)
	}
}

func TestReadCitations_OneDocumentPerLine(t *testing.T) {
	dir := t.TempDir()
	if err := SaveSnapshot(dir, testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	data, err := os.ReadFile(CitationsPath(dir))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("citations file has %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			t.Errorf("line %d is not a JSON document: %q", i, line)
		}
	}
}

func TestReadCitations_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := CitationsPath(dir)
	if err := os.WriteFile(path, []byte("{\"key\":\"ok2020\"}\nnot json\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := ReadCitations(path)
	if err == nil {
		t.Fatal("want error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want line number", err)
	}
}

func TestReadCitations_SkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := CitationsPath(dir)
	content := "{\"key\":\"a2020\",\"title\":\"A\",\"authors\":[{\"last\":\"A\"}],\"created_at\":\"2026-03-01T12:00:00Z\"}\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cites, err := ReadCitations(path)
	if err != nil {
		t.Fatalf("ReadCitations: %v", err)
	}
	if len(cites) != 1 {
		t.Errorf("got %d citations, want 1", len(cites))
	}
}
