// Package storage persists citation snapshots in JSONL and SQLite formats.
// JSONL files are the git-friendly source of truth; the SQLite database is
// an ephemeral mirror rebuilt from them for querying. Persistence is a
// collaborator concern: the engine itself never touches disk.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/citeline/internal/citation"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines
// (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadCitations reads all citations from a JSONL file. A missing file
// yields an empty slice, not an error.
func ReadCitations(path string) ([]citation.Citation, error) {
	var cites []citation.Citation
	err := readLines(path, func(line []byte, lineNum int) error {
		var c citation.Citation
		if err := json.Unmarshal(line, &c); err != nil {
			return fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		cites = append(cites, c)
		return nil
	})
	return cites, err
}

// ReadUsages reads all usage records from a JSONL file. A missing file
// yields an empty slice, not an error.
func ReadUsages(path string) ([]citation.UsageRecord, error) {
	var recs []citation.UsageRecord
	err := readLines(path, func(line []byte, lineNum int) error {
		var rec citation.UsageRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		recs = append(recs, rec)
		return nil
	})
	return recs, err
}

// readLines streams non-empty lines of a JSONL file to fn.
func readLines(path string, fn func(line []byte, lineNum int) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line, lineNum); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// WriteCitations writes all citations to a JSONL file, replacing existing
// content.
func WriteCitations(path string, cites []citation.Citation) error {
	return writeLines(path, len(cites), func(i int) (any, error) {
		return cites[i], nil
	})
}

// WriteUsages writes all usage records to a JSONL file, replacing existing
// content.
func WriteUsages(path string, recs []citation.UsageRecord) error {
	return writeLines(path, len(recs), func(i int) (any, error) {
		return recs[i], nil
	})
}

// writeLines writes n records to path, one JSON document per line.
func writeLines(path string, n int, record func(i int) (any, error)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		v, err := record(i)
		if err != nil {
			return err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// SaveSnapshot writes engine state to the citations and usages JSONL
// files under dir, creating the directory if needed.
func SaveSnapshot(dir string, snap citation.Snapshot) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	if err := WriteCitations(CitationsPath(dir), snap.Citations); err != nil {
		return fmt.Errorf("writing citations: %w", err)
	}
	if err := WriteUsages(UsagesPath(dir), snap.Usages); err != nil {
		return fmt.Errorf("writing usages: %w", err)
	}
	return nil
}

// LoadSnapshot reads engine state back from dir. The ordinal counter is
// recomputed from the stored citations: ordinals are assigned sequentially,
// so the next one is always one past the highest frozen value.
func LoadSnapshot(dir string) (citation.Snapshot, error) {
	cites, err := ReadCitations(CitationsPath(dir))
	if err != nil {
		return citation.Snapshot{}, fmt.Errorf("reading citations: %w", err)
	}
	recs, err := ReadUsages(UsagesPath(dir))
	if err != nil {
		return citation.Snapshot{}, fmt.Errorf("reading usages: %w", err)
	}

	next := 1
	for _, c := range cites {
		if c.Ordinal >= next {
			next = c.Ordinal + 1
		}
	}
	return citation.Snapshot{Citations: cites, Usages: recs, NextOrdinal: next}, nil
}
