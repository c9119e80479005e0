package storage

import "path/filepath"

// File names inside a store directory.
const (
	CitationsFile = "citations.jsonl"
	UsagesFile    = "usages.jsonl"
	DBFile        = "citations.db"
)

// CitationsPath returns the citations JSONL path inside dir.
func CitationsPath(dir string) string {
	return filepath.Join(dir, CitationsFile)
}

// UsagesPath returns the usages JSONL path inside dir.
func UsagesPath(dir string) string {
	return filepath.Join(dir, UsagesFile)
}

// DBPath returns the SQLite database path inside dir.
func DBPath(dir string) string {
	return filepath.Join(dir, DBFile)
}
