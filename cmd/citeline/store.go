package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/matsen/citeline/internal/citation"
	"github.com/matsen/citeline/internal/config"
	"github.com/matsen/citeline/internal/engine"
	"github.com/matsen/citeline/internal/storage"
)

// newLogger builds the engine logger: silent unless --verbose, and always
// on stderr so stdout stays parseable.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// findRepo locates the citeline repository, falling back to the globally
// configured default repo. Exits with ExitConfigError when none is found.
func findRepo() string {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(root)
	if err != nil {
		if fallback := config.GetDefaultRepo(); fallback != "" && config.IsRepository(fallback) {
			return fallback
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return repoRoot
}

// loadEngine reads the JSONL files under the repository into a fresh engine.
// Exits on failure.
func loadEngine(repoRoot string) *engine.Engine {
	snap, err := storage.LoadSnapshot(config.DataPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "loading citation data: %v", err)
	}

	eng := engine.New(newLogger())
	if err := eng.Restore(snap); err != nil {
		exitWithError(ExitDataError, "restoring citation data: %v", err)
	}
	return eng
}

// saveEngine writes the engine state back to the JSONL files and refreshes
// the SQLite mirror. The mirror is ephemeral, so a rebuild failure is not
// fatal to the write. Exits when the JSONL write fails.
func saveEngine(repoRoot string, eng *engine.Engine) {
	snap := eng.Snapshot()
	dir := config.DataPath(repoRoot)

	if err := storage.SaveSnapshot(dir, snap); err != nil {
		exitWithError(ExitError, "saving citation data: %v", err)
	}

	refreshMirror(dir, snap, os.Stderr)
}

// refreshMirror rebuilds the SQLite search index from a snapshot. The mirror
// is ephemeral, so failures are reported to w rather than aborting the
// command; a later `citeline rebuild` recovers the index.
func refreshMirror(dir string, snap citation.Snapshot, w io.Writer) {
	db, err := storage.OpenDB(storage.DBPath(dir))
	if err != nil {
		fmt.Fprintf(w, "warning: search index not updated: %v\n", err)
		return
	}
	defer db.Close()
	if _, err := db.RebuildFromSnapshot(snap); err != nil {
		fmt.Fprintf(w, "warning: search index not updated: %v\n", err)
	}
}

// repoConfig loads effective configuration for the repository, merging
// repo config over global config and built-in defaults.
func repoConfig(repoRoot string) *config.Config {
	repo, err := config.Load(repoRoot)
	if err != nil {
		repo = nil
	}
	return config.Effective(repo)
}
