package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/citeline/internal/citation"
)

func initRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(CitelinePath(root), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	return root
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	root := initRepo(t)

	cfg := &Config{DefaultStyle: "ieee", DefaultSortBy: "year", TopN: 5}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultStyle != "apa" || cfg.DefaultSortBy != "author" || cfg.TopN != 10 {
		t.Errorf("Default() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty is valid", Config{}, false},
		{"valid values", Config{DefaultStyle: "nature", DefaultSortBy: "title", TopN: 3}, false},
		{"bad style", Config{DefaultStyle: "chicago"}, true},
		{"bad sort", Config{DefaultSortBy: "pages"}, true},
		{"negative top-n", Config{TopN: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsRepository(t *testing.T) {
	root := initRepo(t)
	if !IsRepository(root) {
		t.Error("IsRepository = false for initialized repo")
	}
	if IsRepository(t.TempDir()) {
		t.Error("IsRepository = true for plain directory")
	}
}

func TestFindRepository_WalksUp(t *testing.T) {
	root := initRepo(t)
	nested := filepath.Join(root, "docs", "chapter1")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, err := FindRepository(nested)
	if err != nil {
		t.Fatalf("FindRepository: %v", err)
	}
	// Resolve symlinks so macOS /var vs /private/var paths compare equal.
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(found)
	if gotRoot != wantRoot {
		t.Errorf("FindRepository = %q, want %q", gotRoot, wantRoot)
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Error("FindRepository should fail outside a repository")
	}
}

func TestLoad_MissingConfig(t *testing.T) {
	root := initRepo(t)
	if _, err := Load(root); err == nil {
		t.Error("Load should fail when config.json is absent")
	}
}

func TestEffective_Precedence(t *testing.T) {
	// Isolate from any real global config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	got := Effective(nil)
	if got.DefaultStyle != string(citation.APA) || got.TopN != 10 {
		t.Errorf("Effective(nil) = %+v, want built-in defaults", got)
	}

	repo := &Config{DefaultStyle: "mla", TopN: 7}
	got = Effective(repo)
	if got.DefaultStyle != "mla" {
		t.Errorf("DefaultStyle = %q, repo config must win", got.DefaultStyle)
	}
	if got.DefaultSortBy != "author" {
		t.Errorf("DefaultSortBy = %q, unset repo field falls back to default", got.DefaultSortBy)
	}
	if got.TopN != 7 {
		t.Errorf("TopN = %d, want 7", got.TopN)
	}
}

func TestGlobalConfig_FileOverride(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	dir := filepath.Join(configHome, GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "default_style: nature\ndefault_sort_by: year\n"
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := Effective(nil)
	if got.DefaultStyle != "nature" || got.DefaultSortBy != "year" {
		t.Errorf("Effective with global config = %+v", got)
	}

	// Repo config still outranks global.
	got = Effective(&Config{DefaultStyle: "apa"})
	if got.DefaultStyle != "apa" {
		t.Errorf("DefaultStyle = %q, repo config must win over global", got.DefaultStyle)
	}
	if got.DefaultSortBy != "year" {
		t.Errorf("DefaultSortBy = %q, global fills gaps repo leaves", got.DefaultSortBy)
	}
}

func TestLoadGlobalConfig_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if *cfg != (GlobalConfig{}) {
		t.Errorf("missing file config = %+v, want zero value", cfg)
	}
}

func TestParseStyleIntegration(t *testing.T) {
	// Validate rejects what ParseStyle rejects; keep them in sync.
	cfg := Config{DefaultStyle: "APA"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("case-insensitive style rejected: %v", err)
	}
	var verr citation.ValidationError
	bad := Config{DefaultStyle: "turabian"}
	if err := bad.Validate(); !errors.As(err, &verr) {
		t.Errorf("unknown style error = %v, want ValidationError", err)
	}
}
