package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false}, // Default
		{"WARN", zapcore.WarnLevel, false},
		{" debug ", zapcore.DebugLevel, false},
		{"warning", zapcore.InfoLevel, true},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := LogConfig{Level: "warn"}.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled at warn level")
	}

	if _, err := (LogConfig{Level: "loud"}).NewLogger(); err == nil {
		t.Error("NewLogger() should reject unknown levels")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %s, want :3000", cfg.Server.Addr)
	}
	if cfg.Database.Path != "./physmap.db" {
		t.Errorf("Database.Path = %s, want ./physmap.db", cfg.Database.Path)
	}
	if cfg.Storage.Key != "physics-mapper-flow" {
		t.Errorf("Storage.Key = %s, want physics-mapper-flow", cfg.Storage.Key)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
	}
	if cfg.Watch.ImportPath != "" {
		t.Errorf("Watch.ImportPath = %s, want empty", cfg.Watch.ImportPath)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  addr: \":8080\"\nlog:\n  development: true\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %s, want :8080", cfg.Server.Addr)
	}
	if !cfg.Log.Development {
		t.Error("Log.Development should be true")
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("Database.Path = %s, want default", cfg.Database.Path)
	}
	if cfg.Storage.Key != DefaultStorageKey {
		t.Errorf("Storage.Key = %s, want default", cfg.Storage.Key)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"syntax": "server: [",
		"level":  "log:\n  level: loud\n",
	}
	for name, content := range tests {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := LoadFromPath(path); err == nil {
			t.Errorf("LoadFromPath(%s) should fail", name)
		}
	}

	if _, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFromPath() should fail for a missing file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = "/var/lib/physmap/graph.db"
	cfg.Watch.ImportPath = "/srv/laws.yaml"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Database.Path != cfg.Database.Path {
		t.Errorf("Database.Path = %s, want %s", loaded.Database.Path, cfg.Database.Path)
	}
	if loaded.Watch.ImportPath != cfg.Watch.ImportPath {
		t.Errorf("Watch.ImportPath = %s, want %s", loaded.Watch.ImportPath, cfg.Watch.ImportPath)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	chdir(t, tmpDir)

	// Should find config in working directory
	found := FindConfigPath("")
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	found = FindConfigPath("")
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	// Explicit path wins when it exists
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(""); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestFindConfigPathBesideDatabase(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")

	project := t.TempDir()
	beside := filepath.Join(project, ConfigFileName)
	if err := DefaultConfig().Save(beside); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	db := filepath.Join(project, "graph.db")

	if found := FindConfigPath(db); found != beside {
		t.Errorf("FindConfigPath(%q) = %s, want %s", db, found, beside)
	}
	if found := FindConfigPath(""); found != "" {
		t.Errorf("FindConfigPath(\"\") = %s, want none", found)
	}

	// Working directory loses to the database directory
	if err := DefaultConfig().Save(ConfigFileName); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if found := FindConfigPath(db); found != beside {
		t.Errorf("FindConfigPath(%q) = %s, want %s", db, found, beside)
	}
}

func TestSearchPathsOrder(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(EnvConfigPath, "/explicit.yaml")

	paths := SearchPaths("data/graph.db")
	if len(paths) != 5 {
		t.Fatalf("SearchPaths() = %v, want 5 candidates", paths)
	}
	if paths[0] != "/explicit.yaml" {
		t.Errorf("first candidate = %s, want the env path", paths[0])
	}
	if !strings.HasSuffix(paths[1], filepath.Join("data", ConfigFileName)) {
		t.Errorf("second candidate = %s, want the database directory", paths[1])
	}
	if want := filepath.Join(xdg, ConfigDirName, "config.yaml"); paths[3] != want {
		t.Errorf("user candidate = %s, want %s", paths[3], want)
	}
	if DefaultConfigPath() != paths[3] {
		t.Errorf("DefaultConfigPath() = %s, want %s", DefaultConfigPath(), paths[3])
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Watch.ImportPath = "laws.yaml"

	summary := cfg.Summary()
	for _, want := range []string{":3000", "physics-mapper-flow", "info", "Watching: laws.yaml"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() = %q, missing %q", summary, want)
		}
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) error: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
