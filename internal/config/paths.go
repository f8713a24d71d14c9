package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "PHYSMAP_CONFIG"
	// ConfigFileName is looked up beside the database and in the working directory
	ConfigFileName = "physmap.yaml"
	// ConfigDirName is the directory under the user and system config roots
	ConfigDirName = "physmap"

	userFileName = "config.yaml"
)

// SearchPaths lists the config file candidates in priority order. A
// non-empty dbPath adds the directory holding the database, so a project
// directory carrying its own graph.db and physmap.yaml is self-contained.
func SearchPaths(dbPath string) []string {
	var paths []string
	if env := os.Getenv(EnvConfigPath); env != "" {
		paths = append(paths, env)
	}
	if dbPath != "" {
		beside := filepath.Join(filepath.Dir(dbPath), ConfigFileName)
		if abs, err := filepath.Abs(beside); err == nil {
			beside = abs
		}
		paths = append(paths, beside)
	}
	if abs, err := filepath.Abs(ConfigFileName); err == nil {
		paths = append(paths, abs)
	} else {
		paths = append(paths, ConfigFileName)
	}
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ConfigDirName, userFileName))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, userFileName))
}

// FindConfigPath returns the first existing candidate from SearchPaths, or
// an empty string when there is none.
func FindConfigPath(dbPath string) string {
	seen := make(map[string]bool)
	for _, path := range SearchPaths(dbPath) {
		if seen[path] {
			continue
		}
		seen[path] = true
		if isFile(path) {
			return path
		}
	}
	return ""
}

// DefaultConfigPath is where `config init` writes when no path is given
func DefaultConfigPath() string {
	if dir := userConfigDir(); dir != "" {
		return filepath.Join(dir, ConfigDirName, userFileName)
	}
	return ConfigFileName
}

// userConfigDir honours XDG_CONFIG_HOME and falls back to ~/.config
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
