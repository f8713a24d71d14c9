package config

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Watch    WatchConfig    `yaml:"watch"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig configures the sqlite file holding the graph record
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig names the record the graph is stored under
type StorageConfig struct {
	Key string `yaml:"key"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, stack traces on warn
}

// WatchConfig points at a graph file that is re-imported whenever it changes.
// Empty disables watching.
type WatchConfig struct {
	ImportPath string `yaml:"import_path"`
}
