package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML keys.
type FileConfig struct {
	ListenAddr      string `toml:"listen_addr"`
	ControllerAddr  string `toml:"controller_addr"`
	WorkerPath      string `toml:"worker_path"`
	ServeAddr       string `toml:"serve_addr"`
	PayloadPath     string `toml:"payload_path"`
	MaxPayloadBytes int    `toml:"max_payload_bytes"`
	StackSize       int    `toml:"stack_size"`
	LogLevel        string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.felfship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".felfship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("controller", fc.ControllerAddr, &cfg.ControllerAddr)
	s.setString("worker", fc.WorkerPath, &cfg.WorkerPath)
	s.setString("serve", fc.ServeAddr, &cfg.ServeAddr)
	s.setString("payload", fc.PayloadPath, &cfg.PayloadPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("max-payload-bytes", fc.MaxPayloadBytes, &cfg.MaxPayloadBytes)
	s.setInt("stack-size", fc.StackSize, &cfg.StackSize)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
