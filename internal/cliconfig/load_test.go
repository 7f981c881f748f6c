package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&cfg.ControllerAddr, "controller", cfg.ControllerAddr, "")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "")
	return cmd
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
controller_addr = "10.0.0.1:1"
log_level = "warn"
stack_size = 4096
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FELFSHIP_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cmd := newTestCommand(&cfg)
	if err := cmd.Flags().Parse([]string{"--controller", "10.0.0.9:9"}); err != nil {
		t.Fatal(err)
	}

	if err := Load(cmd, path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ControllerAddr != "10.0.0.9:9" {
		t.Errorf("ControllerAddr = %s, want flag value", cfg.ControllerAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want env value", cfg.LogLevel)
	}
	if cfg.StackSize != 4096 {
		t.Errorf("StackSize = %d, want file value", cfg.StackSize)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	err := Load(newTestCommand(&cfg), filepath.Join(t.TempDir(), "absent.toml"), &cfg)
	if err == nil {
		t.Fatal("Load with a missing explicit config file succeeded")
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()
	if err := Load(newTestCommand(&cfg), "", &cfg); err != nil {
		t.Fatalf("Load without a default config file: %v", err)
	}
}
