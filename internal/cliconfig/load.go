package cliconfig

import (
	"fmt"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

// Load fills cfg from the config file, then FELFSHIP_* variables. Flags the
// user set on cmd keep their values. An empty cfgPath selects
// DefaultConfigPath; a missing default file is not an error.
func Load(cmd *cobra.Command, cfgPath string, cfg *Config) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	explicit := cfgPath != ""
	if !explicit {
		cfgPath = DefaultConfigPath()
	}
	if cfgPath != "" && (explicit || FileExists(cfgPath)) {
		fc, err := LoadFileConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	return ApplyEnvConfig(cfg, changed)
}
