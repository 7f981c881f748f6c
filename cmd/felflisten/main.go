package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bft-labs/felfship/internal/adapters/proc"
	"github.com/bft-labs/felfship/internal/app"
	"github.com/bft-labs/felfship/internal/cliconfig"
	"github.com/bft-labs/felfship/pkg/felf"
	logAdapter "github.com/bft-labs/felfship/pkg/log"
)

const longHelp = `Accept connections and start one stager process per connection.

Nothing is exchanged over the accepted connection; it is closed as soon as
the worker has been started. Workers are not supervised.`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger(zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "felflisten",
		Short:         "Spawn a stager for every inbound connection",
		Long:          longHelp,
		Version:       fmt.Sprintf("%s (felf %s) %s/%s", getVersion(), felf.Version, runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cliconfig.Load(cmd, cfgPath, &cfg); err != nil {
				return err
			}
			if err := cfg.ValidateListener(); err != nil {
				return err
			}
			log = cliconfig.Logger(cfg.Level())
			logger := logAdapter.NewZerologAdapterWithLogger(log)

			log.Info().
				Str("listen", cfg.ListenAddr).
				Str("worker", cfg.WorkerPath).
				Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.ListenAddr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			l := app.NewListener(proc.NewSpawner(cfg.WorkerPath, logger), logger)
			return l.Serve(ctx, ln)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.felfship/config.toml)")
	root.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "address to accept spawn connections on")
	root.Flags().StringVar(&cfg.WorkerPath, "worker", cfg.WorkerPath, "stager executable to start per connection")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("felflisten")
		os.Exit(1)
	}
}
