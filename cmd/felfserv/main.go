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

	"github.com/bft-labs/felfship/internal/adapters/fs"
	"github.com/bft-labs/felfship/internal/app"
	"github.com/bft-labs/felfship/internal/cliconfig"
	"github.com/bft-labs/felfship/pkg/felf"
	logAdapter "github.com/bft-labs/felfship/pkg/log"
)

const longHelp = `Serve a FELF payload to every stager that connects, then print
whatever the loaded code sends back.

The payload file may be a FELF container or a statically linked ELF, which
is packed on load. The file is reloaded when it changes; a change that does
not validate keeps the previous payload.`

var exampleUsage = `  felfserv --serve 0.0.0.0:1234 --payload shell.felf
  felfserv 0.0.0.0:1234 ./shell.elf`

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
		Use:           "felfserv [addr] [payload]",
		Short:         "Serve FELF payloads to stagers",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s (felf %s) %s/%s", getVersion(), felf.Version, runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cliconfig.Load(cmd, cfgPath, &cfg); err != nil {
				return err
			}
			// Positional arguments override everything else.
			if len(args) > 0 {
				cfg.ServeAddr = args[0]
			}
			if len(args) > 1 {
				cfg.PayloadPath = args[1]
			}
			if err := cfg.ValidateController(); err != nil {
				return err
			}
			log = cliconfig.Logger(cfg.Level())
			logger := logAdapter.NewZerologAdapterWithLogger(log)

			payload := fs.NewPayloadFile(cfg.PayloadPath, logger)
			if err := payload.Load(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				if err := payload.Watch(ctx); err != nil {
					log.Warn().Err(err).Msg("payload reload disabled")
				}
			}()

			ln, err := net.Listen("tcp", cfg.ServeAddr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return app.NewController(payload, os.Stdout, logger).Serve(ctx, ln)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.felfship/config.toml)")
	root.Flags().StringVar(&cfg.ServeAddr, "serve", cfg.ServeAddr, "address stagers connect to")
	root.Flags().StringVar(&cfg.PayloadPath, "payload", cfg.PayloadPath, "FELF or ELF file to serve")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("felfserv")
		os.Exit(1)
	}
}
