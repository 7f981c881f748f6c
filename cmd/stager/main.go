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

	"github.com/bft-labs/felfship/internal/adapters/dispatch"
	"github.com/bft-labs/felfship/internal/adapters/mem"
	"github.com/bft-labs/felfship/internal/adapters/proc"
	"github.com/bft-labs/felfship/internal/app"
	"github.com/bft-labs/felfship/internal/cliconfig"
	"github.com/bft-labs/felfship/internal/domain"
	"github.com/bft-labs/felfship/pkg/felf"
	logAdapter "github.com/bft-labs/felfship/pkg/log"
)

const longHelp = `Connect to the controller, receive one FELF payload, map it at the
address it names and jump to its entry point with the connection's socket
as the only argument.

The stager takes no arguments when spawned by felflisten; configure it
through the config file or FELFSHIP_* environment variables.`

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
		Use:           "stager",
		Short:         "Fetch a FELF payload from the controller and execute it",
		Long:          longHelp,
		Version:       fmt.Sprintf("%s (felf %s) %s/%s", getVersion(), felf.Version, runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cliconfig.Load(cmd, cfgPath, &cfg); err != nil {
				return err
			}
			if err := cfg.ValidateWorker(); err != nil {
				return err
			}

			log = cliconfig.Logger(cfg.Level())
			if id := os.Getenv(proc.WorkerIDEnv); id != "" {
				log = log.With().Str("worker_id", id).Logger()
			}
			logger := logAdapter.NewZerologAdapterWithLogger(log)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := app.NewWorker(
				app.WorkerConfig{
					ControllerAddr: cfg.ControllerAddr,
					MaxPayload:     cfg.MaxPayload(),
				},
				&net.Dialer{},
				mem.NewMapper(),
				dispatch.New(cfg.StackSize, logger),
				logger,
			)
			return w.Run(ctx)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.felfship/config.toml)")
	root.Flags().StringVar(&cfg.ControllerAddr, "controller", cfg.ControllerAddr, "controller address (host:port)")
	root.Flags().IntVar(&cfg.MaxPayloadBytes, "max-payload-bytes", cfg.MaxPayloadBytes, "reject payloads declaring more bytes (0: no limit)")
	root.Flags().IntVar(&cfg.StackSize, "stack-size", cfg.StackSize, "stack size given to the loaded code")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		logAbort(log, err)
		os.Exit(1)
	}
}

// logAbort names the failing stage and the OS error number when known.
func logAbort(log zerolog.Logger, err error) {
	ev := log.Error().Err(err)
	if stage, ok := domain.StageOf(err); ok {
		ev = ev.Str("stage", stage.String())
	}
	if errno, ok := domain.Errno(err); ok {
		ev = ev.Int("errno", int(errno))
	}
	ev.Msg("stager aborted")
}
