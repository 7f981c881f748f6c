package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bft-labs/felfship/internal/adapters/fs"
	"github.com/bft-labs/felfship/internal/cliconfig"
	"github.com/bft-labs/felfship/pkg/felf"
)

const longHelp = `Pack code into a FELF container.

By default the input is a statically linked ELF executable: its loadable
segments are flattened into one body based at the lowest segment address,
with the ELF entry point as entry. With --raw the input is a flat code blob
and --base and --entry are required.`

var exampleUsage = `  felfpack shell.elf shell.felf
  felfpack --raw --base 0x400000 --entry 0x400000 shell.bin shell.felf`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type packOptions struct {
	raw   bool
	base  uint32
	entry uint32
}

func main() {
	var opts packOptions

	log := cliconfig.Logger(zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "felfpack <input> <output>",
		Short:         "Pack an ELF or raw code blob into a FELF container",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s (felf %s) %s/%s", getVersion(), felf.Version, runtime.GOOS, runtime.GOARCH),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if opts.raw && (!cmd.Flags().Changed("base") || !cmd.Flags().Changed("entry")) {
				return fmt.Errorf("--raw requires --base and --entry")
			}

			out, err := pack(in, opts)
			if err != nil {
				return err
			}
			h, _, err := felf.Parse(out)
			if err != nil {
				return err
			}
			if err := fs.WriteFileAtomic(args[1], out, 0o644); err != nil {
				return err
			}

			log.Info().
				Str("output", args[1]).
				Int("bytes", len(out)).
				Str("entry", fmt.Sprintf("%#x", h.Entry)).
				Str("base", fmt.Sprintf("%#x", h.Base)).
				Msg("packed")
			return nil
		},
	}

	root.Flags().BoolVar(&opts.raw, "raw", false, "treat the input as a flat code blob")
	root.Flags().Uint32Var(&opts.base, "base", 0, "load address of the code (raw mode)")
	root.Flags().Uint32Var(&opts.entry, "entry", 0, "entry address (raw mode)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("felfpack")
		os.Exit(1)
	}
}

func pack(in []byte, opts packOptions) ([]byte, error) {
	if opts.raw {
		return felf.Encode(felf.Header{Entry: opts.entry, Base: opts.base}, in), nil
	}
	if !felf.IsELF(in) {
		return nil, fmt.Errorf("input is not an ELF file; use --raw for flat code")
	}
	return felf.PackELF(bytes.NewReader(in))
}
