package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	ConfigPath string

	Config *Config
	Logger *log.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the fgdiff CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fgdiff",
		Short: "fgdiff - compare two FGD entity-definition schemas",
		Long: `fgdiff compares two versions of an FGD entity-definition schema and
reports added, removed, and modified entities, field-level changes, and
a backward-porting complexity estimate per modified entity.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			explicit := cmd.Flags().Changed("config")
			path := opts.ConfigPath
			if path == "" {
				path = DefaultConfigFile
			}
			cfg, err := LoadConfig(path, explicit)
			if err != nil {
				return WrapExitError(ExitCommandError, "loading config", err)
			}
			opts.Config = cfg

			// Config supplies the format default; an explicit flag wins.
			if !cmd.Flags().Changed("format") && cfg.Format != "" {
				opts.Format = cfg.Format
			}
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			level := log.WarnLevel
			if opts.Verbose {
				level = log.DebugLevel
			}
			opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
				Level:  level,
				Prefix: "fgdiff",
			})
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file path (default .fgdiff.toml)")

	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
