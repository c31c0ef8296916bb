package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammerkit/fgdiff/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	DBPath string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Print a saved comparison report",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "history database path")

	return cmd
}

func runShow(opts *ShowOptions, id string, cmd *cobra.Command) error {
	dbPath := pick(opts.DBPath, opts.Config.DBPath, DefaultDBPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening history database", err)
	}
	defer st.Close()

	run, err := st.GetRun(context.Background(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, "unknown run", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "reading run", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "yaml" {
		var tree any
		if err := json.Unmarshal(run.Report, &tree); err != nil {
			return WrapExitError(ExitCommandError, "decoding stored report", err)
		}
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		return formatter.Encode(tree)
	}

	// Stored reports are canonical JSON; reindent for display.
	var buf bytes.Buffer
	if err := json.Indent(&buf, run.Report, "", "  "); err != nil {
		return WrapExitError(ExitCommandError, "formatting stored report", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", buf.Bytes())
	return err
}
