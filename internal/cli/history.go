package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammerkit/fgdiff/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List saved comparison runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "history database path")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	dbPath := pick(opts.DBPath, opts.Config.DBPath, DefaultDBPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening history database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format != "text" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		return formatter.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no saved runs")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  %s -> %s  (+%d -%d ~%d)\n",
			run.ID,
			run.CreatedAt.UTC().Format(time.RFC3339),
			run.OldLabel, run.NewLabel,
			run.NewEntities, run.RemovedEntities, run.ModifiedEntities,
		)
	}
	return nil
}
