package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hammerkit/fgdiff/internal/diff"
	"github.com/hammerkit/fgdiff/internal/store"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	OldLabel string
	NewLabel string
	Output   string // report file path
	Save     bool
	DBPath   string
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <old-schema> <new-schema>",
		Short: "Compare two FGD schema files",
		Long: `Compare two FGD schema files and report entity additions, removals,
and field-level modifications, plus a backward-porting complexity
estimate per modified entity.

Schema files may be FGD source (.fgd) or a pre-parsed JSON form (.json).`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OldLabel, "old-label", "", "label for the old schema version (default: file name)")
	cmd.Flags().StringVar(&opts.NewLabel, "new-label", "", "label for the new schema version (default: file name)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "also write the JSON report to a file")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save the run to the history database")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "history database path")

	return cmd
}

func runCompare(opts *CompareOptions, oldPath, newPath string, cmd *cobra.Command) error {
	oldSchema, err := LoadSchema(oldPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading old schema", err)
	}
	opts.Logger.Debug("loaded old schema", "path", oldPath, "entities", len(oldSchema.Entities))

	newSchema, err := LoadSchema(newPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading new schema", err)
	}
	opts.Logger.Debug("loaded new schema", "path", newPath, "entities", len(newSchema.Entities))

	report, err := diff.Compare(oldSchema, newSchema, diff.Options{
		OldLabel: pick(opts.OldLabel, opts.Config.OldLabel, filepath.Base(oldPath)),
		NewLabel: pick(opts.NewLabel, opts.Config.NewLabel, filepath.Base(newPath)),
	})
	if err != nil {
		return WrapExitError(ExitFailure, "comparing schemas", err)
	}

	for _, w := range report.Warnings {
		opts.Logger.Warn(w.Detail, "code", w.Code, "side", w.Side, "entity", w.Entity)
	}

	if opts.Save {
		if err := saveRun(opts, report); err != nil {
			return WrapExitError(ExitCommandError, "saving run", err)
		}
	}

	if opts.Output != "" {
		data, err := diff.MarshalCanonicalIndent(report)
		if err != nil {
			return WrapExitError(ExitCommandError, "serializing report", err)
		}
		if err := os.WriteFile(opts.Output, append(data, '\n'), 0644); err != nil {
			return WrapExitError(ExitCommandError, "writing report file", err)
		}
		opts.Logger.Debug("wrote report", "path", opts.Output)
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case "json":
		data, err := diff.MarshalCanonicalIndent(report)
		if err != nil {
			return WrapExitError(ExitCommandError, "serializing report", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	case "yaml":
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		return formatter.Encode(report)
	default:
		renderTextReport(out, report)
		return nil
	}
}

func saveRun(opts *CompareOptions, report *diff.Report) error {
	data, err := diff.MarshalCanonical(report)
	if err != nil {
		return err
	}

	dbPath := pick(opts.DBPath, opts.Config.DBPath, DefaultDBPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	run := store.Run{
		ID:               uuid.Must(uuid.NewV7()).String(),
		CreatedAt:        time.Now().UTC(),
		OldLabel:         report.Metadata.OldLabel,
		NewLabel:         report.Metadata.NewLabel,
		NewEntities:      len(report.NewEntities),
		RemovedEntities:  len(report.RemovedEntities),
		ModifiedEntities: len(report.ModifiedEntities),
		Report:           data,
	}
	if err := st.SaveRun(context.Background(), run); err != nil {
		return err
	}
	opts.Logger.Info("saved run", "id", run.ID, "db", dbPath)
	return nil
}

// renderTextReport writes the human-readable summary: header counts,
// the top modified entities ranked by change count, and the leading
// backward-porting issues.
func renderTextReport(w io.Writer, report *diff.Report) {
	fmt.Fprintf(w, "Comparison: %s -> %s\n", report.Metadata.OldLabel, report.Metadata.NewLabel)
	fmt.Fprintf(w, "Date: %s\n\n", report.Metadata.ComparisonDate)

	fmt.Fprintf(w, "New entities:            %d\n", len(report.NewEntities))
	fmt.Fprintf(w, "Removed entities:        %d\n", len(report.RemovedEntities))
	fmt.Fprintf(w, "Modified entities:       %d\n", len(report.ModifiedEntities))
	fmt.Fprintf(w, "Backward porting issues: %d\n", len(report.BackwardPortingIssues))
	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings:                %d\n", len(report.Warnings))
	}

	if len(report.ModifiedEntities) > 0 {
		fmt.Fprintf(w, "\nTop modified entities:\n")
		for _, name := range rankModified(report.ModifiedEntities, 10) {
			d := report.ModifiedEntities[name]
			fmt.Fprintf(w, "\n%s (porting complexity: %s, score %g):\n", name, d.PortingComplexity, d.ComplexityScore)
			renderCategory(w, "Properties", d.Summary.Properties)
			renderCategory(w, "Inputs", d.Summary.Inputs)
			renderCategory(w, "Outputs", d.Summary.Outputs)
			renderCategory(w, "Spawnflags", d.Summary.Spawnflags)
			if d.ClassType != nil {
				fmt.Fprintf(w, "  Class type changed from %s to %s\n", d.ClassType.Old, d.ClassType.New)
			}
			if d.Description != nil {
				fmt.Fprintf(w, "  Description changed\n")
			}
			if d.Definitions != nil {
				fmt.Fprintf(w, "  Definitions changed\n")
			}
		}
	}

	if len(report.BackwardPortingIssues) > 0 {
		fmt.Fprintf(w, "\nTop backward porting issues:\n")
		issues := report.BackwardPortingIssues
		if len(issues) > 10 {
			issues = issues[:10]
		}
		for _, issue := range issues {
			fmt.Fprintf(w, "  [%s] %s", issue.Severity, issue.Entity)
			if issue.Property != "" {
				fmt.Fprintf(w, ".%s", issue.Property)
			}
			fmt.Fprintf(w, ": %s\n", issue.Issue)
		}
	}
}

func renderCategory(w io.Writer, label string, counts diff.CategoryCounts) {
	if counts.Total() == 0 {
		return
	}
	fmt.Fprintf(w, "  %s: %d new, %d removed, %d modified\n", label, counts.Added, counts.Removed, counts.Modified)
}

// rankModified orders modified entity names by total change count,
// descending, ties broken by name, and truncates to limit.
func rankModified(modified map[string]*diff.EntityDiff, limit int) []string {
	names := make([]string, 0, len(modified))
	for name := range modified {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ti := modified[names[i]].Summary.TotalChanges()
		tj := modified[names[j]].Summary.TotalChanges()
		if ti != tj {
			return ti > tj
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
