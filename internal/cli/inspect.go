package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pipsync/internal/app"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect REPORT",
		Short: "Summarise a sync report written with --report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, path string) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{ReportPath: path})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "root: %s\n", result.Root)
	if !result.GeneratedAt.IsZero() {
		fmt.Fprintf(out, "generated: %s\n", result.GeneratedAt.Format(time.RFC3339))
	}
	if result.DryRun {
		fmt.Fprintln(out, "dry run: true")
	}
	fmt.Fprintf(out, "files: %d synced, %d unchanged, %d skipped\n", result.Synced, result.Unchanged, result.Skipped)
	for _, file := range result.Files {
		fmt.Fprintf(out, "- %s (%s): %d lines, %d pruned, %d changes\n", file.Output, file.Status, file.Lines, file.Pruned, file.Changes)
	}
	if len(result.Actions) > 0 {
		fmt.Fprintln(out, "changes:")
		for _, action := range result.Actions {
			fmt.Fprintf(out, "- %s: %d\n", action.Action, action.Count)
		}
	}
	return nil
}
