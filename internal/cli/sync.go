package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pipsync/internal/app"
	"pipsync/internal/types"
)

type syncOptions struct {
	Force     bool
	InPlace   bool
	Dev       bool
	Exclude   []string
	Pipenv    string
	GraphFile string
	Report    string
	DryRun    bool
}

func newSyncCommand() *cobra.Command {
	opts := syncOptions{}
	cmd := &cobra.Command{
		Use:   "sync [PATH]",
		Short: "Regenerate requirements.txt files from Pipfile.lock",
		Long: "Find every requirements.direct.txt below the project root (requirements.txt with --in-place) " +
			"and write the pinned requirements of its packages and their dependencies to the sibling requirements.txt.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), cmd, opts, args)
		},
	}
	addSyncFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compute requirements without writing files")
	return cmd
}

// addSyncFlags registers the flags shared by sync and check.
func addSyncFlags(cmd *cobra.Command, opts *syncOptions) {
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Drop requirements that are no longer declared in the Pipfile")
	cmd.Flags().BoolVarP(&opts.InPlace, "in-place", "i", false, "Rewrite requirements.txt files in place")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Include dev-packages from the Pipfile")
	cmd.Flags().StringSliceVarP(&opts.Exclude, "exclude", "x", nil, "Top-level directories to skip")
	cmd.Flags().StringVar(&opts.Pipenv, "pipenv", "pipenv", "pipenv executable")
	cmd.Flags().StringVar(&opts.GraphFile, "graph-file", "", "Read the dependency graph from a captured pipenv graph --json file")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Write a YAML sync report to this path")

	_ = viper.BindPFlag("force", cmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("in_place", cmd.Flags().Lookup("in-place"))
	_ = viper.BindPFlag("dev", cmd.Flags().Lookup("dev"))
	_ = viper.BindPFlag("exclude", cmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("pipenv", cmd.Flags().Lookup("pipenv"))
	_ = viper.BindPFlag("graph_file", cmd.Flags().Lookup("graph-file"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
}

func syncRequest(cmd *cobra.Command, opts syncOptions, args []string) app.SyncRequest {
	req := app.SyncRequest{
		Force:      resolveBool(cmd, opts.Force, "force", "force"),
		InPlace:    resolveBool(cmd, opts.InPlace, "in_place", "in-place"),
		IncludeDev: resolveBool(cmd, opts.Dev, "dev", "dev"),
		Exclude:    resolveStrings(cmd, opts.Exclude, "exclude", "exclude"),
		Pipenv:     resolveString(cmd, opts.Pipenv, "pipenv", "pipenv"),
		GraphFile:  resolveString(cmd, opts.GraphFile, "graph_file", "graph-file"),
		ReportPath: resolveString(cmd, opts.Report, "report", "report"),
		DryRun:     opts.DryRun,
	}
	if len(args) > 0 {
		req.Root = args[0]
	}
	return req
}

func runSync(ctx context.Context, cmd *cobra.Command, opts syncOptions, args []string) error {
	service := newAppService()
	result, err := service.Sync(ctx, syncRequest(cmd, opts, args))
	if err != nil {
		return err
	}
	printSyncReport(cmd.OutOrStdout(), result.Report)
	return nil
}

func printSyncReport(w io.Writer, report types.SyncReport) {
	for _, file := range report.Files {
		if file.Status == types.FileStatusSkipped {
			continue
		}
		fmt.Fprintf(w, "%s: %s (%d lines)\n", file.Output, file.Status, file.Lines)
		for _, change := range file.Changes {
			switch change.Action {
			case types.ChangeActionAdded:
				fmt.Fprintf(w, "  + %s\n", change.To)
			case types.ChangeActionRemoved:
				fmt.Fprintf(w, "  - %s\n", change.From)
			default:
				fmt.Fprintf(w, "  ~ %s -> %s (%s)\n", change.From, change.To, change.Action)
			}
		}
	}
	fmt.Fprintf(w, "synced %d files | unchanged %d | skipped %d\n", report.Synced, report.Unchanged, report.Skipped)
}
