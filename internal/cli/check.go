package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	opts := syncOptions{}
	cmd := &cobra.Command{
		Use:   "check [PATH]",
		Short: "Fail when any requirements.txt is out of sync with Pipfile.lock",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd, opts, args)
		},
	}
	addSyncFlags(cmd, &opts)
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts syncOptions, args []string) error {
	service := newAppService()
	result, err := service.Check(ctx, syncRequest(cmd, opts, args))
	if len(result.Report.Files) > 0 {
		printSyncReport(cmd.OutOrStdout(), result.Report)
	}
	return err
}
