package main

import (
	"github.com/spf13/cobra"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <url>",
		Short: "List the formats available for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, cleanup, err := ctx.bootstrap(false)
			defer cleanup()
			if err != nil {
				return err
			}

			info, err := appCtx.Tool.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderMediaInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}
