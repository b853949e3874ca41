package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, cleanup, err := ctx.bootstrap(false)
			defer cleanup()
			if err != nil {
				return err
			}

			msg, err := appCtx.Tool.Update(cmd.Context())
			if err != nil {
				return err
			}
			appCtx.Logger.Info("yt-dlp update: %s", msg)
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
