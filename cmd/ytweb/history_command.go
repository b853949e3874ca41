package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently finished downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, cleanup, err := ctx.bootstrap(false)
			defer cleanup()
			if err != nil {
				return err
			}
			if appCtx.Store == nil {
				return errors.New("history is disabled (store.driver is none)")
			}

			records, err := appCtx.Store.ListDownloads(cmd.Context(), limit)
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}
