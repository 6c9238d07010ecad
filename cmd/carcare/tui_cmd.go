package main

import (
	"fmt"

	"github.com/fentz26/carcare/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the full-screen interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.session(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := tui.New(svc).Run(cmd.Context()); err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}
			if svc.Unsaved() {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: unsaved changes were not written to '%s'.\n", svc.Store().Path())
			}
			return nil
		},
	}
}
