package cmd

import (
	"fmt"
	"tfswitch/internal/state"

	"github.com/spf13/cobra"
)

// newCurrentCmd prints the version the active link points at.
func newCurrentCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the active version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cur, err := opts.newActivator(cfg, state.LoadState(cfg.StatePath)).Current()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cur.Version)
			return nil
		},
	}
}
