package cmd

import (
	"errors"
	"fmt"
	"tfswitch/internal/installer"
	"tfswitch/internal/logger"
	"tfswitch/internal/state"

	"github.com/spf13/cobra"
)

// newListCmd lists the installed versions, or with --remote the versions the release server offers.
func newListCmd(opts *options) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed versions (* marks the active one)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if opts.remote {
				if !cfg.Download {
					return errors.New("remote listing needs downloading enabled")
				}
				versions, err := installer.New(cfg).RemoteVersions(cmd.Context())
				if err != nil {
					return err
				}
				for _, v := range versions {
					fmt.Fprintln(out, v.String())
				}
				return nil
			}

			installed, err := opts.newActivator(cfg, state.LoadState(cfg.StatePath)).List()
			if err != nil {
				return err
			}
			if len(installed) == 0 {
				logger.Info("[INFO] No versions installed in %s\n", cfg.InstallDir)
				return nil
			}
			for _, v := range installed {
				marker := " "
				if v.Active {
					marker = "*"
				}
				suffix := ""
				if v.Managed {
					suffix = " (downloaded)"
				}
				fmt.Fprintf(out, "%s %s%s\n", marker, v.Version, suffix)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&opts.remote, "remote", false, "List the versions available for download")
	return listCmd
}
