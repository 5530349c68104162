package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"tfswitch/internal/config"
	"tfswitch/internal/installer"
	"tfswitch/internal/logger"
	"tfswitch/internal/state"
	"tfswitch/internal/switcher"
	"tfswitch/internal/version"

	"github.com/spf13/cobra"
)

// options holds the values of every command line flag.
type options struct {
	configPath string // --config / -c
	debug      bool   // --debug
	offline    bool   // --offline: never download a missing version
	strict     bool   // --strict: reject text after X.Y.Z
	remove     bool   // --remove / -r
	remote     bool   // list --remote
}

// newRootCmd builds the `tfswitch` command tree.
// The root command takes the version as its only positional argument.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tfswitch [--remove] X.Y.Z",
		Short: "Switch between installed Terraform versions",
		Long: "tfswitch points the Terraform link at the requested version, downloading it first when it is not installed.\n" +
			"With --remove it uninstalls the version instead.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,

		// PersistentPreRun runs before any subcommand and sets up logging.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.remove {
				return runRemove(opts, args[0])
			}
			return runSwitch(cmd.Context(), opts, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultConfigPath(), "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "Do not download missing versions")
	rootCmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Reject versions with text after NUMBER.NUMBER.NUMBER")
	rootCmd.Flags().BoolVarP(&opts.remove, "remove", "r", false, "Uninstall the given version, if it is installed on the system")

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newCurrentCmd(opts))
	return rootCmd
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout)
}

// run is the single place where an error becomes an exit code.
func run(args []string, stdout io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		return 1
	}
	return 0
}

// reportError prints err in the wording users of the tool know.
func reportError(err error) {
	switch {
	case errors.Is(err, version.ErrInvalidFormat):
		logger.Error("[ERROR] The version should have the format NUMBER.NUMBER.NUMBER\n")
		logger.Debug("[DEBUG] %v\n", err)
	case errors.Is(err, switcher.ErrVersionNotInstalled):
		logger.Error("[ERROR] Switch not possible.\n%v\n", err)
	case errors.Is(err, installer.ErrVersionUnavailable):
		logger.Error("[ERROR] Switch not possible.\n%v\n", err)
	default:
		logger.Error("[ERROR] %v\n", err)
	}
}

// loadConfig reads the config file and applies the flags that override it.
func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.offline {
		cfg.Download = false
	}
	if o.strict {
		cfg.StrictVersion = true
	}
	return cfg, nil
}

// newActivator wires the installer in only when downloading is enabled.
func (o *options) newActivator(cfg config.Config, st *state.State) *switcher.Activator {
	var inst switcher.Installer
	if cfg.Download {
		i := installer.New(cfg)
		i.SetProgress(!o.debug)
		inst = i
	}
	return switcher.New(cfg, inst, st)
}

func runSwitch(ctx context.Context, opts *options, raw string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st := state.LoadState(cfg.StatePath)

	res, err := opts.newActivator(cfg, st).Switch(ctx, raw)
	if res.Downloaded {
		state.SaveState(cfg.StatePath, st)
	}
	if err != nil {
		return err
	}

	if res.AlreadyActive {
		logger.Info("[INFO] Version %s is already active\n", raw)
		return nil
	}
	logger.Info("[INFO] Switched %s to version %s\n", cfg.LinkPath, raw)
	return nil
}

func runRemove(opts *options, raw string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st := state.LoadState(cfg.StatePath)

	res, err := opts.newActivator(cfg, st).Remove(raw)
	if err != nil {
		return err
	}
	if res.Removed {
		state.SaveState(cfg.StatePath, st)
	}

	if res.LinkRemoved {
		logger.Warn("[WARN] %s was the active version, %s has been removed\n", raw, cfg.LinkPath)
	}
	if res.Removed {
		logger.Info("[INFO] Version removed.\n")
	} else {
		logger.Info("[INFO] The version is not installed on the system.\n")
	}
	return nil
}
