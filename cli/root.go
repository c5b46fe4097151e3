package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mentorly/config"
	"mentorly/utils"
)

// RootOptions holds state shared by all commands once configuration is loaded.
type RootOptions struct {
	Config config.Config
	Logger *zap.Logger
}

// NewRootCommand creates the mentorly CLI. With no subcommand it serves HTTP.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "mentorly",
		Short:         "Mentor/student appointment booking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
			if err != nil {
				return err
			}
			utils.SetLogger(logger)
			opts.Config, opts.Logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
	}

	serve := NewServeCommand(opts)
	cmd.RunE = serve.RunE

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewWorkerCommand(opts))

	return cmd
}

// Execute runs the root command and reports any error on stderr.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
