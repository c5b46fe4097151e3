package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mentorly/cron"
)

func NewWorkerCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume availability notifications from the asynq queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return cron.RunAvailabilityWorker(ctx, opts.Config, opts.Logger)
		},
	}
}
