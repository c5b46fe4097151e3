package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"mentorly/services/admin"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Register mentors and students from a YAML file",
		Long: `Register mentors and students listed in a YAML document.

Example:
  mentorly seed --file ./seed.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := admin.LoadSeedFile(opts.File)
			if err != nil {
				return err
			}
			app, err := Bootstrap(cmd.Context(), opts.Config, opts.Logger)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.AdminService().Seed(cmd.Context(), seed)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "path to the seed YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
