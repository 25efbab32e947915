package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/siamvotes/votemerge/internal/tabular"
	"github.com/siamvotes/votemerge/pkg/errors"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge from cached payloads",
	Long: `Merge replays a previous fetch: source payloads are served from the
cache where present, so a warm cache runs the reconciliation without
touching the network. Requires --cache (or cache_path in the config).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.CachePath == "" {
			return errors.NewValidationError("cache_path", "", "merge replays cached payloads; run fetch with --cache first")
		}

		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		result, err := client.Run(cmd.Context())
		if err != nil {
			return err
		}

		return tabular.WriteSummary(os.Stdout, result, 0)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
