package cmd

import (
	"github.com/spf13/cobra"

	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/logging"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch both sources without merging",
	Long: `Fetch retrieves the official results and candidate registrations and
reports how many rows each source produced. With --cache set, the raw
payloads are stored so later runs can replay them offline.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		source, err := cmd.Flags().GetString("source")
		if err != nil {
			return err
		}
		switch source {
		case "all":
			err = client.Fetch(cmd.Context())
		case "ectreport":
			err = client.FetchResults(cmd.Context())
		case "vote62":
			err = client.FetchRegistry(cmd.Context())
		default:
			return errors.NewValidationError("source", source, "must be all, ectreport, or vote62")
		}
		if err != nil {
			return err
		}

		logging.Info().
			Int("results", len(client.Results())).
			Int("registrations", len(client.Registry())).
			Msg("Fetch complete")
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("source", "all", "which source to fetch: all, ectreport, or vote62")
	rootCmd.AddCommand(fetchCmd)
}
