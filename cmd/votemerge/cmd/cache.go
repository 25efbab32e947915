package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/siamvotes/votemerge/internal/cache"
	"github.com/siamvotes/votemerge/pkg/errors"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the payload cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove cached payloads older than --max-age",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.CachePath == "" {
			return errors.NewValidationError("cache_path", "", "no cache configured")
		}

		maxAge, err := cmd.Flags().GetDuration("max-age")
		if err != nil {
			return err
		}

		pc, err := cache.Open(cfg.CachePath)
		if err != nil {
			return err
		}
		defer func() { _ = pc.Close() }()

		removed, err := pc.Purge(time.Now().Add(-maxAge))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached payloads\n", removed)
		return nil
	},
}

func init() {
	cachePurgeCmd.Flags().Duration("max-age", 24*time.Hour, "remove entries older than this")
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
