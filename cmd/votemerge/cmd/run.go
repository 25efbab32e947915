package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/siamvotes/votemerge/internal/tabular"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, merge, and write the augmented dataset",
	Long: `Run executes the full pipeline: fetch official results and candidate
registrations, reconcile them into the augmented dataset, write the CSV
and diagnostics files, and print a summary of the run.`,
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

		result, err := client.Run(cmd.Context())
		if err != nil {
			return err
		}

		if err := tabular.WriteSummary(os.Stdout, result, 0); err != nil {
			return err
		}

		if viper.GetBool("strict") && result.HasIssues() {
			return &exitError{code: 2, msg: "diagnostics reported"}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("output-dir", "", "directory for output files")
	runCmd.Flags().String("augmented-file", "", "augmented dataset file name")
	runCmd.Flags().String("diagnostics-file", "", "diagnostics file name (.json or .yaml)")
	runCmd.Flags().String("duplicate-policy", "", "duplicate registry key policy: last_wins or first_wins")
	runCmd.Flags().Bool("name-fallback", false, "match unkeyed rows by normalized candidate name")
	runCmd.Flags().Int("sample-limit", 0, "diagnostics shown per kind in the summary")
	runCmd.Flags().Bool("strict", false, "exit non-zero when any diagnostic is reported")

	bindings := map[string]string{
		"output_dir":       "output-dir",
		"augmented_file":   "augmented-file",
		"diagnostics_file": "diagnostics-file",
		"duplicate_policy": "duplicate-policy",
		"name_fallback":    "name-fallback",
		"sample_limit":     "sample-limit",
		"strict":           "strict",
	}
	for key, flag := range bindings {
		cobra.CheckErr(viper.BindPFlag(key, runCmd.Flags().Lookup(flag)))
	}

	rootCmd.AddCommand(runCmd)
}
