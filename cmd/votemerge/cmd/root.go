// Package cmd implements the votemerge command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/siamvotes/votemerge/internal/config"
	"github.com/siamvotes/votemerge/pkg/logging"
)

var (
	configFile string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "votemerge",
	Short: "Merge official election results with candidate registrations",
	Long: `Votemerge joins official Thai election results from the ECT report
site with candidate ballot registrations from Vote62, producing one
augmented dataset with a named candidate and party on every result row,
plus a diagnostics report of every data-quality issue found on the way.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.votemerge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().String("cache", "", "SQLite payload cache file (empty disables caching)")
	rootCmd.PersistentFlags().String("ect-static-base", "", "override ECT reference-data base URL")
	rootCmd.PersistentFlags().String("ect-stats-base", "", "override ECT statistics base URL")
	rootCmd.PersistentFlags().String("vote62-url", "", "override Vote62 structure document URL")

	bindings := map[string]string{
		"cache_path":      "cache",
		"ect_static_base": "ect-static-base",
		"ect_stats_base":  "ect-stats-base",
		"vote62_url":      "vote62-url",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".votemerge")
	}

	// Load .env files before Viper env binding; .env.local overrides .env.
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Overload(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}

	viper.SetEnvPrefix("votemerge")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// loadConfig resolves the effective configuration from Viper.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := viper.GetString("log_level")
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "warn"
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" && !verbose && !quiet {
		level = envLevel
	}

	format := viper.GetString("log_format")
	if envFormat := os.Getenv("LOG_FORMAT"); envFormat != "" {
		format = envFormat
	}

	logging.Configure(level, format)
}
