package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rezonia/tariffmill/internal/refdata"
)

var (
	version = "1.0.0"

	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
	dbPath       string
	domestic     string
)

var rootCmd = &cobra.Command{
	Use:   "tariffmill",
	Short: "Tariff classification for commercial invoice lines",
	Long: `TariffMill enriches commercial invoice lines from a parts reference
database, splits them into per-material derivative lines with prorated
values, resolves declaration codes and origin flags, and reconciles the
computed totals against the declared invoice total.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (TARIFFMILL_*)
  3. Config file (~/.tariffmill/config.yaml)
  4. Defaults

Examples:
  # Process an invoice CSV against the reference database
  tariffmill process invoice.csv --db parts.db --declared-total 12500.00

  # Look up a part
  tariffmill parts BTT-4100 --db parts.db

  # Start the HTTP API
  tariffmill serve --db parts.db --address :8080`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.tariffmill/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the reference SQLite database (env: TARIFFMILL_DB)")
	rootCmd.PersistentFlags().StringVar(&domestic, "domestic-country", "", "Country code treated as domestic for origin flags (default: US)")

	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("domestic_country", rootCmd.PersistentFlags().Lookup("domestic-country"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.tariffmill")
			viper.SetConfigType("yaml")
			viper.SetConfigName("config")
		}
	}

	viper.SetEnvPrefix("TARIFFMILL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	if dbPath == "" {
		dbPath = viper.GetString("db")
	}
	if domestic == "" {
		domestic = viper.GetString("domestic_country")
	}
}

// openStore opens the reference database configured via flag, env or
// config file and loads the initial snapshot.
func openStore() (*refdata.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("no reference database configured (use --db or TARIFFMILL_DB)")
	}
	store, err := refdata.OpenStore(dbPath)
	if err != nil {
		return nil, err
	}
	snap := store.Snapshot()
	printVerbose("Loaded %d parts, %d exclusions from %s\n", snap.PartCount(), snap.ExclusionCount(), dbPath)
	return store, nil
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
