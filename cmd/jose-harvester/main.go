// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the jose-harvester CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the jose-harvester CLI.
var rootCmd = &cobra.Command{
	Use:   "jose-harvester",
	Short: "Harvest paper metadata from the JOSE article listing",
	Long: `jose-harvester walks the paginated paper listing of the Journal of Open
Source Education, extracts one bibliographic record per paper, and stores the
records in a local SQLite database keyed by paper URL. Re-running the tool
updates existing rows in place.

Use harvest to scrape, export to dump the table, and stats for row counts.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./jose-harvester.yaml or ~/.config/jose-harvester/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jose-harvester")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jose-harvester"))
		}
	}

	viper.SetEnvPrefix("JOSE_HARVESTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
