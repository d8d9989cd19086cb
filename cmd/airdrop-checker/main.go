// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the airdrop-checker CLI: it serves the
// eligibility form and runs one-off checks from the terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/airdrop-checker/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE; tests may replace it.
	logger = zap.NewNop()

	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets
)

// rootCmd is the base command for the airdrop-checker CLI.
var rootCmd = &cobra.Command{
	Use:   "airdrop-checker",
	Short: "Simulated airdrop eligibility checker",
	Long: `airdrop-checker computes a simulated airdrop allocation for a wallet from
its length, an optional social handle, and claimed community roles, then asks a
hosted text-generation model for a short celebratory message.

Use "serve" to run the web form and "check" for a single check in the terminal.
Allocation values are a simulation and are not tied to any ledger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = log

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./airdrop-checker.yaml or ~/.config/airdrop-checker/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("provider", "", "text-generation provider: gemini or claude")
	rootCmd.PersistentFlags().String("model", "", "AI model identifier for the celebratory message")

	viper.BindPFlag("ai.provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("ai.model", rootCmd.PersistentFlags().Lookup("model"))
}

func initConfig() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("airdrop-checker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "airdrop-checker"))
		}
	}

	viper.SetEnvPrefix("AIRDROP_CHECKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setConfigDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
