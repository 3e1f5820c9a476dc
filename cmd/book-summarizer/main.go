// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the book-summarizer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from --verbose before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the book-summarizer CLI.
var rootCmd = &cobra.Command{
	Use:   "book-summarizer",
	Short: "Summarize public-domain books chapter by chapter",
	Long: `book-summarizer builds chapter-by-chapter summaries of Project Gutenberg
books. A summary can combine the opening lines of each chapter, the main
characters and key terms, quoted sentences picked by an extractive
summarizer, and generated summaries from a pointer-generator model.

Books are read from data/raw_books/<id>.txt, cleaned, divided into chapters,
and summarized into results/summaries/. Summaries are also indexed in a
searchable results database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Any flag of the running command can also come from the config
		// file or a BOOK_SUMMARIZER_* environment variable.
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		log, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return err
		}
		logger = log
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./book-summarizer.yaml or ~/.config/book-summarizer/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for books (contains raw_books/, books/, book_chapters/, summaries/)")
	rootCmd.PersistentFlags().String("results-dir", "results", "base directory for output (contains summaries/, analysis/, index/)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("book-summarizer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "book-summarizer"))
		}
	}

	viper.SetEnvPrefix("BOOK_SUMMARIZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
