package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "herald",
	Short: "Calendar-rule greeting bot",
	Long:  `Herald decides which greeting applies to each calendar date and posts it to the configured channels.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "herald.yaml", "path to the configuration file")
	rootCmd.AddCommand(serveCmd, previewCmd, checkCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
