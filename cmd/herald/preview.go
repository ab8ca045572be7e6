package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"herald/internal/bot"
	"herald/internal/config"
)

var (
	previewDate    string
	previewChannel string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the message(s) that would be posted on a date, without delivering",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		now := time.Now().In(cfg.Location)
		if previewDate != "" {
			d, err := time.ParseInLocation("2006-01-02", previewDate, cfg.Location)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", previewDate, err)
			}
			now = d
		}

		ch := &config.Channel{}
		if previewChannel != "" {
			named, ok := cfg.ChannelByName(previewChannel)
			if !ok {
				return fmt.Errorf("unknown channel %q", previewChannel)
			}
			ch = named
		}

		b := bot.New(cfg, newSelector(cfg), nil)
		messages, err := b.MessagesFor(ch, now)
		if err != nil {
			return err
		}
		for _, msg := range messages {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewDate, "date", "", "date to preview (YYYY-MM-DD, default today)")
	previewCmd.Flags().StringVar(&previewChannel, "channel", "", "channel whose rule pool to include")
}
