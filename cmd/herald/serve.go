package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"herald/internal/astro"
	"herald/internal/bot"
	"herald/internal/config"
	"herald/internal/discord"
	"herald/internal/rules"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the periodic posting loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		b := bot.New(cfg, newSelector(cfg), discord.NewWebhookClient(30*time.Second))
		return b.Run(ctx)
	},
}

func newSelector(cfg *config.Config) *rules.Selector {
	eval := rules.NewEvaluator(astro.Resolver{})
	return rules.NewSelector(eval, cfg.Defaults, cfg.Overrides)
}
