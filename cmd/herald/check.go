package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"herald/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"ok: %d channel(s), %d default rule(s), %d override rule(s), policy %s, schedule %q (%s)\n",
			len(cfg.Channels), len(cfg.Defaults), len(cfg.Overrides), cfg.Policy, cfg.Schedule, cfg.Timezone)
		return nil
	},
}
