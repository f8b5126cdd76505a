package main

import (
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/ridewitus/ranger"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.environment()
			if err != nil {
				return err
			}

			rng, err := ranger.New(ranger.WithContext(cmd.Context()), ranger.WithEnv(env.String()))
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}
}
