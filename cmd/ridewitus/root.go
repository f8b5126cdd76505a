package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/ranger"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	env string
}

// environment resolves the --env flag, falling back to ENVIRONMENT.
func (o *rootOptions) environment() (ridewitus.Environment, error) {
	if o.env == "" {
		return ridewitus.EnvVarOrEnv(ranger.EnvironmentEnvVar, ridewitus.Development), nil
	}

	env, err := ridewitus.ParseEnvironment(o.env)
	if err != nil {
		return "", fmt.Errorf("invalid --env %q: %w", o.env, err)
	}

	return env, nil
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ridewitus",
		Short:         "RideWitUS activity tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.env, "env", "", "environment to run in; overrides "+ranger.EnvironmentEnvVar)

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))

	return cmd
}
