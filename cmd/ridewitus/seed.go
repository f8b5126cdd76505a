package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/ridewitus/ranger"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed pricing tiers, and the admin account in development",
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

			report, err := rng.Seed(cmd.Context())
			if err != nil {
				return err
			}

			printSeedReport(cmd.OutOrStdout(), report, env.IsDevelopment())
			return nil
		},
	}
}

// printSeedReport writes one status line per seeded kind of record.
func printSeedReport(w io.Writer, report ranger.SeedReport, dev bool) {
	done := color.New(color.FgGreen)
	skipped := color.New(color.FgYellow)

	if report.Pricing {
		done.Fprintln(w, "✔ pricing tiers seeded")
	} else {
		skipped.Fprintln(w, "• pricing tiers already present")
	}

	if !dev {
		return
	}

	if report.Admin {
		done.Fprintf(w, "✔ admin account %s created\n", ranger.DevAdminEmail)
	} else {
		skipped.Fprintf(w, "• admin account %s already present\n", ranger.DevAdminEmail)
	}
}
