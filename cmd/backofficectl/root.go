package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shipdesk/backoffice/pkg/datefmt"
)

const commandTimeout = 5 * time.Minute

func newRootCmd(open backendFactory) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "backofficectl",
		Short:        "Maintenance tasks for the back-office database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (defaults to ./.env when present)")

	withBackend := func(run func(ctx context.Context, cmd *cobra.Command, b *backend) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			b, err := open(ctx, envFile)
			if err != nil {
				return err
			}
			defer func() {
				if b.close != nil {
					_ = b.close(context.Background())
				}
			}()
			return run(ctx, cmd, b)
		}
	}

	root.AddCommand(newRenormalizeCmd(withBackend), newStatsCmd(withBackend))
	return root
}

type backendRunner func(run func(ctx context.Context, cmd *cobra.Command, b *backend) error) func(*cobra.Command, []string) error

func newRenormalizeCmd(withBackend backendRunner) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "renormalize",
		Short: "Re-apply date, time and identifier normalization to stored records",
		Long: `Re-apply write-path normalization to every record in the express, exception,
container and inventory collections and save the records that changed.

Use --dry-run to count the affected records without writing.`,
		Args: cobra.NoArgs,
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b *backend) error {
			total := 0
			for _, c := range b.collections {
				changed, err := c.svc.Renormalize(ctx, dryRun)
				if err != nil {
					return fmt.Errorf("renormalize %s: %w", c.name, err)
				}
				total += changed
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %d changed\n", c.name, changed)
			}

			verb := "updated"
			if dryRun {
				verb = "would be updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d records %s\n", total, verb)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing them")
	return cmd
}

func newStatsCmd(withBackend backendRunner) *cobra.Command {
	var nowFlag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the month-over-month exception report as JSON",
		Args:  cobra.NoArgs,
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b *backend) error {
			loc := b.location
			if loc == nil {
				loc = time.Local
			}
			now := time.Now().In(loc)
			if nowFlag != "" {
				normalizer := datefmt.Normalizer{Location: loc}
				parsed, ok := normalizer.ParseCanonicalDate(normalizer.NormalizeDate(nowFlag))
				if !ok {
					return fmt.Errorf("--now %q is not a MM/DD/YYYY date", nowFlag)
				}
				now = parsed
			}

			report, err := b.stats.SummaryAt(ctx, now)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}),
	}
	cmd.Flags().StringVar(&nowFlag, "now", "", "evaluate the report as of this date (MM/DD/YYYY)")
	return cmd
}
