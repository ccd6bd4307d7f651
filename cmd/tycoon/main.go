package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	cl "github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/cli"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/config"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	client := cl.NewClient(cfg.OpsBaseURL, cfg.OpsToken)

	root := &cobra.Command{
		Use:          "tycoon",
		Short:        "Ops CLI for the tycoon game bot",
		SilenceUsage: true,
	}

	root.AddCommand(
		newStatusCmd(client),
		newStocksCmd(client),
		newLeaderboardCmd(client),
		newTickCmd(client),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func newStatusCmd(client *cl.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tick loop status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			stats, err := client.Status(ctx)
			if err != nil {
				return err
			}
			renderStatus(stats)
			return nil
		},
	}
}

func newStocksCmd(client *cl.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "stocks",
		Short: "Show current market prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			prices, err := client.Stocks(ctx)
			if err != nil {
				return err
			}
			renderStocks(prices)
			return nil
		},
	}
}

func newLeaderboardCmd(client *cl.Client) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the richest players",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			rows, err := client.Leaderboard(ctx, limit)
			if err != nil {
				return err
			}
			renderLeaderboard(rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of rows")
	return cmd
}

func newTickCmd(client *cl.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "tick <income|events|stocks|loan_sweep|tax_sweep>",
		Short: "Force one pass of a tick loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			if err := client.RunTick(ctx, args[0]); err != nil {
				return err
			}
			renderTickRan(args[0])
			return nil
		},
	}
}
