package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current score and severity level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, err := openEnv(ctx)
			if err != nil {
				return err
			}
			sum := env.svc.Summary(ctx)
			fmt.Printf("score %.2f  level %d (%s)  events %d\n", sum.Score, sum.Level, sum.Label, sum.Events)
			return nil
		},
	}
}

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent events with their score deltas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, err := openEnv(ctx)
			if err != nil {
				return err
			}
			entries, err := env.svc.History(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no events recorded")
				return nil
			}
			for _, e := range entries {
				if e.Type == "sleep" {
					fmt.Printf("#%-4d %s  %-8s quality=%-3d %+.2f\n",
						e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Value, e.Delta)
					continue
				}
				fmt.Printf("#%-4d %s  %-8s             %+.2f\n",
					e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Delta)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max events to show (default: configured history_limit)")
	return cmd
}
