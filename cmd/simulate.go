package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/steady/internal/domain/model"
	"github.com/okian/steady/internal/simulate"
)

type simulateFlags struct {
	days        int
	seed        int64
	relapseRate float64
}

func newSimulateCmd() *cobra.Command {
	f := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Append a synthetic multi-week history (for demos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.days, "days", 28, "Number of simulated days")
	flags.Int64Var(&f.seed, "seed", 42, "Random seed")
	flags.Float64Var(&f.relapseRate, "relapse-rate", 0.08, "Per-day relapse probability")

	return cmd
}

func runSimulate(cmd *cobra.Command, f *simulateFlags) error {
	ctx := cmd.Context()

	env, err := openEnv(ctx)
	if err != nil {
		return err
	}

	gen := simulate.NewGenerator(
		simulate.WithSeed(f.seed),
		simulate.WithDays(f.days),
		simulate.WithRelapseRate(f.relapseRate),
	)

	specs := gen.Generate()
	for _, spec := range specs {
		if _, err := env.svc.Record(ctx, model.EventType(spec.Type), spec.TS, spec.Value); err != nil {
			return fmt.Errorf("record simulated event: %w", err)
		}
	}
	if err := env.persist(ctx); err != nil {
		return err
	}

	sum := env.svc.Summary(ctx)
	fmt.Printf("simulated %d events over %d days\n", len(specs), f.days)
	fmt.Printf("score %.2f  level %d (%s)\n", sum.Score, sum.Level, sum.Label)
	return nil
}
