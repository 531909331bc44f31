package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/steady/internal/domain/model"
)

type editFlags struct {
	eventType string
	at        string
	quality   int
}

func newEditCmd() *cobra.Command {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace an event and replay every stored delta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.eventType, "type", "", "New event type")
	flags.StringVar(&f.at, "at", "", "New event time")
	flags.IntVar(&f.quality, "quality", -1, "New sleep quality score 0-100")

	return cmd
}

func runEdit(cmd *cobra.Command, idArg string, f *editFlags) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", idArg)
	}

	env, err := openEnv(ctx)
	if err != nil {
		return err
	}

	ev, err := env.svc.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("type") {
		t, err := parseEventType(f.eventType)
		if err != nil {
			return err
		}
		ev.Type = t
	}
	if cmd.Flags().Changed("at") {
		loc, err := env.cfg.Location()
		if err != nil {
			return err
		}
		at, err := parseAt(f.at, loc)
		if err != nil {
			return err
		}
		ev.TS = at
	}
	if ev.Type == model.EventSleep {
		if cmd.Flags().Changed("quality") {
			q, err := validateQuality(model.EventSleep, f.quality, true)
			if err != nil {
				return err
			}
			ev.Value = q
		}
	} else {
		if cmd.Flags().Changed("quality") {
			return fmt.Errorf("--quality only applies to sleep events")
		}
		ev.Value = 0
	}

	ev, err = env.svc.Edit(ctx, ev)
	if err != nil {
		return err
	}
	if err := env.persist(ctx); err != nil {
		return err
	}

	sum := env.svc.Summary(ctx)
	fmt.Printf("edited #%d (delta %+.2f)\n", ev.ID, ev.ScoreDelta)
	fmt.Printf("score %.2f  level %d (%s)\n", sum.Score, sum.Level, sum.Label)
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event and replay every stored delta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			env, err := openEnv(ctx)
			if err != nil {
				return err
			}
			if err := env.svc.Remove(ctx, id); err != nil {
				return err
			}
			if err := env.persist(ctx); err != nil {
				return err
			}

			sum := env.svc.Summary(ctx)
			fmt.Printf("deleted #%d\n", id)
			fmt.Printf("score %.2f  level %d (%s)\n", sum.Score, sum.Level, sum.Label)
			return nil
		},
	}
}

func newRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Re-derive every stored score delta from scratch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			env, err := openEnv(ctx)
			if err != nil {
				return err
			}
			if err := env.svc.Recompute(ctx); err != nil {
				return err
			}
			if err := env.persist(ctx); err != nil {
				return err
			}

			sum := env.svc.Summary(ctx)
			fmt.Printf("recomputed %d events\n", sum.Events)
			fmt.Printf("score %.2f  level %d (%s)\n", sum.Score, sum.Level, sum.Label)
			return nil
		},
	}
}
