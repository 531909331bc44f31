package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/steady/internal/domain/model"
)

// Sleep quality bounds enforced at the input boundary; the engine itself
// never rejects, it only clamps.
const (
	minSleepQuality = 0
	maxSleepQuality = 100
)

type recordFlags struct {
	at      string
	quality int
}

func newRecordCmd() *cobra.Command {
	f := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "record <success|failure|exercise|sleep>",
		Short: "Record an activity event and report the updated score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.at, "at", "now", "Event time: now, RFC3339, \"2006-01-02 15:04\" or \"2006-01-02\"")
	flags.IntVar(&f.quality, "quality", -1, "Sleep quality score 0-100 (sleep events only)")

	return cmd
}

// parseEventType validates a user-entered event type.
func parseEventType(s string) (model.EventType, error) {
	t := model.EventType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown event type %q (want success, failure, exercise or sleep)", s)
	}
	return t, nil
}

// validateQuality enforces the sleep quality domain before an event is
// constructed.
func validateQuality(t model.EventType, quality int, explicit bool) (int, error) {
	if t != model.EventSleep {
		if explicit {
			return 0, fmt.Errorf("--quality only applies to sleep events")
		}
		return 0, nil
	}
	if !explicit {
		return 0, fmt.Errorf("sleep events require --quality")
	}
	if quality < minSleepQuality || quality > maxSleepQuality {
		return 0, fmt.Errorf("sleep quality %d out of range [%d, %d]", quality, minSleepQuality, maxSleepQuality)
	}
	return quality, nil
}

func runRecord(cmd *cobra.Command, typeArg string, f *recordFlags) error {
	ctx := cmd.Context()

	t, err := parseEventType(typeArg)
	if err != nil {
		return err
	}

	env, err := openEnv(ctx)
	if err != nil {
		return err
	}

	loc, err := env.cfg.Location()
	if err != nil {
		return err
	}
	at, err := parseAt(f.at, loc)
	if err != nil {
		return err
	}

	quality, err := validateQuality(t, f.quality, cmd.Flags().Changed("quality"))
	if err != nil {
		return err
	}

	ev, err := env.svc.Record(ctx, t, at, quality)
	if err != nil {
		return err
	}
	if err := env.persist(ctx); err != nil {
		return err
	}

	sum := env.svc.Summary(ctx)
	fmt.Printf("recorded %s #%d (delta %+.2f)\n", ev.Type, ev.ID, ev.ScoreDelta)
	fmt.Printf("score %.2f  level %d (%s)\n", sum.Score, sum.Level, sum.Label)
	return nil
}
