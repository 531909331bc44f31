// Package simulate generates plausible synthetic activity histories for
// demos and engine exercise. Generation is deterministic for a given
// seed.
package simulate

import (
	"math/rand"
	"time"
)

// Default generation parameters.
const (
	defaultDays        = 28
	defaultSeed        = 42
	defaultRelapseRate = 0.08 // chance of a relapse on any given day

	successRate    = 0.8 // chance of a daily success check-in
	exerciseRate   = 0.4 // chance of a daily exercise session
	clusterRate    = 0.5 // chance a relapse day spawns a second relapse
	sleepQualityMu = 68  // mean nightly sleep quality
	sleepQualitySD = 14  // spread of nightly sleep quality
	maxSleep       = 100
)

// Spec describes one generated event before it is recorded.
type Spec struct {
	Type  string
	TS    time.Time
	Value int
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithDays sets the number of simulated days.
func WithDays(days int) Option {
	return func(g *Generator) {
		if days > 0 {
			g.days = days
		}
	}
}

// WithStart sets the first simulated day. Defaults to days before now,
// so the history ends at the present.
func WithStart(start time.Time) Option {
	return func(g *Generator) {
		g.start = start
	}
}

// WithRelapseRate sets the per-day relapse probability.
func WithRelapseRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.relapseRate = rate
		}
	}
}

// Generator produces a synthetic multi-week history.
type Generator struct {
	seed        int64
	days        int
	start       time.Time
	relapseRate float64
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		seed:        defaultSeed,
		days:        defaultDays,
		relapseRate: defaultRelapseRate,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.start.IsZero() {
		g.start = time.Now().UTC().AddDate(0, 0, -g.days).Truncate(24 * time.Hour)
	}
	return g
}

// Generate returns event specs in chronological order.
func (g *Generator) Generate() []Spec {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic synthetic data

	var specs []Spec
	for d := 0; d < g.days; d++ {
		day := g.start.AddDate(0, 0, d)

		// Nightly sleep entry, recorded in the morning.
		quality := int(sleepQualityMu + rng.NormFloat64()*sleepQualitySD)
		if quality < 0 {
			quality = 0
		}
		if quality > maxSleep {
			quality = maxSleep
		}
		specs = append(specs, Spec{
			Type:  "sleep",
			TS:    day.Add(7*time.Hour + time.Duration(rng.Intn(60))*time.Minute),
			Value: quality,
		})

		if rng.Float64() < exerciseRate {
			specs = append(specs, Spec{
				Type: "exercise",
				TS:   day.Add(17*time.Hour + time.Duration(rng.Intn(120))*time.Minute),
			})
		}

		if rng.Float64() < g.relapseRate {
			relapseAt := day.Add(20*time.Hour + time.Duration(rng.Intn(120))*time.Minute)
			specs = append(specs, Spec{Type: "failure", TS: relapseAt})
			// Relapses cluster: a bad evening often has a second slip.
			if rng.Float64() < clusterRate {
				specs = append(specs, Spec{
					Type: "failure",
					TS:   relapseAt.Add(time.Duration(30+rng.Intn(90)) * time.Minute),
				})
			}
		} else if rng.Float64() < successRate {
			specs = append(specs, Spec{
				Type: "success",
				TS:   day.Add(21*time.Hour + time.Duration(rng.Intn(60))*time.Minute),
			})
		}
	}
	return specs
}
