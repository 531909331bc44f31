// Package level maps an aggregate recovery score to a severity band.
package level

// Level is one of six ordered severity bands over [0,100].
// Higher is better.
type Level int

// Severity bands, worst to best.
const (
	SevereAddiction Level = iota + 1
	HeavyAddiction
	ModerateAddiction
	MildAddiction
	NearRecovered
	Recovered
)

// band pairs an inclusive floor with its level. Evaluated from the
// highest floor downward; the first matching floor wins.
type band struct {
	floor float64
	level Level
}

var bands = []band{
	{95, Recovered},
	{80, NearRecovered},
	{60, MildAddiction},
	{40, ModerateAddiction},
	{20, HeavyAddiction},
	{0, SevereAddiction},
}

// Classify maps a score to its severity band. Scores are produced by the
// scoring engine and therefore already clamped to [0,100]; anything below
// every floor classifies as SevereAddiction.
func Classify(score float64) Level {
	for _, b := range bands {
		if score >= b.floor {
			return b.level
		}
	}
	return SevereAddiction
}

// Label returns the human-readable name of the band.
func (l Level) Label() string {
	switch l {
	case SevereAddiction:
		return "severe addiction"
	case HeavyAddiction:
		return "heavy addiction"
	case ModerateAddiction:
		return "moderate addiction"
	case MildAddiction:
		return "mild addiction"
	case NearRecovered:
		return "near-recovered"
	case Recovered:
		return "recovered"
	}
	return "unknown"
}
