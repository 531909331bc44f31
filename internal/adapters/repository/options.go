package repository

import "github.com/okian/steady/internal/domain/model"

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithEvents seeds the store with an existing history, e.g. one loaded
// from the event-log file. Ids already present are preserved and the
// next assigned id starts above the highest seeded one.
func WithEvents(events []model.ActivityEvent) Option {
	return func(s *TreapStore) {
		s.seed = events
	}
}

// WithNextID overrides the first id handed out by Append. Ignored when
// lower than what the seeded history requires.
func WithNextID(id int64) Option {
	return func(s *TreapStore) {
		if id > 0 {
			s.nextID = id
		}
	}
}
