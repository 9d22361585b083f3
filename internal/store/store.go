package store

import (
	"context"

	"github.com/ubck/survey-cli/internal/model"
)

// Store is the history store for finalized day rosters, keyed by day index.
// Aggregation re-reads it on every build, so an edit to a prior day is
// visible to all later builds without any refresh step.
type Store interface {
	// SaveDay inserts or replaces the record for a day.
	SaveDay(ctx context.Context, rec model.DayRecord) error
	// GetDay returns the record for a day, or nil when the day has no record.
	GetDay(ctx context.Context, day int) (*model.DayRecord, error)
	// ListDays returns the day indices that have records, ascending.
	ListDays(ctx context.Context) ([]int, error)
	// DeleteDay removes a day's record. Deleting an absent day is not an error.
	DeleteDay(ctx context.Context, day int) error

	Migrate(ctx context.Context) error
	Close() error
}
