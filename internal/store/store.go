// Package store persists the transit collections served by the REST API:
// trains, schedules and notices. Two implementations are provided, an
// in-memory store for development and tests and a Redis-backed store for
// deployments.
package store

import (
	"context"

	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

// Store is the document store behind the REST API. Put methods assign an ID
// when the document carries none and return the stored document.
type Store interface {
	Trains(ctx context.Context) ([]transit.Train, error)
	PutTrain(ctx context.Context, train transit.Train) (transit.Train, error)

	Schedules(ctx context.Context) ([]transit.Schedule, error)
	PutSchedule(ctx context.Context, schedule transit.Schedule) (transit.Schedule, error)

	Notices(ctx context.Context) ([]transit.Notice, error)
	PutNotice(ctx context.Context, notice transit.Notice) (transit.Notice, error)
}
