package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

const (
	trainsKey    = "transit:trains"
	schedulesKey = "transit:schedules"
	noticesKey   = "transit:notices"
)

// RedisStore keeps each collection in a Redis hash keyed by document ID,
// with JSON-encoded values.
type RedisStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

func NewRedisStore(client *redis.Client, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("store: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("transit.internal.store")
	}
	return &RedisStore{
		redis:  client,
		tracer: tracer,
	}
}

func (s *RedisStore) Trains(ctx context.Context) ([]transit.Train, error) {
	ctx, span := s.tracer.Start(ctx, "store.list_trains")
	defer span.End()

	values, err := s.redis.HVals(ctx, trainsKey).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("store: failed to list trains: %w", err)
	}

	trains := make([]transit.Train, 0, len(values))
	for _, raw := range values {
		var train transit.Train
		if err := json.Unmarshal([]byte(raw), &train); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("store: failed to decode train: %w", err)
		}
		trains = append(trains, train)
	}
	sort.Slice(trains, func(i, j int) bool { return trains[i].Name < trains[j].Name })
	return trains, nil
}

func (s *RedisStore) PutTrain(ctx context.Context, train transit.Train) (transit.Train, error) {
	ctx, span := s.tracer.Start(ctx, "store.put_train")
	defer span.End()

	if train.ID == "" {
		train.ID = uuid.NewString()
	}
	if err := s.put(ctx, trainsKey, train.ID, train); err != nil {
		span.RecordError(err)
		return transit.Train{}, fmt.Errorf("store: failed to persist train: %w", err)
	}
	return train, nil
}

func (s *RedisStore) Schedules(ctx context.Context) ([]transit.Schedule, error) {
	ctx, span := s.tracer.Start(ctx, "store.list_schedules")
	defer span.End()

	values, err := s.redis.HVals(ctx, schedulesKey).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("store: failed to list schedules: %w", err)
	}

	schedules := make([]transit.Schedule, 0, len(values))
	for _, raw := range values {
		var schedule transit.Schedule
		if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("store: failed to decode schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].DepartureTime < schedules[j].DepartureTime })
	return schedules, nil
}

func (s *RedisStore) PutSchedule(ctx context.Context, schedule transit.Schedule) (transit.Schedule, error) {
	ctx, span := s.tracer.Start(ctx, "store.put_schedule")
	defer span.End()

	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if err := s.put(ctx, schedulesKey, schedule.ID, schedule); err != nil {
		span.RecordError(err)
		return transit.Schedule{}, fmt.Errorf("store: failed to persist schedule: %w", err)
	}
	return schedule, nil
}

func (s *RedisStore) Notices(ctx context.Context) ([]transit.Notice, error) {
	ctx, span := s.tracer.Start(ctx, "store.list_notices")
	defer span.End()

	values, err := s.redis.HVals(ctx, noticesKey).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("store: failed to list notices: %w", err)
	}

	notices := make([]transit.Notice, 0, len(values))
	for _, raw := range values {
		var notice transit.Notice
		if err := json.Unmarshal([]byte(raw), &notice); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("store: failed to decode notice: %w", err)
		}
		notices = append(notices, notice)
	}
	// Newest first so clients showing the top entries see the latest.
	sort.Slice(notices, func(i, j int) bool { return notices[i].CreatedAt.After(notices[j].CreatedAt) })
	return notices, nil
}

func (s *RedisStore) PutNotice(ctx context.Context, notice transit.Notice) (transit.Notice, error) {
	ctx, span := s.tracer.Start(ctx, "store.put_notice")
	defer span.End()

	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if err := s.put(ctx, noticesKey, notice.ID, notice); err != nil {
		span.RecordError(err)
		return transit.Notice{}, fmt.Errorf("store: failed to persist notice: %w", err)
	}
	return notice, nil
}

func (s *RedisStore) put(ctx context.Context, key, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return s.redis.HSet(ctx, key, id, data).Err()
}
