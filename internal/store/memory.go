package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

// MemoryStore keeps the collections in process memory. Insertion order is
// preserved.
type MemoryStore struct {
	mu        sync.RWMutex
	trains    []transit.Train
	schedules []transit.Schedule
	notices   []transit.Notice
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Trains(_ context.Context) ([]transit.Train, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]transit.Train, len(s.trains))
	copy(out, s.trains)
	return out, nil
}

func (s *MemoryStore) PutTrain(_ context.Context, train transit.Train) (transit.Train, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if train.ID == "" {
		train.ID = uuid.NewString()
	}
	for i, existing := range s.trains {
		if existing.ID == train.ID {
			s.trains[i] = train
			return train, nil
		}
	}
	s.trains = append(s.trains, train)
	return train, nil
}

func (s *MemoryStore) Schedules(_ context.Context) ([]transit.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]transit.Schedule, len(s.schedules))
	copy(out, s.schedules)
	return out, nil
}

func (s *MemoryStore) PutSchedule(_ context.Context, schedule transit.Schedule) (transit.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	for i, existing := range s.schedules {
		if existing.ID == schedule.ID {
			s.schedules[i] = schedule
			return schedule, nil
		}
	}
	s.schedules = append(s.schedules, schedule)
	return schedule, nil
}

func (s *MemoryStore) Notices(_ context.Context) ([]transit.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]transit.Notice, len(s.notices))
	copy(out, s.notices)
	return out, nil
}

func (s *MemoryStore) PutNotice(_ context.Context, notice transit.Notice) (transit.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	for i, existing := range s.notices {
		if existing.ID == notice.ID {
			s.notices[i] = notice
			return notice, nil
		}
	}
	s.notices = append(s.notices, notice)
	return notice, nil
}
