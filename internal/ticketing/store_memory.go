package ticketing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	tickets map[string]Ticket
	order   []string
}

// NewMemoryStore builds an empty in-memory ticket store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tickets: make(map[string]Ticket)}
}

var _ Store = (*MemoryStore)(nil)

// Create assigns an ID and stores the ticket.
func (s *MemoryStore) Create(_ context.Context, booking Booking) (*Ticket, error) {
	ticket := Ticket{
		ID:        uuid.New().String(),
		Booking:   booking,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.tickets[ticket.ID] = ticket
	s.order = append(s.order, ticket.ID)
	s.mu.Unlock()

	return &ticket, nil
}

// Get returns the ticket with the given ID.
func (s *MemoryStore) Get(_ context.Context, ticketID string) (*Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return &ticket, nil
}

// ListByUser returns the user's tickets in creation order.
func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Ticket
	for _, id := range s.order {
		if t := s.tickets[id]; t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}
