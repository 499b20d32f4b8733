package ticketing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the store needs. pgxmock satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore persists tickets to PostgreSQL.
type PGStore struct {
	db DB
}

// NewPGStore builds a Postgres-backed ticket store.
func NewPGStore(db DB) *PGStore {
	if db == nil {
		panic("ticketing: db cannot be nil")
	}
	return &PGStore{db: db}
}

var _ Store = (*PGStore)(nil)

// EnsureSchema creates the tickets table when it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tickets (
			ticket_id     TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			train_id      TEXT NOT NULL,
			train_details JSONB NOT NULL,
			passengers    JSONB NOT NULL,
			seat_info     JSONB NOT NULL,
			payment       JSONB NOT NULL,
			status        TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ticketing: failed to ensure schema: %w", err)
	}
	return nil
}

// Create inserts the booking as a new ticket.
func (s *PGStore) Create(ctx context.Context, booking Booking) (*Ticket, error) {
	ticket := Ticket{
		ID:        uuid.New().String(),
		Booking:   booking,
		CreatedAt: time.Now().UTC(),
	}

	trainJSON, err := json.Marshal(ticket.TrainDetails)
	if err != nil {
		return nil, fmt.Errorf("ticketing: failed to marshal train details: %w", err)
	}
	passengersJSON, err := json.Marshal(ticket.PassengerDetails)
	if err != nil {
		return nil, fmt.Errorf("ticketing: failed to marshal passengers: %w", err)
	}
	seatJSON, err := json.Marshal(ticket.SeatInfo)
	if err != nil {
		return nil, fmt.Errorf("ticketing: failed to marshal seat info: %w", err)
	}
	paymentJSON, err := json.Marshal(ticket.PaymentDetails)
	if err != nil {
		return nil, fmt.Errorf("ticketing: failed to marshal payment: %w", err)
	}

	if _, err := s.db.Exec(ctx, `
		INSERT INTO tickets (
			ticket_id, user_id, train_id, train_details,
			passengers, seat_info, payment, status, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, ticket.ID, ticket.UserID, ticket.TrainID, trainJSON, passengersJSON, seatJSON, paymentJSON, ticket.Status, ticket.CreatedAt); err != nil {
		return nil, fmt.Errorf("ticketing: failed to persist ticket: %w", err)
	}
	return &ticket, nil
}

// Get returns the ticket with the given ID.
func (s *PGStore) Get(ctx context.Context, ticketID string) (*Ticket, error) {
	row := s.db.QueryRow(ctx, `
		SELECT ticket_id, user_id, train_id, train_details,
		       passengers, seat_info, payment, status, created_at
		FROM tickets
		WHERE ticket_id = $1
	`, ticketID)

	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("ticketing: failed to load ticket: %w", err)
	}
	return ticket, nil
}

// ListByUser returns the user's tickets, oldest first.
func (s *PGStore) ListByUser(ctx context.Context, userID string) ([]Ticket, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ticket_id, user_id, train_id, train_details,
		       passengers, seat_info, payment, status, created_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ticketing: failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("ticketing: failed to scan ticket: %w", err)
		}
		tickets = append(tickets, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ticketing: failed to iterate tickets: %w", err)
	}
	return tickets, nil
}

func scanTicket(row pgx.Row) (*Ticket, error) {
	var (
		ticket         Ticket
		trainJSON      []byte
		passengersJSON []byte
		seatJSON       []byte
		paymentJSON    []byte
	)
	if err := row.Scan(&ticket.ID, &ticket.UserID, &ticket.TrainID, &trainJSON,
		&passengersJSON, &seatJSON, &paymentJSON, &ticket.Status, &ticket.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(trainJSON, &ticket.TrainDetails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passengersJSON, &ticket.PassengerDetails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(seatJSON, &ticket.SeatInfo); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paymentJSON, &ticket.PaymentDetails); err != nil {
		return nil, err
	}
	return &ticket, nil
}
