// Package ticketing holds the booking submission contract between the
// assistant core and the ticketing backend, and the server-side ticket store.
package ticketing

import (
	"context"
	"errors"
	"time"
)

// ErrTicketNotFound indicates the requested ticket ID does not exist.
var ErrTicketNotFound = errors.New("ticketing: ticket not found")

// Passenger is one traveller on a booking. Fields are free text; the
// assistant only guarantees that all three are present.
type Passenger struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender string `json:"gender"`
}

// TrainDetails is the denormalized train snapshot stored with a booking.
type TrainDetails struct {
	TrainName   string `json:"trainName"`
	Route       string `json:"route"`
	TrainNumber string `json:"trainNumber"`
}

// SeatInfo is the assigned seat and coach.
type SeatInfo struct {
	SeatNumber string `json:"seatNumber"`
	Coach      string `json:"coach"`
}

// PaymentDetails records the illustrative payment attached to a booking.
type PaymentDetails struct {
	Amount int    `json:"amount"`
	Method string `json:"method"`
	Status string `json:"status"`
}

// Booking is the submission payload sent to the ticketing backend.
type Booking struct {
	UserID           string         `json:"userId"`
	TrainID          string         `json:"trainId"`
	TrainDetails     TrainDetails   `json:"trainDetails"`
	PassengerDetails []Passenger    `json:"passengerDetails"`
	SeatInfo         SeatInfo       `json:"seatInfo"`
	PaymentDetails   PaymentDetails `json:"paymentDetails"`
	Status           string         `json:"status"`
}

// Ticket is a persisted booking with its assigned identifier.
type Ticket struct {
	ID string `json:"_id"`
	Booking
	CreatedAt time.Time `json:"createdAt"`
}

// Submitter sends a booking to the ticketing collaborator and returns the
// created ticket identifier. Any rejection or timeout is a booking failure.
type Submitter interface {
	Submit(ctx context.Context, booking Booking) (ticketID string, err error)
}

// Store persists tickets on the backend side.
type Store interface {
	Create(ctx context.Context, booking Booking) (*Ticket, error)
	Get(ctx context.Context, ticketID string) (*Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]Ticket, error)
}
