package ticketing

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGStoreCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(pgxmock.AnyArg(), "user-1", "train-1", pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "Confirmed", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPGStore(mock)
	ticket, err := store.Create(context.Background(), sampleBooking())
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, "Confirmed", ticket.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT ticket_id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := NewPGStore(mock)
	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreListByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	booking := sampleBooking()
	trainJSON, _ := json.Marshal(booking.TrainDetails)
	passengersJSON, _ := json.Marshal(booking.PassengerDetails)
	seatJSON, _ := json.Marshal(booking.SeatInfo)
	paymentJSON, _ := json.Marshal(booking.PaymentDetails)

	rows := pgxmock.NewRows([]string{
		"ticket_id", "user_id", "train_id", "train_details",
		"passengers", "seat_info", "payment", "status", "created_at",
	}).AddRow("tk-1", "user-1", "train-1", trainJSON,
		passengersJSON, seatJSON, paymentJSON, "Confirmed", time.Now().UTC())

	mock.ExpectQuery("SELECT ticket_id").
		WithArgs("user-1").
		WillReturnRows(rows)

	store := NewPGStore(mock)
	tickets, err := store.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "tk-1", tickets[0].ID)
	assert.Equal(t, "Express 7", tickets[0].TrainDetails.TrainName)
	assert.Len(t, tickets[0].PassengerDetails, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS tickets").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	store := NewPGStore(mock)
	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
