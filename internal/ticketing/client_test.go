package ticketing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() Booking {
	return Booking{
		UserID:  "user-1",
		TrainID: "train-1",
		TrainDetails: TrainDetails{
			TrainName:   "Express 7",
			Route:       "Kandy - Colombo",
			TrainNumber: "E7",
		},
		PassengerDetails: []Passenger{
			{Name: "John Doe", Age: "30", Gender: "Male"},
		},
		SeatInfo:       SeatInfo{SeatNumber: "S12", Coach: "C3"},
		PaymentDetails: PaymentDetails{Amount: 50, Method: "Chatbot", Status: "Completed"},
		Status:         "Confirmed",
	}
}

func TestClientSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tickets", r.URL.Path)

		var booking Booking
		require.NoError(t, json.NewDecoder(r.Body).Decode(&booking))
		assert.Equal(t, "user-1", booking.UserID)
		assert.Len(t, booking.PassengerDetails, 1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ticket":{"_id":"tk-42"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	id, err := client.Submit(context.Background(), sampleBooking())
	require.NoError(t, err)
	assert.Equal(t, "tk-42", id)
}

func TestClientSubmitRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.Submit(context.Background(), sampleBooking())
	assert.Error(t, err)
}

func TestClientSubmitMissingTicketID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.Submit(context.Background(), sampleBooking())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing ticket identifier")
}

func TestClientSubmitTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"ticket":{"_id":"late"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond, nil)
	_, err := client.Submit(context.Background(), sampleBooking())
	assert.Error(t, err)
}

func TestMemoryStoreCreateAndList(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.Create(ctx, sampleBooking())
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	other := sampleBooking()
	other.UserID = "user-2"
	_, err = store.Create(ctx, other)
	require.NoError(t, err)

	second, err := store.Create(ctx, sampleBooking())
	require.NoError(t, err)

	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	mine, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID)
	assert.Equal(t, second.ID, mine[1].ID)
}
