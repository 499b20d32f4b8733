// Package httpapi implements the backend REST surface: the transit
// collections, ticket creation and the admin endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/intelligent-lrt/transit-assistant/internal/store"
	"github.com/intelligent-lrt/transit-assistant/internal/ticketing"
	"github.com/intelligent-lrt/transit-assistant/internal/transit"
	"github.com/intelligent-lrt/transit-assistant/pkg/logging"
)

// Handler serves the transit collections and bookings over HTTP.
type Handler struct {
	store   store.Store
	tickets ticketing.Store
	logger  *logging.Logger
}

func NewHandler(docs store.Store, tickets ticketing.Store, logger *logging.Logger) *Handler {
	if docs == nil {
		panic("httpapi: document store cannot be nil")
	}
	if tickets == nil {
		panic("httpapi: ticket store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:   docs,
		tickets: tickets,
		logger:  logger,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTrains(w http.ResponseWriter, r *http.Request) {
	trains, err := h.store.Trains(r.Context())
	if err != nil {
		h.logger.Error("httpapi: listing trains failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list trains")
		return
	}
	writeJSON(w, http.StatusOK, trains)
}

func (h *Handler) CreateTrain(w http.ResponseWriter, r *http.Request) {
	var train transit.Train
	if err := json.NewDecoder(r.Body).Decode(&train); err != nil {
		writeError(w, http.StatusBadRequest, "invalid train payload")
		return
	}
	if train.Name == "" {
		writeError(w, http.StatusBadRequest, "train name is required")
		return
	}
	stored, err := h.store.PutTrain(r.Context(), train)
	if err != nil {
		h.logger.Error("httpapi: storing train failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store train")
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.store.Schedules(r.Context())
	if err != nil {
		h.logger.Error("httpapi: listing schedules failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list schedules")
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var schedule transit.Schedule
	if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid schedule payload")
		return
	}
	if schedule.TrainName == "" {
		writeError(w, http.StatusBadRequest, "schedule train name is required")
		return
	}
	stored, err := h.store.PutSchedule(r.Context(), schedule)
	if err != nil {
		h.logger.Error("httpapi: storing schedule failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store schedule")
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices, err := h.store.Notices(r.Context())
	if err != nil {
		h.logger.Error("httpapi: listing notices failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notices")
		return
	}
	writeJSON(w, http.StatusOK, notices)
}

func (h *Handler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var notice transit.Notice
	if err := json.NewDecoder(r.Body).Decode(&notice); err != nil {
		writeError(w, http.StatusBadRequest, "invalid notice payload")
		return
	}
	if notice.Title == "" {
		writeError(w, http.StatusBadRequest, "notice title is required")
		return
	}
	stored, err := h.store.PutNotice(r.Context(), notice)
	if err != nil {
		h.logger.Error("httpapi: storing notice failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store notice")
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var booking ticketing.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking payload")
		return
	}
	if booking.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if booking.TrainID == "" {
		writeError(w, http.StatusBadRequest, "trainId is required")
		return
	}
	if len(booking.PassengerDetails) == 0 {
		writeError(w, http.StatusBadRequest, "at least one passenger is required")
		return
	}

	ticket, err := h.tickets.Create(r.Context(), booking)
	if err != nil {
		h.logger.Error("httpapi: creating ticket failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create ticket")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ticket": ticket})
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ticketID")
	ticket, err := h.tickets.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticketing.ErrTicketNotFound) {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		h.logger.Error("httpapi: fetching ticket failed", "error", err, "ticket_id", id)
		writeError(w, http.StatusInternalServerError, "failed to fetch ticket")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ticket": ticket})
}

func (h *Handler) ListUserTickets(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	tickets, err := h.tickets.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("httpapi: listing tickets failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tickets": tickets})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
