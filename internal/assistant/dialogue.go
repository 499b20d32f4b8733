package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/intelligent-lrt/transit-assistant/internal/ticketing"
	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

// dialogueStep enumerates the booking flow steps.
type dialogueStep string

const (
	stepSelectTrain     dialogueStep = "selectTrain"
	stepEnterPassengers dialogueStep = "enterPassengers"
	stepConfirm         dialogueStep = "confirm"
)

// dialogueState tracks progress through the multi-turn booking flow. While
// active it is the sole authority over routing: every incoming message goes
// to the flow, never the classifier.
type dialogueState struct {
	active        bool
	step          dialogueStep
	selectedTrain *transit.Train
	passengers    []ticketing.Passenger
}

// reset returns the dialogue to inert with no retained data.
func (d *dialogueState) reset() {
	*d = dialogueState{}
}

// BeginBooking explicitly enters the step-based booking flow. This is the
// only entry point; classifying a message as a booking intent returns a
// static reply instead of activating the flow.
func (a *Assistant) BeginBooking(ctx context.Context) Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	hit := a.cache.Trains.Fresh()
	trains, err := a.cache.Trains.Get(ctx, a.provider.Trains)
	a.metrics.ObserveCache("trains", hit)
	if err != nil {
		a.logger.Warn("assistant: booking flow entry fetch failed", "error", err)
		return a.appendBot(a.botMessage("I'm having trouble fetching train information. Please try again later."))
	}

	active := transit.ActiveTrains(trains)
	if len(active) == 0 {
		return a.appendBot(a.botMessage("There are no active trains available for booking right now. Please try again later."))
	}

	a.dialogue.reset()
	a.dialogue.active = true
	a.dialogue.step = stepSelectTrain

	var lines []string
	for i, tr := range active {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, tr.Name, orNA(tr.Route, "N/A")))
	}

	msg := a.botMessage(fmt.Sprintf("Let's book your ticket! Here are the active trains:\n\n%s\n\nPlease reply with the train number to select it.", strings.Join(lines, "\n")))
	msg.Actions = []Action{{Label: "❌ Cancel Booking", Send: "cancel"}}
	return a.appendBot(msg)
}

// handleBookingFlow routes one user turn while the flow is active. Any
// panic inside a step handler resets the flow and surfaces a generic error.
func (a *Assistant) handleBookingFlow(ctx context.Context, userMessage string) (reply Message) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("assistant: booking flow panicked", "panic", r)
			a.dialogue.reset()
			a.metrics.ObserveBooking("error")
			reply = a.botMessage("An error occurred during booking. Please try again.")
		}
	}()

	lower := strings.ToLower(userMessage)
	if strings.Contains(lower, "cancel") || strings.Contains(lower, "stop") {
		a.dialogue.reset()
		a.metrics.ObserveBooking("cancelled")
		return a.botMessage("Booking cancelled. How else can I help you?")
	}

	switch a.dialogue.step {
	case stepSelectTrain:
		return a.handleTrainSelection(userMessage)
	case stepEnterPassengers:
		return a.handlePassengerInfo(userMessage)
	case stepConfirm:
		return a.handleBookingConfirmation(ctx, lower)
	default:
		a.dialogue.reset()
		return a.botMessage("Something went wrong with the booking. Please try again.")
	}
}

// handleTrainSelection expects a 1-based index into the cached active
// trains. Invalid input re-prompts without advancing.
func (a *Assistant) handleTrainSelection(userMessage string) Message {
	trainNumber, err := strconv.Atoi(strings.TrimSpace(userMessage))
	if err != nil || trainNumber < 1 {
		return a.botMessage("Please enter a valid train number (e.g., 1, 2, 3).")
	}

	trains, _ := a.cache.Trains.Peek()
	active := transit.ActiveTrains(trains)
	if trainNumber > len(active) {
		return a.botMessage(fmt.Sprintf("Invalid train number. Please select a number between 1 and %d.", len(active)))
	}

	selected := active[trainNumber-1]
	a.dialogue.selectedTrain = &selected
	a.dialogue.step = stepEnterPassengers

	msg := a.botMessage(fmt.Sprintf("Perfect! You selected %s.\n\nNow, please enter passenger details in this format:\nName, Age, Gender\n\nExample: John Doe, 30, Male\n\n(You can add multiple passengers separated by semicolons)", selected.Name))
	msg.Actions = []Action{{Label: "❌ Cancel Booking", Send: "cancel"}}
	return msg
}

// handlePassengerInfo parses "Name, Age, Gender" entries separated by
// semicolons. Entries with fewer than three fields are silently dropped.
func (a *Assistant) handlePassengerInfo(userMessage string) Message {
	var passengers []ticketing.Passenger
	for _, entry := range strings.Split(userMessage, ";") {
		parts := strings.Split(entry, ",")
		if len(parts) < 3 {
			continue
		}
		passengers = append(passengers, ticketing.Passenger{
			Name:   strings.TrimSpace(parts[0]),
			Age:    strings.TrimSpace(parts[1]),
			Gender: strings.TrimSpace(parts[2]),
		})
	}

	if len(passengers) == 0 {
		return a.botMessage("I couldn't parse the passenger information. Please use the format:\nName, Age, Gender\n\nExample: John Doe, 30, Male")
	}

	a.dialogue.passengers = passengers
	a.dialogue.step = stepConfirm

	var lines []string
	for i, p := range passengers {
		lines = append(lines, fmt.Sprintf("%d. %s (%s, %s)", i+1, p.Name, p.Age, p.Gender))
	}

	msg := a.botMessage(fmt.Sprintf("Great! Here's your booking summary:\n\nTrain: %s\nRoute: %s\n\nPassengers:\n%s\n\nReply with \"confirm\" to complete the booking or \"cancel\" to cancel.",
		a.dialogue.selectedTrain.Name, a.dialogue.selectedTrain.Route, strings.Join(lines, "\n")))
	msg.Actions = []Action{
		{Label: "✅ Confirm Booking", Send: "confirm"},
		{Label: "❌ Cancel", Send: "cancel"},
	}
	return msg
}

// handleBookingConfirmation submits the booking. Success and failure both
// reset the flow; a failed submission is never retried.
func (a *Assistant) handleBookingConfirmation(ctx context.Context, lowerMessage string) Message {
	if !strings.Contains(lowerMessage, "confirm") {
		return a.botMessage("Please reply with \"confirm\" to complete the booking or \"cancel\" to cancel.")
	}

	if a.user.ID == "" {
		a.dialogue.reset()
		return a.botMessage("You need to be logged in to complete the booking. Please log in and try again.")
	}

	booking := ticketing.Booking{
		UserID:  a.user.ID,
		TrainID: a.dialogue.selectedTrain.ID,
		TrainDetails: ticketing.TrainDetails{
			TrainName:   a.dialogue.selectedTrain.Name,
			Route:       a.dialogue.selectedTrain.Route,
			TrainNumber: orNA(a.dialogue.selectedTrain.TrainNumber, "N/A"),
		},
		PassengerDetails: a.dialogue.passengers,
		SeatInfo:         a.assignSeat(),
		PaymentDetails: ticketing.PaymentDetails{
			Amount: len(a.dialogue.passengers) * a.seatPrice,
			Method: "Chatbot",
			Status: "Completed",
		},
		Status: "Confirmed",
	}

	ticketID, err := a.submitter.Submit(ctx, booking)
	passengerCount := len(a.dialogue.passengers)
	a.dialogue.reset()

	if err != nil {
		a.logger.Error("assistant: booking submission failed", "error", err)
		a.metrics.ObserveBooking("failed")
		return a.botMessage("Sorry, there was an error completing your booking. Please try again or use the regular booking screen.")
	}

	a.metrics.ObserveBooking("confirmed")
	msg := a.botMessage(fmt.Sprintf("🎉 Booking successful!\n\nTicket ID: %s\nTrain: %s\nPassengers: %d\nTotal Amount: $%d\n\nYou can view your ticket in the \"My Tickets\" section!",
		ticketID, booking.TrainDetails.TrainName, passengerCount, booking.PaymentDetails.Amount))
	msg.Actions = []Action{{Label: "🎫 View My Tickets", Navigate: NavTickets}}
	msg.Data = &DataPayload{Kind: "ticket", TicketID: ticketID}
	return msg
}
