package assistant

import (
	"time"

	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

// Sender values for Message.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Action is a suggested follow-up attached to a bot message. Navigate is a
// symbolic target the host UI interprets; Send is text the UI feeds back
// into the conversation. Exactly one is set.
type Action struct {
	Label    string `json:"label"`
	Navigate string `json:"navigate,omitempty"`
	Send     string `json:"send,omitempty"`
}

// DataPayload carries structured data for rich rendering by the host UI.
type DataPayload struct {
	Kind      string             `json:"kind"` // "trains", "schedules", "notices", "ticket"
	Trains    []transit.Train    `json:"trains,omitempty"`
	Schedules []transit.Schedule `json:"schedules,omitempty"`
	Notices   []transit.Notice   `json:"notices,omitempty"`
	TicketID  string             `json:"ticketId,omitempty"`
}

// Message is one entry in the conversation, produced by either side.
// Immutable once appended to history.
type Message struct {
	Sender    string       `json:"sender"`
	Text      string       `json:"text"`
	Timestamp time.Time    `json:"timestamp"`
	Actions   []Action     `json:"actions,omitempty"`
	Data      *DataPayload `json:"data,omitempty"`
}

// QuickAction is a canned prompt the host UI renders as a shortcut button.
type QuickAction struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Text  string `json:"text"`
}

// UserContext identifies the rider the assistant is serving.
type UserContext struct {
	ID    string
	Name  string
	Email string
}

// Navigation targets attached to bot actions. The assistant never navigates
// itself; these are interpreted by the host UI.
const (
	NavAvailableTrains = "AvailableTrains"
	NavLiveTracking    = "Live Tracking"
	NavTickets         = "Tickets"
	NavSchedules       = "Schedules"
	NavNotices         = "Notices"
)
