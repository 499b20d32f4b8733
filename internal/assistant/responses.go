package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

// conversationalResponses are the fixed templates for intents that never
// touch the backend. The offline table in offline.go deliberately keeps its
// own copies of these strings; a test guards against drift between the two.
var conversationalResponses = map[IntentType]string{
	IntentGreeting:     "Hello! How can I help you with your LRT journey today?",
	IntentThanks:       "You're welcome! Is there anything else I can help you with?",
	IntentGoodbye:      "Goodbye! Have a safe journey! Feel free to come back if you need any help. 👋",
	IntentHowAreYou:    "I'm doing great, thank you for asking! 😊 I'm here and ready to help you with your LRT journey. How can I assist you today?",
	IntentAbout:        "I'm your LRT Virtual Assistant! 🤖 I'm here to help you with everything related to the Light Rail Transit system - from booking tickets to tracking trains. I can answer your questions, help you navigate the system, and make your journey smoother!",
	IntentCapabilities: "Here's what I can do for you:\n\n🎫 Book train tickets\n📍 Track trains in real-time\n🎫 View your tickets\n🕒 Check train schedules\n📢 Get latest notices and updates\n🚂 View train information\n💬 Answer your questions\n\nJust ask me anything about the LRT system!",
	IntentAffirmative:  "Great! How can I help you?",
	IntentNegative:     "No problem! Let me know if you need anything else.",
	IntentHelp:         "I can help you with:\n\n📍 Track trains in real-time\n🎫 Book new tickets\n📋 View your bookings\n🕐 Check train schedules\n📢 Get latest notices\n🚂 View train information\n\nJust ask me what you need!",
}

const unknownResponse = "I'm not quite sure what you mean, but I'm here to help! 😊\n\nYou can ask me about:\n• Booking tickets\n• Tracking trains\n• Viewing your tickets\n• Train schedules\n• Latest notices\n• Train information\n\nOr just say \"help\" to see everything I can do!"

const processingTroubleResponse = "I'm having trouble processing your request right now. Please try again in a moment."

// generateResponse turns a classified intent into a bot message, consulting
// the cache for data intents. It never fails; backend trouble degrades to a
// user-facing message.
func (a *Assistant) generateResponse(ctx context.Context, intent Intent, userMessage string) Message {
	online := a.provider.Probe(ctx)

	if !online {
		if offline, ok := offlineResponse(intent.Type); ok {
			return a.botMessage(offline)
		}
	}

	if text, ok := conversationalResponses[intent.Type]; ok {
		return a.botMessage(text)
	}

	switch intent.Type {
	case IntentBooking:
		return a.handleBookingIntent()
	case IntentSchedule:
		return a.handleScheduleIntent(ctx, userMessage)
	case IntentTracking:
		return a.handleTrackingIntent()
	case IntentMyTickets:
		return a.handleMyTicketsIntent()
	case IntentNotices:
		return a.handleNoticesIntent(ctx)
	case IntentTrainInfo:
		return a.handleTrainInfoIntent(ctx)
	default:
		return a.botMessage(unknownResponse)
	}
}

// handleBookingIntent is the static booking reply. It points the rider at
// the train listing; it does not activate the step-based dialogue, which
// has its own explicit entry via BeginBooking.
func (a *Assistant) handleBookingIntent() Message {
	msg := a.botMessage("I'll take you to the available trains where you can book a new ticket!")
	msg.Actions = []Action{{Label: "🎫 Book a Ticket", Navigate: NavAvailableTrains}}
	return msg
}

func (a *Assistant) handleTrackingIntent() Message {
	msg := a.botMessage("I'll take you to the live tracking section where you can see all trains in real-time!")
	msg.Actions = []Action{{Label: "📍 Go to Live Tracking", Navigate: NavLiveTracking}}
	return msg
}

func (a *Assistant) handleMyTicketsIntent() Message {
	msg := a.botMessage("I'll show you your tickets section where you can view all your booked tickets!")
	msg.Actions = []Action{{Label: "🎫 View Your Tickets", Navigate: NavTickets}}
	return msg
}

func (a *Assistant) handleScheduleIntent(ctx context.Context, userMessage string) Message {
	hit := a.cache.Schedules.Fresh()
	schedules, err := a.cache.Schedules.Get(ctx, a.provider.Schedules)
	a.metrics.ObserveCache("schedules", hit)
	if err != nil {
		a.logger.Warn("assistant: schedule fetch failed", "error", err)
		return a.botMessage("I'm having trouble fetching schedules. Please check the Schedules section from your dashboard.")
	}

	if len(schedules) == 0 {
		return a.botMessage("No schedules are available at the moment.")
	}

	from, to := ExtractStations(userMessage)
	filtered := filterSchedules(schedules, from, to)

	if len(filtered) == 0 {
		msg := a.botMessage("I couldn't find schedules matching your criteria. Would you like to see all schedules?")
		msg.Actions = []Action{{Label: "View All Schedules", Navigate: NavSchedules}}
		return msg
	}

	top := filtered
	if len(top) > 3 {
		top = top[:3]
	}
	var lines []string
	for i, s := range top {
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s → %s\n   Departure: %s",
			i+1, orNA(s.TrainName, "Unknown Train"), orNA(s.From, "N/A"), orNA(s.To, "N/A"), orNA(s.DepartureTime, "N/A")))
	}

	msg := a.botMessage(fmt.Sprintf("Here are the available schedules:\n\n%s\n\nWould you like to see more details?", strings.Join(lines, "\n\n")))
	msg.Actions = []Action{{Label: "View All Schedules", Navigate: NavSchedules}}
	msg.Data = &DataPayload{Kind: "schedules", Schedules: top}
	return msg
}

func (a *Assistant) handleNoticesIntent(ctx context.Context) Message {
	hit := a.cache.Notices.Fresh()
	notices, err := a.cache.Notices.Get(ctx, a.provider.Notices)
	a.metrics.ObserveCache("notices", hit)
	if err != nil {
		a.logger.Warn("assistant: notices fetch failed", "error", err)
		return a.botMessage("I'm having trouble fetching notices. Please check the Notices section from your dashboard.")
	}

	if len(notices) == 0 {
		return a.botMessage("There are no notices at the moment.")
	}

	top := notices
	if len(top) > 2 {
		top = top[:2]
	}
	var lines []string
	for i, n := range top {
		lines = append(lines, fmt.Sprintf("%d. *%s*\n   %s", i+1, n.Title, n.Content))
	}

	msg := a.botMessage(fmt.Sprintf("Here are the latest notices:\n\n%s", strings.Join(lines, "\n\n")))
	msg.Actions = []Action{{Label: "View All Notices", Navigate: NavNotices}}
	msg.Data = &DataPayload{Kind: "notices", Notices: top}
	return msg
}

func (a *Assistant) handleTrainInfoIntent(ctx context.Context) Message {
	hit := a.cache.Trains.Fresh()
	trains, err := a.cache.Trains.Get(ctx, a.provider.Trains)
	a.metrics.ObserveCache("trains", hit)
	if err != nil {
		a.logger.Warn("assistant: train info fetch failed", "error", err)
		return a.botMessage("I'm having trouble fetching train information. Please try again later.")
	}

	if len(trains) == 0 {
		return a.botMessage("No train information is available at the moment.")
	}

	active := transit.ActiveTrains(trains)
	if len(active) == 0 {
		msg := a.botMessage(fmt.Sprintf("There are %d trains in the system, but none are currently active.", len(trains)))
		msg.Actions = []Action{{Label: "View All Trains", Navigate: NavAvailableTrains}}
		return msg
	}

	top := active
	if len(top) > 3 {
		top = top[:3]
	}
	var lines []string
	for i, tr := range top {
		lines = append(lines, fmt.Sprintf("%d. %s\n   Type: %s\n   Route: %s\n   Status: %s",
			i+1, tr.Name, orNA(tr.Type, "N/A"), orNA(tr.Route, "N/A"), tr.Status))
	}

	msg := a.botMessage(fmt.Sprintf("Currently, %d out of %d trains are active:\n\n%s", len(active), len(trains), strings.Join(lines, "\n\n")))
	msg.Actions = []Action{{Label: "View All Trains", Navigate: NavAvailableTrains}}
	msg.Data = &DataPayload{Kind: "trains", Trains: top}
	return msg
}

func filterSchedules(schedules []transit.Schedule, from, to string) []transit.Schedule {
	if from == "" && to == "" {
		return schedules
	}
	var filtered []transit.Schedule
	for _, s := range schedules {
		matchFrom := from == "" || strings.Contains(strings.ToLower(s.From), strings.ToLower(from))
		matchTo := to == "" || strings.Contains(strings.ToLower(s.To), strings.ToLower(to))
		if matchFrom && matchTo {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func orNA(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
