package assistant

// offlineResponses are the canned replies used when the reachability probe
// fails. The strings intentionally duplicate the online templates in
// responses.go; the two tables are maintained separately and a test asserts
// they have not drifted apart.
var offlineResponses = map[IntentType]string{
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

// offlineResponse returns the canned reply for conversational intents when
// the backend is unreachable. Data intents have no offline variant.
func offlineResponse(intent IntentType) (string, bool) {
	text, ok := offlineResponses[intent]
	return text, ok
}
