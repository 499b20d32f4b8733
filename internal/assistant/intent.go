// Package assistant implements the conversational core: intent
// classification, the multi-turn booking dialogue, a TTL read cache of
// transit data, and response generation with an offline fallback.
package assistant

import "strings"

// IntentType identifies the classified purpose of a user utterance.
type IntentType string

const (
	IntentGreeting     IntentType = "greeting"
	IntentThanks       IntentType = "thanks"
	IntentGoodbye      IntentType = "goodbye"
	IntentHowAreYou    IntentType = "howareyu"
	IntentAbout        IntentType = "about"
	IntentCapabilities IntentType = "capabilities"
	IntentAffirmative  IntentType = "affirmative"
	IntentNegative     IntentType = "negative"
	IntentHelp         IntentType = "help"
	IntentBooking      IntentType = "booking"
	IntentSchedule     IntentType = "schedule"
	IntentTracking     IntentType = "tracking"
	IntentMyTickets    IntentType = "myTickets"
	IntentNotices      IntentType = "notices"
	IntentTrainInfo    IntentType = "trainInfo"
	IntentUnknown      IntentType = "unknown"
)

// Intent is the classification result: a type plus any extracted entities.
// Confidence is attached for introspection only; ties are broken by rule
// order, never by score.
type Intent struct {
	Type       IntentType
	Confidence float64
	Entities   map[string]string
}

// intentRule pairs a predicate with the intent it yields. Rules are
// evaluated in declaration order; the first match wins.
type intentRule struct {
	intent     IntentType
	confidence float64
	match      func(lower string) bool
	extract    func(original string) map[string]string
}

func containsAny(phrases ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return true
			}
		}
		return false
	}
}

func equalsAny(phrases ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range phrases {
			if lower == p {
				return true
			}
		}
		return false
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(lower string) bool {
		for _, pred := range preds {
			if pred(lower) {
				return true
			}
		}
		return false
	}
}

// intentRules is the classifier's priority order. "My tickets" phrasing is
// checked before booking because of the lexical overlap with "ticket", and
// status questions fold into trainInfo ahead of the general train family.
var intentRules = []intentRule{
	{
		intent:     IntentMyTickets,
		confidence: 0.95,
		match: containsAny("my ticket", "my booking", "show ticket", "view ticket",
			"see ticket", "booked", "reserved"),
	},
	{
		intent:     IntentBooking,
		confidence: 0.9,
		match: containsAny("book", "ticket", "reserve", "buy", "purchase",
			"get a ticket", "need a ticket", "want to travel", "going to",
			"travel to", "journey"),
		extract: extractStationEntities,
	},
	{
		intent:     IntentSchedule,
		confidence: 0.85,
		match:      containsAny("schedule", "timetable", "timing", "when", "time"),
		extract:    extractStationEntities,
	},
	{
		intent:     IntentTracking,
		confidence: 0.9,
		match: containsAny("track", "location", "where", "live", "real-time",
			"position", "find train", "locate", "see trains", "map",
			"current location"),
		extract: extractTrainEntities,
	},
	{
		intent:     IntentNotices,
		confidence: 0.85,
		match:      containsAny("notice", "announcement", "news", "update", "alert"),
	},
	{
		intent:     IntentTrainInfo,
		confidence: 0.8,
		match:      containsAny("status", "on time"),
		extract:    extractTrainEntities,
	},
	{
		intent:     IntentTrainInfo,
		confidence: 0.75,
		match:      containsAny("train", "available", "running"),
		extract:    extractTrainEntities,
	},
	{
		intent:     IntentHelp,
		confidence: 0.9,
		match:      containsAny("help", "what can you", "how to"),
	},
	{
		intent:     IntentGreeting,
		confidence: 0.95,
		match: anyOf(
			containsAny("hello", "hi", "hey", "good morning", "good afternoon",
				"good evening", "greetings", "howdy", "hola", "good day", "start"),
			equalsAny("yo"),
		),
	},
	{
		intent:     IntentThanks,
		confidence: 0.95,
		match:      containsAny("thank", "thanks"),
	},
	{
		intent:     IntentGoodbye,
		confidence: 0.95,
		match:      containsAny("bye", "goodbye", "see you", "take care"),
	},
	{
		intent:     IntentHowAreYou,
		confidence: 0.9,
		match: containsAny("how are you", "how r u", "how do you do",
			"whats up", "what's up"),
	},
	{
		intent:     IntentAbout,
		confidence: 0.9,
		match: containsAny("who are you", "what are you",
			"tell me about yourself", "your name"),
	},
	{
		intent:     IntentCapabilities,
		confidence: 0.9,
		match: containsAny("what can you do", "what do you do",
			"your capabilities", "features"),
	},
	{
		intent:     IntentAffirmative,
		confidence: 0.8,
		match:      equalsAny("yes", "yeah", "yep", "sure", "ok", "okay"),
	},
	{
		intent:     IntentNegative,
		confidence: 0.8,
		match:      equalsAny("no", "nope", "nah"),
	},
}

// Classify maps free text to an intent. Classification is total: any input
// resolves to some intent, with unknown as the catch-all.
func Classify(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, rule := range intentRules {
		if !rule.match(lower) {
			continue
		}
		intent := Intent{Type: rule.intent, Confidence: rule.confidence}
		if rule.extract != nil {
			intent.Entities = rule.extract(text)
		}
		return intent
	}
	return Intent{Type: IntentUnknown, Confidence: 0.5}
}
