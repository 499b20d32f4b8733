package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want IntentType
	}{
		{"greeting hello", "Hello!", IntentGreeting},
		{"greeting yo exact", "yo", IntentGreeting},
		{"greeting good morning", "good morning", IntentGreeting},
		{"thanks", "thank you so much", IntentThanks},
		{"goodbye", "bye for now", IntentGoodbye},
		{"how are you", "how are you doing", IntentHowAreYou},
		{"about", "who are you", IntentAbout},
		{"capabilities", "tell me your features", IntentCapabilities},
		{"help wins what-can-you overlap", "what can you do", IntentHelp},
		{"help", "I need some assistance, help me", IntentHelp},
		{"booking plain", "I want to book a ticket", IntentBooking},
		{"booking travel phrase", "I want to travel to Colombo", IntentBooking},
		{"schedule", "show me the timetable", IntentSchedule},
		{"schedule when", "when does it leave", IntentSchedule},
		{"tracking", "where is the express", IntentTracking},
		{"tracking map", "show the map", IntentTracking},
		{"notices", "any announcements today", IntentNotices},
		{"status folds into trainInfo", "status report", IntentTrainInfo},
		{"on time hits schedule first via time keyword", "is it on time", IntentSchedule},
		{"train info", "which trains are running", IntentTrainInfo},
		{"affirmative yes", "yes", IntentAffirmative},
		{"affirmative ok", "ok", IntentAffirmative},
		{"affirmative sure", "sure", IntentAffirmative},
		{"negative no", "no", IntentNegative},
		{"negative nah", "nah", IntentNegative},
		{"unknown", "quantum flux capacitor", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			assert.Equal(t, tt.want, got.Type, "input %q", tt.text)
		})
	}
}

// "my ticket"/"booked" phrasing must win over the booking family despite the
// shared "ticket" substring.
func TestClassifyMyTicketsBeforeBooking(t *testing.T) {
	tests := []string{
		"show my ticket",
		"my tickets please",
		"I already booked a ticket",
		"view ticket",
		"what have I reserved",
		"my booking details",
	}
	for _, text := range tests {
		got := Classify(text)
		assert.Equal(t, IntentMyTickets, got.Type, "input %q", text)
	}
}

// Affirmative and negative matches are exact, not substring.
func TestClassifyAffirmativeExactMatchOnly(t *testing.T) {
	assert.Equal(t, IntentAffirmative, Classify("yes").Type)
	assert.Equal(t, IntentAffirmative, Classify("  YES  ").Type)
	assert.NotEqual(t, IntentAffirmative, Classify("yesterday").Type)
	assert.NotEqual(t, IntentAffirmative, Classify("that was okay I guess").Type)

	assert.Equal(t, IntentNegative, Classify("no").Type)
	assert.NotEqual(t, IntentNegative, Classify("nothing works").Type)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, IntentBooking, Classify("BOOK A TICKET").Type)
	assert.Equal(t, IntentSchedule, Classify("TIMETABLE").Type)
}

func TestClassifyEntities(t *testing.T) {
	got := Classify("book a ticket from Kandy to Colombo")
	assert.Equal(t, IntentBooking, got.Type)
	assert.Equal(t, "Kandy", got.Entities[EntityFrom])
	assert.Equal(t, "Colombo", got.Entities[EntityTo])

	got = Classify("track train Express")
	assert.Equal(t, IntentTracking, got.Type)
	assert.Equal(t, "Express", got.Entities[EntityTrainName])
}

func TestClassifyConfidenceAttached(t *testing.T) {
	assert.InDelta(t, 0.95, Classify("show my ticket").Confidence, 0.001)
	assert.InDelta(t, 0.9, Classify("book something").Confidence, 0.001)
	assert.InDelta(t, 0.5, Classify("xyzzy").Confidence, 0.001)
}

func TestClassifyIsTotal(t *testing.T) {
	for _, text := range []string{"", "   ", "?!?", "ß∂ƒ©"} {
		got := Classify(text)
		assert.NotEmpty(t, got.Type, "input %q must classify to something", text)
	}
}
