package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

var errTest = errors.New("backend unavailable")

// The offline table is a deliberate duplicate of the online one. This test
// is the drift guard: same keys, same text.
func TestOfflineTableMatchesConversationalTable(t *testing.T) {
	require.Equal(t, len(conversationalResponses), len(offlineResponses))
	for intent, online := range conversationalResponses {
		offline, ok := offlineResponses[intent]
		require.True(t, ok, "intent %q missing from the offline table", intent)
		assert.Equal(t, online, offline, "intent %q", intent)
	}
}

func TestDataIntentsHaveNoOfflineVariant(t *testing.T) {
	for _, intent := range []IntentType{IntentBooking, IntentSchedule, IntentTracking, IntentMyTickets, IntentNotices, IntentTrainInfo, IntentUnknown} {
		_, ok := offlineResponse(intent)
		assert.False(t, ok, "intent %q", intent)
	}
}

func TestNavigationalIntents(t *testing.T) {
	a, _ := newTestAssistant(activeTrainProvider(), &fakeSubmitter{ticketID: "tk-1"})

	tests := []struct {
		text         string
		wantNavigate string
	}{
		{"track my train", NavLiveTracking},
		{"show my tickets", NavTickets},
		{"I want to book a ticket", NavAvailableTrains},
	}
	for _, tt := range tests {
		reply := a.ProcessMessage(context.Background(), tt.text)
		require.Len(t, reply.Actions, 1, "input %q", tt.text)
		assert.Equal(t, tt.wantNavigate, reply.Actions[0].Navigate, "input %q", tt.text)
	}
}

func TestScheduleFilteringByStations(t *testing.T) {
	provider := activeTrainProvider()
	provider.schedules = []transit.Schedule{
		{TrainName: "Udarata Menike", From: "Colombo", To: "Kandy", DepartureTime: "06:05"},
		{TrainName: "Podi Menike", From: "Colombo", To: "Badulla", DepartureTime: "09:45"},
		{TrainName: "Ruhunu Kumari", From: "Colombo", To: "Galle", DepartureTime: "07:30"},
	}
	a, _ := newTestAssistant(provider, &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "schedule from Colombo to Kandy")
	assert.Contains(t, reply.Text, "Udarata Menike")
	assert.NotContains(t, reply.Text, "Ruhunu Kumari")
	require.NotNil(t, reply.Data)
	require.Len(t, reply.Data.Schedules, 1)
	assert.Equal(t, "Kandy", reply.Data.Schedules[0].To)
}

func TestScheduleFilteringNoMatch(t *testing.T) {
	a, _ := newTestAssistant(activeTrainProvider(), &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "schedule from Jaffna to Matara")
	assert.Contains(t, reply.Text, "couldn't find schedules matching your criteria")
	require.Len(t, reply.Actions, 1)
	assert.Equal(t, NavSchedules, reply.Actions[0].Navigate)
}

func TestScheduleListsTopThree(t *testing.T) {
	provider := activeTrainProvider()
	provider.schedules = []transit.Schedule{
		{TrainName: "A", From: "Colombo", To: "Kandy", DepartureTime: "06:00"},
		{TrainName: "B", From: "Colombo", To: "Kandy", DepartureTime: "07:00"},
		{TrainName: "C", From: "Colombo", To: "Kandy", DepartureTime: "08:00"},
		{TrainName: "D", From: "Colombo", To: "Kandy", DepartureTime: "09:00"},
	}
	a, _ := newTestAssistant(provider, &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "show me the schedule")
	require.NotNil(t, reply.Data)
	assert.Len(t, reply.Data.Schedules, 3)
	assert.NotContains(t, reply.Text, "4.")
}

func TestScheduleEmpty(t *testing.T) {
	provider := activeTrainProvider()
	provider.schedules = nil
	a, _ := newTestAssistant(provider, &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "show me the schedule")
	assert.Equal(t, "No schedules are available at the moment.", reply.Text)
}

func TestNoticesListsTopTwo(t *testing.T) {
	provider := activeTrainProvider()
	provider.notices = []transit.Notice{
		{Title: "First", Content: "one"},
		{Title: "Second", Content: "two"},
		{Title: "Third", Content: "three"},
	}
	a, _ := newTestAssistant(provider, &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "any notices?")
	assert.Contains(t, reply.Text, "First")
	assert.Contains(t, reply.Text, "Second")
	assert.NotContains(t, reply.Text, "Third")
	require.NotNil(t, reply.Data)
	assert.Len(t, reply.Data.Notices, 2)
}

func TestNoticesEmpty(t *testing.T) {
	provider := activeTrainProvider()
	provider.notices = nil
	a, _ := newTestAssistant(provider, &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "any notices?")
	assert.Equal(t, "There are no notices at the moment.", reply.Text)
}

func TestTrainInfoCounts(t *testing.T) {
	a, _ := newTestAssistant(activeTrainProvider(), &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "show available trains")
	assert.Contains(t, reply.Text, "Currently, 2 out of 3 trains are active")
	assert.Contains(t, reply.Text, "Udarata Menike")
	assert.NotContains(t, reply.Text, "Yal Devi")
	require.NotNil(t, reply.Data)
	assert.Len(t, reply.Data.Trains, 2)
}

func TestTrainInfoNoneActive(t *testing.T) {
	provider := activeTrainProvider()
	for i := range provider.trains {
		provider.trains[i].Status = "Maintenance"
	}
	a, _ := newTestAssistant(provider, &fakeSubmitter{ticketID: "tk-1"})

	reply := a.ProcessMessage(context.Background(), "show available trains")
	assert.Contains(t, reply.Text, "There are 3 trains in the system, but none are currently active.")
}

func TestDataIntentTroubleMessages(t *testing.T) {
	provider := activeTrainProvider()
	provider.trainsErr = errTest
	provider.schedulesErr = errTest
	provider.noticesErr = errTest
	provider.trains = nil
	provider.schedules = nil
	provider.notices = nil
	a, _ := newTestAssistant(provider, &fakeSubmitter{ticketID: "tk-1"})

	tests := []struct {
		text string
		want string
	}{
		{"show me the schedule", "I'm having trouble fetching schedules. Please check the Schedules section from your dashboard."},
		{"any notices?", "I'm having trouble fetching notices. Please check the Notices section from your dashboard."},
		{"show available trains", "I'm having trouble fetching train information. Please try again later."},
	}
	for _, tt := range tests {
		reply := a.ProcessMessage(context.Background(), tt.text)
		assert.Equal(t, tt.want, reply.Text, "input %q", tt.text)
	}
}
