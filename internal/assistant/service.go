package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/intelligent-lrt/transit-assistant/internal/observability/metrics"
	"github.com/intelligent-lrt/transit-assistant/internal/ticketing"
	"github.com/intelligent-lrt/transit-assistant/internal/transit"
	"github.com/intelligent-lrt/transit-assistant/pkg/logging"
)

// Options configures an Assistant. Provider and Submitter are required.
type Options struct {
	Provider  transit.Provider
	Submitter ticketing.Submitter
	Logger    *logging.Logger
	Metrics   *metrics.AssistantMetrics
	Tracer    trace.Tracer
	CacheTTL  time.Duration
	SeatPrice int

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Assistant is one conversation context: classifier, dialogue state, cache
// and history behind a single handle. Turns are serialized by a mutex so a
// multi-threaded host cannot interleave read-modify-write of the dialogue
// state or a cache entry within a turn.
type Assistant struct {
	mu sync.Mutex

	provider  transit.Provider
	submitter ticketing.Submitter
	cache     *Cache
	dialogue  dialogueState
	history   []Message
	user      UserContext

	logger    *logging.Logger
	metrics   *metrics.AssistantMetrics
	tracer    trace.Tracer
	seatPrice int
	now       func() time.Time
}

// New builds an Assistant with empty cache and inert dialogue state.
func New(opts Options) *Assistant {
	if opts.Provider == nil {
		panic("assistant: provider cannot be nil")
	}
	if opts.Submitter == nil {
		panic("assistant: submitter cannot be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("transit.internal.assistant")
	}
	seatPrice := opts.SeatPrice
	if seatPrice <= 0 {
		seatPrice = 50
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cache := NewCache(opts.CacheTTL)
	if opts.Now != nil {
		cache.Trains.now = opts.Now
		cache.Schedules.now = opts.Now
		cache.Notices.now = opts.Now
	}
	return &Assistant{
		provider:  opts.Provider,
		submitter: opts.Submitter,
		cache:     cache,
		logger:    logger,
		metrics:   opts.Metrics,
		tracer:    tracer,
		seatPrice: seatPrice,
		now:       now,
	}
}

// Initialize stores the user context, kicks off the background prefetch and
// returns the welcome message.
func (a *Assistant) Initialize(ctx context.Context, user UserContext) Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = user

	go func() {
		prefetchCtx, span := a.tracer.Start(context.WithoutCancel(ctx), "assistant.prefetch")
		defer span.End()
		a.cache.Prefetch(prefetchCtx, a.provider)
	}()

	name := user.Name
	if name == "" {
		name = "there"
	}
	welcome := a.botMessage(fmt.Sprintf("Hello %s! 👋 I'm your LRT Assistant. I can help you with:\n\n• Booking tickets\n• Checking train schedules\n• Tracking trains in real-time\n• Viewing your tickets\n• Getting latest notices\n• Viewing train information\n\nI can show you information right here or navigate to detailed screens. How can I assist you today?", name))
	return a.appendBot(welcome)
}

// ProcessMessage handles one user turn and always resolves to a Message;
// no error ever propagates to the caller. The caller must not invoke it
// again before the previous call returns.
func (a *Assistant) ProcessMessage(ctx context.Context, text string) Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := a.now()
	ctx, span := a.tracer.Start(ctx, "assistant.process_message")
	defer span.End()
	defer func() {
		a.metrics.ObserveTurnLatency(a.now().Sub(start).Seconds())
	}()

	a.history = append(a.history, Message{Sender: SenderUser, Text: text, Timestamp: a.now()})

	reply := a.respond(ctx, text)
	return a.appendBot(reply)
}

// respond routes a turn: an active booking flow owns the message
// exclusively; otherwise the classifier decides.
func (a *Assistant) respond(ctx context.Context, text string) (reply Message) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("assistant: turn processing panicked", "panic", r)
			a.dialogue.reset()
			reply = a.botMessage(processingTroubleResponse)
		}
	}()

	if a.dialogue.active {
		return a.handleBookingFlow(ctx, text)
	}

	if strings.TrimSpace(text) == "" {
		return a.botMessage(unknownResponse)
	}

	intent := Classify(text)
	a.metrics.ObserveIntent(string(intent.Type))
	return a.generateResponse(ctx, intent, text)
}

// History returns a copy of the conversation so far.
func (a *Assistant) History() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Message, len(a.history))
	copy(out, a.history)
	return out
}

// ClearHistory drops the conversation history. Dialogue state and cache
// are left untouched.
func (a *Assistant) ClearHistory() {
	a.mu.Lock()
	a.history = nil
	a.mu.Unlock()
}

// QuickActions returns the canned prompt shortcuts for the host UI.
func (a *Assistant) QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Book Ticket", Icon: "ticket-outline", Text: "I want to book a ticket"},
		{Label: "Track Train", Icon: "location-outline", Text: "Track my train"},
		{Label: "My Tickets", Icon: "list-outline", Text: "Show my tickets"},
		{Label: "Schedules", Icon: "time-outline", Text: "Show train schedules"},
		{Label: "Notices", Icon: "notifications-outline", Text: "Show latest notices"},
		{Label: "Train Info", Icon: "train-outline", Text: "Show available trains"},
	}
}

func (a *Assistant) botMessage(text string) Message {
	return Message{Sender: SenderBot, Text: text, Timestamp: a.now()}
}

func (a *Assistant) appendBot(msg Message) Message {
	a.history = append(a.history, msg)
	return msg
}

func (a *Assistant) assignSeat() ticketing.SeatInfo {
	return ticketing.SeatInfo{
		SeatNumber: fmt.Sprintf("S%d", rand.Intn(100)+1),
		Coach:      fmt.Sprintf("C%d", rand.Intn(10)+1),
	}
}
