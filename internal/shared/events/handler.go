package events

// Handler reacts to published engagement events.
type Handler interface {
	// Handles returns the event types the handler subscribes to.
	Handles() []string

	// Handle processes one event. Implementations should be idempotent:
	// handling the same event twice must not produce duplicate side effects.
	Handle(event Event) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc struct {
	eventTypes []string
	fn         func(Event) error
}

// NewHandlerFunc subscribes fn to each of eventTypes.
func NewHandlerFunc(eventTypes []string, fn func(Event) error) *HandlerFunc {
	return &HandlerFunc{eventTypes: eventTypes, fn: fn}
}

// On subscribes fn to a single event type.
func On(eventType string, fn func(Event) error) *HandlerFunc {
	return NewHandlerFunc([]string{eventType}, fn)
}

func (h *HandlerFunc) Handles() []string {
	out := make([]string, len(h.eventTypes))
	copy(out, h.eventTypes)
	return out
}

func (h *HandlerFunc) Handle(event Event) error {
	return h.fn(event)
}
