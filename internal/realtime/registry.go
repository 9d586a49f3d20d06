package realtime

import (
	"sync"

	"recruitflow-go/internal/platform/logging"
)

// Handler receives a decoded socket payload.
type Handler func(payload map[string]any)

// Subscription identifies one registered listener; removal is by handle
// identity, so the same function can be registered more than once.
type Subscription struct {
	event string
	fn    Handler
}

// Registry maps event names to their listeners in registration order.
type Registry struct {
	mu        sync.Mutex
	listeners map[string][]*Subscription
	logger    *logging.Logger
}

func NewRegistry(logger *logging.Logger) *Registry {
	return &Registry{
		listeners: make(map[string][]*Subscription),
		logger:    logger,
	}
}

// On registers a listener for an event and returns its handle.
func (r *Registry) On(event string, fn Handler) *Subscription {
	sub := &Subscription{event: event, fn: fn}

	r.mu.Lock()
	r.listeners[event] = append(r.listeners[event], sub)
	r.mu.Unlock()

	return sub
}

// Off removes a previously registered listener. Unknown handles are ignored.
func (r *Registry) Off(sub *Subscription) {
	if sub == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.listeners[sub.event]
	for i, candidate := range subs {
		if candidate == sub {
			r.listeners[sub.event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit invokes every listener for the event synchronously, in registration
// order. Listeners run against a snapshot, so a callback may subscribe or
// unsubscribe (even itself) without corrupting the iteration, and a panic in
// one listener does not stop the rest.
func (r *Registry) Emit(event string, payload map[string]any) {
	r.mu.Lock()
	snapshot := make([]*Subscription, len(r.listeners[event]))
	copy(snapshot, r.listeners[event])
	r.mu.Unlock()

	for _, sub := range snapshot {
		r.invoke(event, sub, payload)
	}
}

func (r *Registry) invoke(event string, sub *Subscription, payload map[string]any) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorTag("WS", "listener for %q panicked: %v", event, rec)
		}
	}()
	sub.fn(payload)
}
