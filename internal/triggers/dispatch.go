package triggers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Lifecycle is a document lifecycle event kind.
type Lifecycle string

const (
	Created Lifecycle = "created"
	Updated Lifecycle = "updated"
	Deleted Lifecycle = "deleted"
)

// EventKey identifies one triggered handler: a resource (collection) and a
// lifecycle event on it.
type EventKey struct {
	Resource string
	Event    Lifecycle
}

// HandlerFunc handles one decoded document-change event.
type HandlerFunc func(ctx context.Context, e DocumentEvent) error

// Dispatcher routes document-change events to handlers through an explicit
// registration table, so each handler is unit-testable without a live event
// bus.
type Dispatcher struct {
	handlers map[EventKey]HandlerFunc
}

// NewDispatcher builds the routing table for the counter maintainer's three
// recipe lifecycle cases.
func NewDispatcher(m *CounterMaintainer) *Dispatcher {
	d := &Dispatcher{handlers: make(map[EventKey]HandlerFunc)}
	d.register("recipes", Created, func(ctx context.Context, e DocumentEvent) error {
		return m.RecipeCreated(ctx, e.Value.Recipe())
	})
	d.register("recipes", Deleted, func(ctx context.Context, e DocumentEvent) error {
		return m.RecipeDeleted(ctx, e.OldValue.Recipe())
	})
	d.register("recipes", Updated, func(ctx context.Context, e DocumentEvent) error {
		return m.RecipeUpdated(ctx, e.OldValue.Recipe(), e.Value.Recipe())
	})
	return d
}

func (d *Dispatcher) register(resource string, event Lifecycle, h HandlerFunc) {
	d.handlers[EventKey{Resource: resource, Event: event}] = h
}

// Dispatch decodes an event payload and runs the registered handler. An
// unregistered key or an undecodable payload is an error; a handler failure
// is logged and swallowed, because a failed counter adjustment is not retried
// and must not fail the event delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, resource string, event Lifecycle, data []byte) error {
	h, ok := d.handlers[EventKey{Resource: resource, Event: event}]
	if !ok {
		return fmt.Errorf("no handler registered for %s %s", resource, event)
	}

	var e DocumentEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("failed to decode %s %s event: %w", resource, event, err)
	}

	if err := h(ctx, e); err != nil {
		slog.Error("trigger handler failed", "resource", resource, "event", string(event), "error", err)
	}
	return nil
}
