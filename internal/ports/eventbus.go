// Package ports define the EventBus interface for event-driven communication.
// The event bus lets renderers and services report state changes without callbacks.
package ports

import (
	"github.com/tejashwikalptaru/spectra/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Thread-safety: Implementations must be thread-safe as events may be published
// from the render goroutine and the capture goroutine simultaneously.
//
// Example usage:
//
//	// In a renderer: Publish an event
//	bus.Publish(domain.NewRendererConfiguredEvent("particles", old, mode))
//
//	// In the UI: Subscribe to events
//	subID := bus.Subscribe(domain.EventRendererConfigured, func(event domain.Event) {
//	    e := event.(domain.RendererConfiguredEvent)
//	    window.SetTitleMode(e.Mode)
//	})
//
//	// Later: Unsubscribe
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish publishes an event to all subscribers of that event type.
	// Handlers must return quickly: publishing happens on the render goroutine.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// Each subscription gets a unique SubscriptionID.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered event handler.
	// If the subscription ID is invalid or already unsubscribed, this is a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives all events regardless of type.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers returns true if there are any active subscriptions for the given event type.
	// Renderers use this to avoid building events nobody listens to on the hot path.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the event bus and cleans up resources.
	Close() error
}
