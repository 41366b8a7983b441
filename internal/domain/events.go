// Package domain defines events for the event-driven architecture.
// Events let renderers report lifecycle changes without knowing who listens.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Renderer lifecycle events
	EventRendererInitialized EventType = "renderer.initialized"
	EventRendererConfigured  EventType = "renderer.configured"
	EventRendererDisposed    EventType = "renderer.disposed"

	// Frame events
	EventFrameSkipped EventType = "frame.skipped"

	// Settings events
	EventSettingsChanged EventType = "settings.changed"

	// Capture events
	EventCaptureError EventType = "capture.error"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// RendererInitializedEvent is published once a renderer has allocated its resources.
type RendererInitializedEvent struct {
	baseEvent
	Renderer string
	Capacity int
}

// Type returns the event type.
func (e RendererInitializedEvent) Type() EventType {
	return EventRendererInitialized
}

// NewRendererInitializedEvent creates a new RendererInitializedEvent.
func NewRendererInitializedEvent(renderer string, capacity int) RendererInitializedEvent {
	return RendererInitializedEvent{
		baseEvent: newBaseEvent(),
		Renderer:  renderer,
		Capacity:  capacity,
	}
}

// RendererConfiguredEvent is published when a renderer switches display mode.
type RendererConfiguredEvent struct {
	baseEvent
	Renderer string
	Previous RenderMode
	Mode     RenderMode
}

// Type returns the event type.
func (e RendererConfiguredEvent) Type() EventType {
	return EventRendererConfigured
}

// NewRendererConfiguredEvent creates a new RendererConfiguredEvent.
func NewRendererConfiguredEvent(renderer string, previous, mode RenderMode) RendererConfiguredEvent {
	return RendererConfiguredEvent{
		baseEvent: newBaseEvent(),
		Renderer:  renderer,
		Previous:  previous,
		Mode:      mode,
	}
}

// RendererDisposedEvent is published when a renderer releases its resources.
type RendererDisposedEvent struct {
	baseEvent
	Renderer string
}

// Type returns the event type.
func (e RendererDisposedEvent) Type() EventType {
	return EventRendererDisposed
}

// NewRendererDisposedEvent creates a new RendererDisposedEvent.
func NewRendererDisposedEvent(renderer string) RendererDisposedEvent {
	return RendererDisposedEvent{
		baseEvent: newBaseEvent(),
		Renderer:  renderer,
	}
}

// FrameSkippedEvent is published when a frame is dropped because of invalid input.
type FrameSkippedEvent struct {
	baseEvent
	Renderer string
	Reason   error
}

// Type returns the event type.
func (e FrameSkippedEvent) Type() EventType {
	return EventFrameSkipped
}

// NewFrameSkippedEvent creates a new FrameSkippedEvent.
func NewFrameSkippedEvent(renderer string, reason error) FrameSkippedEvent {
	return FrameSkippedEvent{
		baseEvent: newBaseEvent(),
		Renderer:  renderer,
		Reason:    reason,
	}
}

// SettingsChangedEvent is published when the particle configuration or mode is saved.
type SettingsChangedEvent struct {
	baseEvent
	Config ParticleConfig
	Mode   RenderMode
}

// Type returns the event type.
func (e SettingsChangedEvent) Type() EventType {
	return EventSettingsChanged
}

// NewSettingsChangedEvent creates a new SettingsChangedEvent.
func NewSettingsChangedEvent(config ParticleConfig, mode RenderMode) SettingsChangedEvent {
	return SettingsChangedEvent{
		baseEvent: newBaseEvent(),
		Config:    config,
		Mode:      mode,
	}
}

// CaptureErrorEvent is published when the spectrum source fails.
type CaptureErrorEvent struct {
	baseEvent
	Error error
}

// Type returns the event type.
func (e CaptureErrorEvent) Type() EventType {
	return EventCaptureError
}

// NewCaptureErrorEvent creates a new CaptureErrorEvent.
func NewCaptureErrorEvent(err error) CaptureErrorEvent {
	return CaptureErrorEvent{
		baseEvent: newBaseEvent(),
		Error:     err,
	}
}
