package eventbus

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/logger"
)

// TestNewSyncEventBus tests event bus creation.
func TestNewSyncEventBus(t *testing.T) {
	bus := NewSyncEventBus()

	require.NotNil(t, bus)
	assert.Equal(t, 0, bus.SubscriberCount())
	assert.False(t, bus.closed)
}

// TestPublishSubscribe tests basic publish/subscribe functionality.
func TestPublishSubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var received []domain.Event
	subID := bus.Subscribe(domain.EventRendererConfigured, func(event domain.Event) {
		received = append(received, event)
	})
	require.NotEmpty(t, subID)

	bus.Publish(domain.NewRendererConfiguredEvent("particles", domain.ModeNormal, domain.ModeOverlay))

	require.Len(t, received, 1)
	e, ok := received[0].(domain.RendererConfiguredEvent)
	require.True(t, ok)
	assert.Equal(t, "particles", e.Renderer)
	assert.Equal(t, domain.ModeNormal, e.Previous)
	assert.Equal(t, domain.ModeOverlay, e.Mode)
	assert.False(t, e.Timestamp().IsZero())
}

// TestDeliveryOrder tests that typed handlers run in subscription order, then wildcards.
func TestDeliveryOrder(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var order []string
	bus.SubscribeAll(func(domain.Event) { order = append(order, "all") })
	bus.Subscribe(domain.EventFrameSkipped, func(domain.Event) { order = append(order, "first") })
	bus.Subscribe(domain.EventFrameSkipped, func(domain.Event) { order = append(order, "second") })

	bus.Publish(domain.NewFrameSkippedEvent("particles", domain.ErrInvalidFrame))

	assert.Equal(t, []string{"first", "second", "all"}, order)
}

// TestUnsubscribe tests unsubscribing handlers.
func TestUnsubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var calls atomic.Int32
	subID := bus.Subscribe(domain.EventRendererDisposed, func(domain.Event) { calls.Add(1) })
	allID := bus.SubscribeAll(func(domain.Event) { calls.Add(1) })

	bus.Publish(domain.NewRendererDisposedEvent("particles"))
	assert.Equal(t, int32(2), calls.Load())

	bus.Unsubscribe(subID)
	bus.Unsubscribe(allID)
	bus.Publish(domain.NewRendererDisposedEvent("particles"))

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, bus.SubscriberCount())
}

// TestUnsubscribeInvalidID tests unsubscribing with invalid ID (should be no-op).
func TestUnsubscribeInvalidID(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	assert.NotPanics(t, func() {
		bus.Unsubscribe("invalid-id")
		bus.Unsubscribe("")
	})
}

// TestUnsubscribeDuringPublish tests that a handler may remove itself.
func TestUnsubscribeDuringPublish(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var calls int
	var id domain.SubscriptionID
	id = bus.Subscribe(domain.EventCaptureError, func(domain.Event) {
		calls++
		bus.Unsubscribe(id)
	})
	bus.Subscribe(domain.EventCaptureError, func(domain.Event) { calls++ })

	bus.Publish(domain.NewCaptureErrorEvent(errors.New("boom")))
	bus.Publish(domain.NewCaptureErrorEvent(errors.New("boom")))

	assert.Equal(t, 3, calls)
}

// TestHasSubscribers tests the HasSubscribers method.
func TestHasSubscribers(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	assert.False(t, bus.HasSubscribers(domain.EventFrameSkipped))

	bus.Subscribe(domain.EventFrameSkipped, func(domain.Event) {})

	assert.True(t, bus.HasSubscribers(domain.EventFrameSkipped))
	assert.False(t, bus.HasSubscribers(domain.EventRendererDisposed))

	bus.SubscribeAll(func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventRendererDisposed))
}

// TestHandlerPanic tests that panicking handlers don't crash the bus.
func TestHandlerPanic(t *testing.T) {
	var logs bytes.Buffer
	bus := NewSyncEventBus()
	bus.SetLogger(logger.NewCaptureLogger(&logs))
	defer bus.Close()

	var calls atomic.Int32
	bus.Subscribe(domain.EventSettingsChanged, func(domain.Event) { panic("test panic") })
	bus.Subscribe(domain.EventSettingsChanged, func(domain.Event) { calls.Add(1) })

	assert.NotPanics(t, func() {
		bus.Publish(domain.NewSettingsChangedEvent(domain.DefaultParticleConfig(), domain.ModeNormal))
	})
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, logs.String(), "event handler panicked")
}

// TestClose tests closing the event bus.
func TestClose(t *testing.T) {
	bus := NewSyncEventBus()

	var calls int
	bus.Subscribe(domain.EventRendererInitialized, func(domain.Event) { calls++ })
	bus.SubscribeAll(func(domain.Event) { calls++ })
	require.Equal(t, 2, bus.SubscriberCount())

	require.NoError(t, bus.Close())
	assert.Equal(t, 0, bus.SubscriberCount())

	bus.Publish(domain.NewRendererInitializedEvent("particles", 10))
	assert.Zero(t, calls)

	assert.ErrorIs(t, bus.Close(), ErrClosed)
	assert.Panics(t, func() {
		bus.Subscribe(domain.EventRendererInitialized, func(domain.Event) {})
	})
}

// TestNilEventAndHandler tests the nil guards.
func TestNilEventAndHandler(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var calls int
	bus.SubscribeAll(func(domain.Event) { calls++ })
	bus.Publish(nil)
	assert.Zero(t, calls)

	assert.Panics(t, func() { bus.Subscribe(domain.EventFrameSkipped, nil) })
	assert.Panics(t, func() { bus.SubscribeAll(nil) })
}

// TestConcurrentPublishAndSubscribe exercises the bus from many goroutines (run with -race).
func TestConcurrentPublishAndSubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var delivered atomic.Int32
	bus.Subscribe(domain.EventFrameSkipped, func(domain.Event) { delivered.Add(1) })

	const publishers = 8
	const perPublisher = 100

	var wg sync.WaitGroup
	for range publishers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range perPublisher {
				bus.Publish(domain.NewFrameSkippedEvent("particles", domain.ErrEmptySpectrum))
			}
		}()
		go func() {
			defer wg.Done()
			for range 10 {
				id := bus.Subscribe(domain.EventRendererDisposed, func(domain.Event) {})
				bus.Unsubscribe(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(publishers*perPublisher), delivered.Load())
	assert.Equal(t, 1, bus.SubscriberCount())
}
