package notification

import (
	"context"
	"sync"
	"testing"

	"tutormatch/internal/domain"

	"github.com/stretchr/testify/assert"
)

type collectingSink struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
}

func (s *collectingSink) Deliver(ctx context.Context, ev domain.LifecycleEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *collectingSink) snapshot() []domain.LifecycleEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LifecycleEvent(nil), s.events...)
}

type gatedSink struct {
	collectingSink
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gatedSink) Deliver(ctx context.Context, ev domain.LifecycleEvent) {
	s.once.Do(func() {
		close(s.started)
		<-s.release
	})
	s.collectingSink.Deliver(ctx, ev)
}

func TestDispatcher_DeliversInEmissionOrder(t *testing.T) {
	sink := &collectingSink{}
	d := NewDispatcher(sink, 16)

	types := []domain.NotificationType{
		domain.NotifBookingRequested,
		domain.NotifBookingAccepted,
		domain.NotifNewMessage,
		domain.NotifBookingCompleted,
		domain.NotifNewReview,
	}
	for _, ty := range types {
		d.Emit(domain.LifecycleEvent{BookingID: 1, Type: ty, RecipientUserID: 10})
	}

	d.Close()

	got := sink.snapshot()
	assert.Len(t, got, len(types))
	for i, ty := range types {
		assert.Equal(t, ty, got[i].Type)
	}
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	sink := &collectingSink{}
	d := NewDispatcher(sink, 64)

	for i := 0; i < 50; i++ {
		d.Emit(domain.LifecycleEvent{BookingID: int64(i), Type: domain.NotifNewMessage, RecipientUserID: 10})
	}

	d.Close()

	assert.Len(t, sink.snapshot(), 50)
}

func TestDispatcher_EmitDropsWhenFull(t *testing.T) {
	sink := &gatedSink{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	d := NewDispatcher(sink, 1)

	// first event occupies the worker
	d.Emit(domain.LifecycleEvent{BookingID: 1, Type: domain.NotifNewMessage, RecipientUserID: 10})
	<-sink.started

	// one fits the buffer, the rest must drop without blocking
	d.Emit(domain.LifecycleEvent{BookingID: 2, Type: domain.NotifNewMessage, RecipientUserID: 10})
	for i := 0; i < 10; i++ {
		d.Emit(domain.LifecycleEvent{BookingID: 100 + int64(i), Type: domain.NotifNewMessage, RecipientUserID: 10})
	}

	close(sink.release)
	d.Close()

	got := sink.snapshot()
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].BookingID)
	assert.Equal(t, int64(2), got[1].BookingID)
}

func TestDispatcher_EmitAfterCloseDrops(t *testing.T) {
	sink := &collectingSink{}
	d := NewDispatcher(sink, 8)

	d.Emit(domain.LifecycleEvent{BookingID: 1, Type: domain.NotifNewMessage, RecipientUserID: 10})
	d.Close()

	// a late emitter must not panic on the closed queue
	assert.NotPanics(t, func() {
		d.Emit(domain.LifecycleEvent{BookingID: 2, Type: domain.NotifNewMessage, RecipientUserID: 10})
	})
	assert.NotPanics(t, d.Close)

	assert.Len(t, sink.snapshot(), 1)
}
