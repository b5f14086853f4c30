package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"tutormatch/internal/domain"
)

// Sink is where delivered events end up: a stored notification and, when the
// recipient is connected, a live push.
type Sink interface {
	Deliver(ctx context.Context, ev domain.LifecycleEvent)
}

// Dispatcher decouples lifecycle transitions from notification delivery.
// Emit never blocks and never errors; a full queue drops the event (delivery
// is best-effort, at most once). A single worker goroutine drains the queue,
// which keeps events for the same booking in emission order.
type Dispatcher struct {
	queue chan domain.LifecycleEvent
	sink  Sink
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	d := &Dispatcher{
		queue: make(chan domain.LifecycleEvent, buffer),
		sink:  sink,
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Emit(ev domain.LifecycleEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("notification dispatcher closed, dropping event booking_id=%d type=%s", ev.BookingID, ev.Type)
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Printf("notification queue full, dropping event booking_id=%d type=%s", ev.BookingID, ev.Type)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		d.sink.Deliver(ctx, ev)
		cancel()
	}
}

// Close drains remaining events and stops the worker. Close is idempotent,
// and events emitted after Close are dropped rather than sent on the closed
// queue.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	<-d.done
}
