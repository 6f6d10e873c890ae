package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hikeplan/trip-planner/internal/api/metrics"
	"github.com/hikeplan/trip-planner/internal/core/domain"
)

const subscriberBuffer = 64

// Broker is an in-process ChangeNotifier. Delivery is best effort: a
// subscriber whose buffer is full misses the event, and the drop is counted.
// Watchers re-read the store on the next event they do receive.
type Broker struct {
	mu      sync.RWMutex
	nextID  int
	subs    map[int]subscriber
	dropped atomic.Int64
}

type subscriber struct {
	filter domain.ChangeFilter
	ch     chan domain.ChangeEvent
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]subscriber)}
}

// Publish delivers ev to every matching subscriber without blocking.
func (b *Broker) Publish(_ context.Context, ev domain.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.subs {
		if !s.filter.Match(ev) {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			b.dropped.Add(1)
			metrics.ChangeEventsDroppedTotal.WithLabelValues("memory").Inc()
		}
	}
	return nil
}

// Subscribe registers a subscriber that is removed when ctx is done.
func (b *Broker) Subscribe(ctx context.Context, filter domain.ChangeFilter) (<-chan domain.ChangeEvent, error) {
	ch := make(chan domain.ChangeEvent, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = subscriber{filter: filter, ch: ch}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// Subscribers returns the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns the number of events missed by full subscribers.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}
