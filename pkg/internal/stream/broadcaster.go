package stream

import (
	"context"
	"sync"
)

// Broadcaster fans the latest value of a stream out to any number of
// subscribers. Every subscriber channel holds at most one pending value;
// when a subscriber lags, the stale value is replaced instead of blocking
// the publisher. New subscribers are seeded with the last published value
// so late joiners do not render an empty view until the next change.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[chan T]struct{}
	last   T
	seeded bool
	closed bool
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		subs: make(map[chan T]struct{}),
	}
}

func (b *Broadcaster[T]) Publish(value T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.last = value
	b.seeded = true
	for ch := range b.subs {
		OfferLatest(ch, value)
	}
}

// Subscribe registers a new listener. The returned channel closes once ctx
// is cancelled or the broadcaster shuts down; the caller does not need any
// other teardown.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	if b.seeded {
		OfferLatest(ch, b.last)
	}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}()

	return ch
}

// Latest returns the last published value, if any.
func (b *Broadcaster[T]) Latest() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.seeded
}

func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// OfferLatest replaces whatever is pending on a capacity-one channel with
// the given value, without ever blocking.
func OfferLatest[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
