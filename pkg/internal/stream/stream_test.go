package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case value := <-ch:
		return value
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a value")
		panic("unreachable")
	}
}

func TestBroadcasterSeedsLateSubscribers(t *testing.T) {
	b := NewBroadcaster[int]()
	defer b.Close()

	b.Publish(42)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := b.Subscribe(ctx)
	assert.Equal(t, 42, recv(t, sub))
}

func TestBroadcasterReplacesStaleValues(t *testing.T) {
	b := NewBroadcaster[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := b.Subscribe(ctx)

	// The subscriber never reads in between; only the newest value may
	// still be pending.
	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	assert.Equal(t, 3, recv(t, sub))
}

func TestBroadcasterSubscriptionClosesOnCancel(t *testing.T) {
	b := NewBroadcaster[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription was not torn down after cancellation")
		}
	}
}

func TestCombineLatestWaitsForBothSides(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan int, 1)
	b := make(chan string, 1)
	out := CombineLatest(ctx, a, b, func(x int, s string) int {
		return x + len(s)
	})

	a <- 10
	select {
	case <-out:
		t.Fatal("combiner emitted before both inputs arrived")
	case <-time.After(50 * time.Millisecond):
	}

	b <- "abc"
	assert.Equal(t, 13, recv(t, out))
}

func TestCombineLatestRecomputesOnEitherInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan int)
	b := make(chan string)
	out := CombineLatest(ctx, a, b, func(x int, s string) int {
		return x + len(s)
	})

	a <- 10
	b <- "abc"
	assert.Equal(t, 13, recv(t, out))

	// Either side alone triggers a recompute with the newest pair.
	a <- 20
	assert.Equal(t, 23, recv(t, out))
	b <- "a"
	assert.Equal(t, 21, recv(t, out))
}

func TestBusRoutesByTopic(t *testing.T) {
	bus := NewBus()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := bus.Subscribe(ctx, TopicMessages)
	channels := bus.Subscribe(ctx, TopicChannels)

	bus.Publish(Event{Topic: TopicMessages, ChannelID: 7})

	event := recv(t, messages)
	assert.Equal(t, uint(7), event.ChannelID)

	select {
	case <-channels:
		t.Fatal("event leaked into an unrelated topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusSubscriptionClosesOnCancel(t *testing.T) {
	bus := NewBus()

	ctx, cancel := context.WithCancel(context.Background())
	sub := bus.Subscribe(ctx, TopicMessages)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("bus subscription was not torn down after cancellation")
		}
	}
}
