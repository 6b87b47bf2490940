package stream

import (
	"context"
	"sync"
)

const (
	TopicAccounts = "accounts"
	TopicChannels = "channels"
	TopicMessages = "messages"
)

// Event is a change notification from the persistence layer. It carries
// which scope changed, never the payload itself; consumers re-query and
// re-emit their whole collection.
type Event struct {
	Topic     string
	ChannelID uint
	ParentID  uint
	AccountID uint
}

// Bus is the in-process change feed every directory and message feed hangs
// off. Writes publish, subscribed pipelines reload.
type Bus struct {
	mu   sync.Mutex
	subs map[chan Event]map[string]struct{}
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[chan Event]map[string]struct{}),
	}
}

func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch, topics := range b.subs {
		if _, ok := topics[event.Topic]; !ok {
			continue
		}
		select {
		case ch <- event:
		default:
			// Subscriber is saturated; drop the oldest pending event so the
			// newest trigger always lands. Events only mean "reload", so a
			// coalesced backlog loses nothing.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- event:
			default:
			}
		}
	}
}

func (b *Bus) Subscribe(ctx context.Context, topics ...string) <-chan Event {
	ch := make(chan Event, 16)
	set := make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		set[topic] = struct{}{}
	}

	b.mu.Lock()
	b.subs[ch] = set
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
