package services

import (
	"context"
	"sync"

	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/rs/zerolog/log"
)

// ForChannelMessages emits a channel's full message list, oldest first,
// once immediately and then again after every relevant change. Each
// emission replaces the previous one outright.
func ForChannelMessages(ctx context.Context, bus *stream.Bus, channelId uint) <-chan []models.Message {
	return messageStream(ctx, bus, func() ([]models.Message, error) {
		return ListMessage(channelId)
	}, func(event stream.Event) bool {
		return event.ChannelID == channelId
	})
}

// ForThreadReplies is the thread-scoped analogue of ForChannelMessages,
// keyed by the parent message.
func ForThreadReplies(ctx context.Context, bus *stream.Bus, parentId uint) <-chan []models.Message {
	return messageStream(ctx, bus, func() ([]models.Message, error) {
		return ListThreadReply(parentId)
	}, func(event stream.Event) bool {
		return event.ParentID == parentId
	})
}

func messageStream(ctx context.Context, bus *stream.Bus, load func() ([]models.Message, error), matches func(stream.Event) bool) <-chan []models.Message {
	out := make(chan []models.Message, 1)
	events := bus.Subscribe(ctx, stream.TopicMessages)

	emit := func() {
		messages, err := load()
		if err != nil {
			log.Warn().Err(err).Msg("An error occurred when loading a message feed, keeping the last emission...")
			return
		}

		stream.OfferLatest(out, messages)
	}

	go func() {
		defer close(out)
		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if matches(event) {
					emit()
				}
			}
		}
	}()

	return out
}

// FeedSlot pins one consumer to one feed at a time. Switching targets
// cancels the previous subscription before the new one goes live, and a
// generation guard drops anything a stale feed had already pulled, so a
// fast channel switch can never leak another channel's messages into the
// observer.
type FeedSlot struct {
	bus *stream.Bus
	out chan []models.Message

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewFeedSlot(bus *stream.Bus) *FeedSlot {
	return &FeedSlot{
		bus: bus,
		out: make(chan []models.Message, 1),
	}
}

// Observe is the stable output; it survives any number of switches.
func (s *FeedSlot) Observe() <-chan []models.Message {
	return s.out
}

// SwitchChannel repoints the slot at a channel's message feed.
func (s *FeedSlot) SwitchChannel(channelId uint) {
	s.switchTo(func(ctx context.Context) <-chan []models.Message {
		return ForChannelMessages(ctx, s.bus, channelId)
	})
}

// SwitchThread repoints the slot at a thread's reply feed.
func (s *FeedSlot) SwitchThread(parentId uint) {
	s.switchTo(func(ctx context.Context) <-chan []models.Message {
		return ForThreadReplies(ctx, s.bus, parentId)
	})
}

func (s *FeedSlot) switchTo(open func(context.Context) <-chan []models.Message) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	feed := open(ctx)

	go func() {
		for messages := range feed {
			s.mu.Lock()
			current := s.gen == gen
			if current {
				stream.OfferLatest(s.out, messages)
			}
			s.mu.Unlock()
			if !current {
				return
			}
		}
	}()
}

// Close releases whatever subscription the slot currently holds.
func (s *FeedSlot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	close(s.out)
}
