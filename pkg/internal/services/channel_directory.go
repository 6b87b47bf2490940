package services

import (
	"context"
	"sync"

	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/rs/zerolog/log"
)

// ChannelDirectory keeps the live channel list plus the single "currently
// selected channel" slot. Selection is last-write-wins with no queueing;
// there is no history to walk back.
type ChannelDirectory struct {
	channels  *stream.Broadcaster[[]models.Channel]
	current   *stream.Broadcaster[*models.Channel]
	currentId *stream.Broadcaster[uint]

	mu        sync.Mutex
	currentID uint
	cancel    context.CancelFunc
}

func NewChannelDirectory(bus *stream.Bus) *ChannelDirectory {
	ctx, cancel := context.WithCancel(context.Background())
	directory := &ChannelDirectory{
		channels:  stream.NewBroadcaster[[]models.Channel](),
		current:   stream.NewBroadcaster[*models.Channel](),
		currentId: stream.NewBroadcaster[uint](),
		cancel:    cancel,
	}

	directory.current.Publish(nil)
	directory.currentId.Publish(0)
	directory.refresh()
	go directory.run(ctx, bus)

	return directory
}

func (d *ChannelDirectory) run(ctx context.Context, bus *stream.Bus) {
	events := bus.Subscribe(ctx, stream.TopicChannels)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			d.refresh()

			// The selected channel may have changed shape (members, name)
			// or vanished entirely; re-resolve the slot from the store.
			d.mu.Lock()
			selected := d.currentID
			d.mu.Unlock()
			if selected != 0 && event.ChannelID == selected {
				d.SetCurrent(selected)
			}
		}
	}
}

func (d *ChannelDirectory) refresh() {
	channels, err := ListChannel()
	if err != nil {
		log.Warn().Err(err).Msg("An error occurred when refreshing the channel directory, degrading to an empty set...")
		channels = nil
	}

	d.channels.Publish(channels)
}

func (d *ChannelDirectory) Subscribe(ctx context.Context) <-chan []models.Channel {
	return d.channels.Subscribe(ctx)
}

// SetCurrent replaces the selection slot. Passing zero clears it.
func (d *ChannelDirectory) SetCurrent(channelId uint) {
	d.mu.Lock()
	d.currentID = channelId
	d.mu.Unlock()

	if channelId == 0 {
		d.current.Publish(nil)
		d.currentId.Publish(0)
		return
	}

	channel, err := GetChannel(channelId)
	if err != nil {
		log.Warn().Err(err).Uint("channel", channelId).Msg("Selected channel could not be loaded, clearing selection...")
		d.current.Publish(nil)
		d.currentId.Publish(0)
		return
	}

	d.current.Publish(&channel)
	d.currentId.Publish(channel.ID)
}

func (d *ChannelDirectory) Current(ctx context.Context) <-chan *models.Channel {
	return d.current.Subscribe(ctx)
}

func (d *ChannelDirectory) CurrentID(ctx context.Context) <-chan uint {
	return d.currentId.Subscribe(ctx)
}

func (d *ChannelDirectory) Close() {
	d.cancel()
	d.channels.Close()
	d.current.Close()
	d.currentId.Close()
}
