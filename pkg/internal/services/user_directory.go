package services

import (
	"context"

	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// UserDirectory keeps the live set of known accounts and a derived lookup
// map, re-emitting both wholesale whenever any account changes. A failed
// reload degrades to an empty set instead of tearing the stream down, so
// consumers cannot tell "no users yet" from "fetch failed".
type UserDirectory struct {
	accounts *stream.Broadcaster[[]models.Account]
	lookup   *stream.Broadcaster[map[uint]models.Account]
	cancel   context.CancelFunc
}

func NewUserDirectory(bus *stream.Bus) *UserDirectory {
	ctx, cancel := context.WithCancel(context.Background())
	directory := &UserDirectory{
		accounts: stream.NewBroadcaster[[]models.Account](),
		lookup:   stream.NewBroadcaster[map[uint]models.Account](),
		cancel:   cancel,
	}

	directory.refresh()
	go directory.run(ctx, bus)

	return directory
}

func (d *UserDirectory) run(ctx context.Context, bus *stream.Bus) {
	events := bus.Subscribe(ctx, stream.TopicAccounts)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			d.refresh()
		}
	}
}

func (d *UserDirectory) refresh() {
	accounts, err := ListAccount()
	if err != nil {
		log.Warn().Err(err).Msg("An error occurred when refreshing the user directory, degrading to an empty set...")
		accounts = nil
	}

	d.accounts.Publish(accounts)
	d.lookup.Publish(lo.SliceToMap(accounts, func(item models.Account) (uint, models.Account) {
		return item.ID, item
	}))
}

func (d *UserDirectory) Subscribe(ctx context.Context) <-chan []models.Account {
	return d.accounts.Subscribe(ctx)
}

func (d *UserDirectory) Lookup(ctx context.Context) <-chan map[uint]models.Account {
	return d.lookup.Subscribe(ctx)
}

func (d *UserDirectory) Close() {
	d.cancel()
	d.accounts.Close()
	d.lookup.Close()
}
