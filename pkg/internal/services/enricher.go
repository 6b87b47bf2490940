package services

import (
	"context"

	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/samber/lo"
)

const (
	// FallbackSenderName stands in for senders with no directory entry,
	// deleted accounts included.
	FallbackSenderName = "Unknown User"
	// FallbackAvatar is the default-avatar sentinel served to clients.
	FallbackAvatar = "/assets/avatars/default.png"
)

type ReactionView struct {
	models.Reaction

	// UserNames is parallel to the stored UserIDs list.
	UserNames []string `json:"user_names"`
}

type MessageView struct {
	models.Message

	SenderName   string         `json:"sender_name"`
	SenderAvatar string         `json:"sender_avatar"`
	Reactions    []ReactionView `json:"reactions"`
}

// EnrichMessage attaches display data from the user lookup map to one raw
// message. Missing directory entries resolve to fallback values, never to
// an error.
func EnrichMessage(message models.Message, users map[uint]models.Account) MessageView {
	view := MessageView{
		Message:      message,
		SenderName:   FallbackSenderName,
		SenderAvatar: FallbackAvatar,
	}

	if sender, ok := users[message.SenderID]; ok {
		view.SenderName = sender.DisplayName()
		if sender.Avatar != nil && len(*sender.Avatar) > 0 {
			view.SenderAvatar = *sender.Avatar
		}
	}

	view.Reactions = lo.Map(message.Reactions, func(entry models.Reaction, index int) ReactionView {
		return ReactionView{
			Reaction: entry,
			UserNames: lo.Map(entry.UserIDs, func(id uint, index int) string {
				if account, ok := users[id]; ok {
					return account.DisplayName()
				}
				return FallbackSenderName
			}),
		}
	})

	return view
}

// EnrichMessages recomputes the whole view list from scratch. No diffing;
// channel-sized inputs make the full pass cheap enough.
func EnrichMessages(messages []models.Message, users map[uint]models.Account) []MessageView {
	return lo.Map(messages, func(item models.Message, index int) MessageView {
		return EnrichMessage(item, users)
	})
}

// EnrichStream joins a message feed with the user lookup feed, recomputing
// whenever either side emits.
func EnrichStream(ctx context.Context, messages <-chan []models.Message, users <-chan map[uint]models.Account) <-chan []MessageView {
	return stream.CombineLatest(ctx, messages, users, EnrichMessages)
}
