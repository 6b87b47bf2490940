package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"gorm.io/gorm"
)

// ConversationID derives the stable key of a 1:1 conversation from both
// participant ids. Sorting first makes it commutative, so both sides of
// the pair resolve to the same channel.
func ConversationID(a, b uint) string {
	pair := []string{
		strconv.FormatUint(uint64(a), 10),
		strconv.FormatUint(uint64(b), 10),
	}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}

func GetDirectChannel(user models.Account, other models.Account) (models.Channel, error) {
	conversationId := ConversationID(user.ID, other.ID)

	var channel models.Channel
	if err := database.C.
		Where("conversation_id = ?", conversationId).
		Preload("Members").
		Preload("Members.Account").
		First(&channel).Error; err != nil {
		return channel, err
	}

	return channel, nil
}

// GetOrCreateDirectChannel is idempotent: calling it with the pair in
// either order yields the same channel, creating it only on first contact.
func GetOrCreateDirectChannel(user models.Account, other models.Account) (models.Channel, error) {
	if channel, err := GetDirectChannel(user, other); err == nil {
		return channel, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return channel, err
	}

	conversationId := ConversationID(user.ID, other.ID)
	channel := models.Channel{
		Name:           "DM",
		Type:           models.ChannelTypeDirect,
		AccountID:      user.ID,
		ConversationID: &conversationId,
		Members: []models.ChannelMember{
			{AccountID: user.ID, PowerLevel: 100},
			{AccountID: other.ID, PowerLevel: 100},
		},
	}

	if err := database.C.Create(&channel).Error; err != nil {
		return channel, err
	}

	Bus.Publish(stream.Event{Topic: stream.TopicChannels, ChannelID: channel.ID})
	return channel, nil
}
