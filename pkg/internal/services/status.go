package services

import (
	"fmt"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
)

// SetTypingStatus tells everyone currently viewing the channel that the
// user is typing. Nothing is persisted.
func SetTypingStatus(channelId uint, userId uint) error {
	var account models.Account
	if err := database.C.Where("id = ?", userId).First(&account).Error; err != nil {
		return fmt.Errorf("account not found: %v", err)
	}

	var member models.ChannelMember
	if err := database.C.
		Where("account_id = ? AND channel_id = ?", userId, channelId).
		First(&member).Error; err != nil {
		return fmt.Errorf("channel member not found: %v", err)
	}

	members, err := ListChannelMember(channelId)
	if err != nil {
		return fmt.Errorf("channel not found: %v", err)
	}

	var broadcastTarget []uint
	for _, item := range members {
		if item.AccountID == userId {
			continue
		}
		if !CheckSubscribed(item.AccountID, channelId) {
			continue
		}
		broadcastTarget = append(broadcastTarget, item.AccountID)
	}

	PushCommandBatch(broadcastTarget, models.UnifiedCommand{
		Action: "status.typing",
		Payload: map[string]any{
			"user_id":    userId,
			"member_id":  member.ID,
			"channel_id": channelId,
			"sender":     account,
		},
	})

	return nil
}
