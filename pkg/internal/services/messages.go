package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

func CountMessage(channelId uint) int64 {
	var count int64
	if err := database.C.Where("channel_id = ?", channelId).
		Model(&models.Message{}).Count(&count).Error; err != nil {
		return 0
	}
	return count
}

// ListMessage returns a channel's root messages ordered oldest first. The
// ordering is done at the query, not by sorting afterwards.
func ListMessage(channelId uint) ([]models.Message, error) {
	var messages []models.Message
	if err := database.C.
		Where("channel_id = ?", channelId).
		Where("parent_id IS NULL").
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return messages, err
	}

	return messages, nil
}

func GetMessage(channelId uint, id uint) (models.Message, error) {
	var message models.Message
	if err := database.C.
		Where("id = ? AND channel_id = ?", id, channelId).
		First(&message).Error; err != nil {
		return message, err
	}

	return message, nil
}

// NewMessage persists a message with a store-assigned timestamp and fans
// the change out. Blank content never reaches the database.
func NewMessage(channelId uint, senderId uint, content string, attachments []models.Attachment) (models.Message, error) {
	var message models.Message
	if len(strings.TrimSpace(content)) == 0 {
		return message, fmt.Errorf("message content cannot be empty")
	}

	message = models.Message{
		Uuid:        uuid.NewString(),
		Content:     content,
		Attachments: attachments,
		ChannelID:   channelId,
		SenderID:    senderId,
	}
	if err := database.C.Create(&message).Error; err != nil {
		return message, err
	}

	Bus.Publish(stream.Event{Topic: stream.TopicMessages, ChannelID: channelId})
	broadcastToChannel(channelId, 0, models.UnifiedCommand{
		Action:  "messages.new",
		Payload: message,
	})

	return message, nil
}

func EditMessage(message models.Message, content string) (models.Message, error) {
	if len(strings.TrimSpace(content)) == 0 {
		return message, fmt.Errorf("message content cannot be empty")
	}

	message.Content = content
	message.IsEdited = true
	message.EditedAt = lo.ToPtr(time.Now())

	if err := database.C.Save(&message).Error; err != nil {
		return message, err
	}

	publishMessageChange(message, "messages.edit")
	return message, nil
}

func DeleteMessage(message models.Message) error {
	if err := database.C.Delete(&message).Error; err != nil {
		return err
	}

	publishMessageChange(message, "messages.delete")
	return nil
}

func publishMessageChange(message models.Message, action string) {
	event := stream.Event{Topic: stream.TopicMessages, ChannelID: message.ChannelID}
	if message.ParentID != nil {
		event.ParentID = *message.ParentID
	}
	Bus.Publish(event)

	broadcastToChannel(message.ChannelID, 0, models.UnifiedCommand{
		Action:  action,
		Payload: message,
	})
}

func broadcastToChannel(channelId uint, exceptAccount uint, command models.UnifiedCommand) {
	members, err := ListChannelMember(channelId)
	if err != nil {
		return
	}

	idx := lo.FilterMap(members, func(item models.ChannelMember, index int) (uint, bool) {
		return item.AccountID, item.AccountID != exceptAccount
	})
	PushCommandBatch(idx, command)
}
