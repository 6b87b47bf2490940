package services

import (
	"fmt"
	"strings"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrThreadCounterStale marks the partial-failure state where a reply was
// stored but the parent's counter update did not land. The reply is kept;
// the counter heals on the next successful increment.
var ErrThreadCounterStale = fmt.Errorf("reply was stored but the thread counter update failed")

// ListThreadReply returns a thread's replies ordered oldest first,
// selected by thread linkage to the parent message.
func ListThreadReply(parentId uint) ([]models.Message, error) {
	var replies []models.Message
	if err := database.C.
		Where("thread_id = ?", parentId).
		Where("parent_id IS NOT NULL").
		Order("created_at ASC, id ASC").
		Find(&replies).Error; err != nil {
		return replies, err
	}

	return replies, nil
}

// PostThreadReply stores the reply first, then bumps the parent's reply
// counter by one and stamps the last-reply timestamp. The two writes are
// not wrapped in a transaction; a failed counter update is surfaced as
// ErrThreadCounterStale instead of rolling the reply back.
func PostThreadReply(parentId uint, senderId uint, content string) (models.Message, error) {
	var reply models.Message
	if len(strings.TrimSpace(content)) == 0 {
		return reply, fmt.Errorf("message content cannot be empty")
	}

	var parent models.Message
	if err := database.C.Where("id = ?", parentId).First(&parent).Error; err != nil {
		return reply, fmt.Errorf("parent message not found: %v", err)
	}

	reply = models.Message{
		Uuid:      uuid.NewString(),
		Content:   content,
		ChannelID: parent.ChannelID,
		SenderID:  senderId,
		ThreadID:  &parent.ID,
		ParentID:  &parent.ID,
	}
	if err := database.C.Create(&reply).Error; err != nil {
		return reply, err
	}

	counterErr := database.C.Model(&models.Message{}).
		Where("id = ?", parent.ID).
		Updates(map[string]any{
			"thread_id":     parent.ID,
			"reply_count":   gorm.Expr("reply_count + ?", 1),
			"last_reply_at": reply.CreatedAt,
		}).Error

	Bus.Publish(stream.Event{
		Topic:     stream.TopicMessages,
		ChannelID: parent.ChannelID,
		ParentID:  parent.ID,
	})
	broadcastToChannel(parent.ChannelID, 0, models.UnifiedCommand{
		Action:  "threads.reply",
		Payload: reply,
	})

	if counterErr != nil {
		return reply, fmt.Errorf("%w: %v", ErrThreadCounterStale, counterErr)
	}
	return reply, nil
}
