package services

import (
	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/datatypes"
)

// ToggleReaction flips a user's reaction on a message.
//
// Clicking the emoji the user already reacted with removes it. Clicking a
// different one moves the reaction there, so a user is present under at
// most one emoji at any time. Entries left without users are pruned; the
// whole list is persisted last-write-wins.
func ToggleReaction(messageId uint, emoji string, userId uint) (models.Message, error) {
	var message models.Message
	if err := database.C.Where("id = ?", messageId).First(&message).Error; err != nil {
		return message, err
	}

	reactions := []models.Reaction(message.Reactions)

	// Same emoji, already reacting: pure removal, nothing else runs.
	for idx, entry := range reactions {
		if entry.Emoji != emoji || !lo.Contains(entry.UserIDs, userId) {
			continue
		}

		entry.UserIDs = lo.Without(entry.UserIDs, userId)
		if len(entry.UserIDs) == 0 {
			reactions = append(reactions[:idx], reactions[idx+1:]...)
		} else {
			reactions[idx] = entry
		}
		return saveReactions(message, reactions)
	}

	// Strip the user from every other emoji before adding the new one.
	reactions = lo.FilterMap(reactions, func(entry models.Reaction, index int) (models.Reaction, bool) {
		entry.UserIDs = lo.Without(entry.UserIDs, userId)
		return entry, len(entry.UserIDs) > 0
	})

	appended := false
	for idx, entry := range reactions {
		if entry.Emoji == emoji {
			reactions[idx].UserIDs = append(entry.UserIDs, userId)
			appended = true
			break
		}
	}
	if !appended {
		reactions = append(reactions, models.Reaction{
			Emoji:   emoji,
			UserIDs: []uint{userId},
		})
	}

	return saveReactions(message, reactions)
}

func saveReactions(message models.Message, reactions []models.Reaction) (models.Message, error) {
	message.Reactions = datatypes.NewJSONSlice(reactions)
	if err := database.C.Model(&models.Message{}).
		Where("id = ?", message.ID).
		Update("reactions", message.Reactions).Error; err != nil {
		return message, err
	}

	publishMessageChange(message, "messages.react")
	return message, nil
}
