package services

import (
	"errors"
	"fmt"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func CountChannelMember(channelId uint) (int64, error) {
	var count int64
	if err := database.C.Where(&models.ChannelMember{
		ChannelID: channelId,
	}).Model(&models.ChannelMember{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func ListChannelMember(channelId uint) ([]models.ChannelMember, error) {
	var members []models.ChannelMember
	if err := database.C.
		Where(&models.ChannelMember{ChannelID: channelId}).
		Preload("Account").
		Find(&members).Error; err != nil {
		return members, err
	}

	return members, nil
}

func GetChannelMember(user uint, channelId uint) (models.ChannelMember, error) {
	var member models.ChannelMember
	if err := database.C.
		Where(&models.ChannelMember{AccountID: user, ChannelID: channelId}).
		First(&member).Error; err != nil {
		return member, err
	}

	return member, nil
}

// AddChannelMembers merges new members into a channel. Members that are
// already present are left alone, so the member set never carries
// duplicates no matter how often this is called.
func AddChannelMembers(channelId uint, accountIds []uint) error {
	if channelId == 0 {
		return fmt.Errorf("channel id cannot be empty")
	}
	if len(accountIds) == 0 {
		return fmt.Errorf("member list cannot be empty")
	}

	for _, accountId := range lo.Uniq(accountIds) {
		var member models.ChannelMember
		err := database.C.Where(&models.ChannelMember{
			AccountID: accountId,
			ChannelID: channelId,
		}).First(&member).Error
		if err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		member = models.ChannelMember{
			ChannelID: channelId,
			AccountID: accountId,
		}
		if err := database.C.Create(&member).Error; err != nil {
			return err
		}

		invalidateChannelCache(channelId)
	}

	Bus.Publish(stream.Event{Topic: stream.TopicChannels, ChannelID: channelId})
	return nil
}

func RemoveChannelMember(channelId uint, accountId uint) error {
	var member models.ChannelMember
	if err := database.C.Where(&models.ChannelMember{
		AccountID: accountId,
		ChannelID: channelId,
	}).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().
				Uint("channel", channelId).
				Uint("account", accountId).
				Msg("Tried to remove a member that is not part of the channel, skipping...")
			return nil
		}
		return err
	}

	if err := database.C.Delete(&member).Error; err != nil {
		return err
	}

	invalidateChannelCache(channelId)
	Bus.Publish(stream.Event{Topic: stream.TopicChannels, ChannelID: channelId})
	return nil
}
