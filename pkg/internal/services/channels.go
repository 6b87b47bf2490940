package services

import (
	"context"
	"fmt"
	"strings"

	localCache "github.com/backchannel-im/backchannel/pkg/internal/cache"
	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/samber/lo"
)

type channelIdentityCacheEntry struct {
	Channel       models.Channel
	ChannelMember models.ChannelMember
}

func GetChannelIdentityCacheKey(channel uint, user uint) string {
	return fmt.Sprintf("channel-identity-%d#%d", channel, user)
}

func CacheChannelIdentity(channel models.Channel, member models.ChannelMember, user uint) {
	if localCache.S == nil {
		return
	}

	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	contx := context.Background()

	_ = marshal.Set(
		contx,
		GetChannelIdentityCacheKey(channel.ID, user),
		channelIdentityCacheEntry{channel, member},
		store.WithTags([]string{"channel-identity", fmt.Sprintf("channel#%d", channel.ID), fmt.Sprintf("user#%d", user)}),
	)
}

// GetChannelIdentity resolves a channel plus the caller's membership in it,
// consulting the cache first.
func GetChannelIdentity(channelId uint, user uint) (models.Channel, models.ChannelMember, error) {
	if localCache.S != nil {
		cacheManager := cache.New[any](localCache.S)
		marshal := marshaler.New(cacheManager)
		contx := context.Background()

		if val, err := marshal.Get(contx, GetChannelIdentityCacheKey(channelId, user), new(channelIdentityCacheEntry)); err == nil {
			entry := val.(*channelIdentityCacheEntry)
			return entry.Channel, entry.ChannelMember, nil
		}
	}

	channel, member, err := GetAvailableChannel(channelId, user)
	if err == nil {
		CacheChannelIdentity(channel, member, user)
	}

	return channel, member, err
}

func invalidateChannelCache(channelId uint) {
	if localCache.S == nil {
		return
	}

	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	contx := context.Background()

	_ = marshal.Invalidate(
		contx,
		store.WithInvalidateTags([]string{fmt.Sprintf("channel#%d", channelId)}),
	)
}

func GetChannel(id uint) (models.Channel, error) {
	var channel models.Channel
	if err := database.C.
		Where("id = ?", id).
		Preload("Members").
		Preload("Members.Account").
		First(&channel).Error; err != nil {
		return channel, err
	}

	return channel, nil
}

func GetAvailableChannel(id uint, user uint) (models.Channel, models.ChannelMember, error) {
	var err error
	var member models.ChannelMember
	var channel models.Channel
	if channel, err = GetChannel(id); err != nil {
		return channel, member, err
	}

	if err := database.C.Where(models.ChannelMember{
		AccountID: user,
		ChannelID: channel.ID,
	}).First(&member).Error; err != nil {
		return channel, member, fmt.Errorf("channel principal not found: %v", err.Error())
	}

	return channel, member, nil
}

func ListChannel() ([]models.Channel, error) {
	var channels []models.Channel
	if err := database.C.
		Preload("Members").
		Find(&channels).Error; err != nil {
		return channels, err
	}

	return channels, nil
}

func ListAvailableChannel(user uint) ([]models.Channel, error) {
	var members []models.ChannelMember
	if err := database.C.Where(&models.ChannelMember{
		AccountID: user,
	}).Find(&members).Error; err != nil {
		return nil, err
	}

	idx := lo.Map(members, func(item models.ChannelMember, index int) uint {
		return item.ChannelID
	})

	var channels []models.Channel
	if err := database.C.
		Where("id IN ?", idx).
		Preload("Members").
		Preload("Members.Account").
		Find(&channels).Error; err != nil {
		return channels, err
	}

	return channels, nil
}

// NewChannel persists a channel after the name-length gate. Anything
// shorter than three characters never reaches the database.
func NewChannel(channel models.Channel) (models.Channel, error) {
	channel.Name = strings.TrimSpace(channel.Name)
	if len(channel.Name) < 3 {
		return channel, fmt.Errorf("channel name must be at least 3 characters long")
	}

	if err := database.C.Create(&channel).Error; err != nil {
		return channel, err
	}

	Bus.Publish(stream.Event{Topic: stream.TopicChannels, ChannelID: channel.ID})
	return channel, nil
}

func EditChannel(channel models.Channel, name, description string) (models.Channel, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return channel, fmt.Errorf("channel name must be at least 3 characters long")
	}

	channel.Name = name
	channel.Description = description

	if err := database.C.Save(&channel).Error; err != nil {
		return channel, err
	}

	invalidateChannelCache(channel.ID)
	Bus.Publish(stream.Event{Topic: stream.TopicChannels, ChannelID: channel.ID})
	return channel, nil
}

func DeleteChannel(channel models.Channel) error {
	if err := database.C.Delete(&channel).Error; err != nil {
		return err
	}

	database.C.Where("channel_id = ?", channel.ID).Delete(&models.Message{})
	database.C.Where("channel_id = ?", channel.ID).Delete(&models.ChannelMember{})

	invalidateChannelCache(channel.ID)
	Bus.Publish(stream.Event{Topic: stream.TopicChannels, ChannelID: channel.ID})
	return nil
}
