package services

import (
	"testing"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChannelNameGate(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")

	_, err := NewChannel(models.Channel{
		Name:      "ab",
		AccountID: alice.ID,
	})
	require.Error(t, err)

	// The rejected channel never reached the store.
	var count int64
	require.NoError(t, database.C.Model(&models.Channel{}).Count(&count).Error)
	assert.Zero(t, count)

	channel, err := NewChannel(models.Channel{
		Name:      "abc",
		AccountID: alice.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, channel.ID)

	channels, err := ListChannel()
	require.NoError(t, err)
	assert.True(t, lo.ContainsBy(channels, func(item models.Channel) bool {
		return item.ID == channel.ID
	}))
}

func TestAddChannelMembersDeduplicates(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")
	channel := createTestChannel(t, "general", alice)

	require.NoError(t, AddChannelMembers(channel.ID, []uint{bob.ID, bob.ID, alice.ID}))
	// Running the same union again changes nothing.
	require.NoError(t, AddChannelMembers(channel.ID, []uint{bob.ID}))

	members, err := ListChannelMember(channel.ID)
	require.NoError(t, err)

	ids := lo.Map(members, func(item models.ChannelMember, index int) uint {
		return item.AccountID
	})
	assert.ElementsMatch(t, []uint{alice.ID, bob.ID}, ids)
}

func TestAddChannelMembersValidation(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	channel := createTestChannel(t, "general", alice)

	assert.Error(t, AddChannelMembers(0, []uint{alice.ID}))
	assert.Error(t, AddChannelMembers(channel.ID, nil))
}

func TestRemoveChannelMemberAbsentIsNoOp(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")
	channel := createTestChannel(t, "general", alice)

	// Bob never joined; removal warns and succeeds.
	require.NoError(t, RemoveChannelMember(channel.ID, bob.ID))

	members, err := ListChannelMember(channel.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	require.NoError(t, AddChannelMembers(channel.ID, []uint{bob.ID}))
	require.NoError(t, RemoveChannelMember(channel.ID, bob.ID))

	members, err = ListChannelMember(channel.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, alice.ID, members[0].AccountID)
}
