package services

import (
	"testing"

	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUserEntries(message models.Message, userId uint) int {
	count := 0
	for _, entry := range message.Reactions {
		if lo.Contains(entry.UserIDs, userId) {
			count++
		}
	}
	return count
}

func TestToggleReactionAddAndRemove(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	channel := createTestChannel(t, "general", alice)
	message, err := NewMessage(channel.ID, alice.ID, "hello there", nil)
	require.NoError(t, err)

	message, err = ToggleReaction(message.ID, "👍", alice.ID)
	require.NoError(t, err)
	require.Len(t, message.Reactions, 1)
	assert.Equal(t, "👍", message.Reactions[0].Emoji)
	assert.Equal(t, []uint{alice.ID}, message.Reactions[0].UserIDs)

	// Same emoji again: toggle off, entry pruned.
	message, err = ToggleReaction(message.ID, "👍", alice.ID)
	require.NoError(t, err)
	assert.Empty(t, message.Reactions)
}

func TestToggleReactionRoundTrip(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")
	channel := createTestChannel(t, "general", alice)
	message, err := NewMessage(channel.ID, alice.ID, "hello there", nil)
	require.NoError(t, err)

	_, err = ToggleReaction(message.ID, "🎉", bob.ID)
	require.NoError(t, err)
	before, err := GetMessage(channel.ID, message.ID)
	require.NoError(t, err)

	_, err = ToggleReaction(message.ID, "👍", alice.ID)
	require.NoError(t, err)
	_, err = ToggleReaction(message.ID, "👍", alice.ID)
	require.NoError(t, err)

	after, err := GetMessage(channel.ID, message.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Reactions, after.Reactions)
}

func TestToggleReactionMovesBetweenEmojis(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")
	channel := createTestChannel(t, "general", alice)
	message, err := NewMessage(channel.ID, alice.ID, "hello there", nil)
	require.NoError(t, err)

	_, err = ToggleReaction(message.ID, "👍", bob.ID)
	require.NoError(t, err)
	_, err = ToggleReaction(message.ID, "👍", alice.ID)
	require.NoError(t, err)

	// Alice switches to another emoji; she must vanish from the first one
	// while Bob stays put.
	message, err = ToggleReaction(message.ID, "🎉", alice.ID)
	require.NoError(t, err)

	require.Len(t, message.Reactions, 2)
	assert.Equal(t, 1, countUserEntries(message, alice.ID))
	assert.Equal(t, 1, countUserEntries(message, bob.ID))

	thumbs, ok := lo.Find(message.Reactions, func(entry models.Reaction) bool {
		return entry.Emoji == "👍"
	})
	require.True(t, ok)
	assert.Equal(t, []uint{bob.ID}, thumbs.UserIDs)

	party, ok := lo.Find(message.Reactions, func(entry models.Reaction) bool {
		return entry.Emoji == "🎉"
	})
	require.True(t, ok)
	assert.Equal(t, []uint{alice.ID}, party.UserIDs)
}

func TestToggleReactionInvariantUnderSequences(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	channel := createTestChannel(t, "general", alice)
	message, err := NewMessage(channel.ID, alice.ID, "hello there", nil)
	require.NoError(t, err)

	sequence := []string{"👍", "🎉", "🎉", "👀", "👍", "👍", "👀"}
	for _, emoji := range sequence {
		message, err = ToggleReaction(message.ID, emoji, alice.ID)
		require.NoError(t, err)

		assert.LessOrEqual(t, countUserEntries(message, alice.ID), 1)
		for _, entry := range message.Reactions {
			assert.NotEmpty(t, entry.UserIDs, "empty reaction entries must be pruned")
		}
	}
}
