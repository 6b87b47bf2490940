package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationIDCommutative(t *testing.T) {
	pairs := [][2]uint{
		{1, 2},
		{2, 1},
		{42, 7},
		{1000, 3},
		{5, 5},
	}

	for _, pair := range pairs {
		assert.Equal(t, ConversationID(pair[0], pair[1]), ConversationID(pair[1], pair[0]))
	}

	assert.Equal(t, "1:2", ConversationID(2, 1))
}

func TestGetOrCreateDirectChannelIdempotent(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	first, err := GetOrCreateDirectChannel(alice, bob)
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.NotNil(t, first.ConversationID)

	// Reversed pair lands on the very same channel.
	second, err := GetOrCreateDirectChannel(bob, alice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	members, err := ListChannelMember(first.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
