package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingAnchorOnlyMovesForward(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	channel := createTestChannel(t, "general", alice)
	member, err := GetChannelMember(alice.ID, channel.ID)
	require.NoError(t, err)

	SetReadingAnchor(member.ID, 5)
	// A stale report from a lagging client must not win.
	SetReadingAnchor(member.ID, 3)
	FlushReadingAnchor()

	member, err = GetChannelMember(alice.ID, channel.ID)
	require.NoError(t, err)
	require.NotNil(t, member.ReadingAnchor)
	assert.Equal(t, 5, *member.ReadingAnchor)

	// Flushing a lower anchor later keeps the stored one.
	SetReadingAnchor(member.ID, 2)
	FlushReadingAnchor()

	member, err = GetChannelMember(alice.ID, channel.ID)
	require.NoError(t, err)
	require.NotNil(t, member.ReadingAnchor)
	assert.Equal(t, 5, *member.ReadingAnchor)

	SetReadingAnchor(member.ID, 9)
	FlushReadingAnchor()

	member, err = GetChannelMember(alice.ID, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, *member.ReadingAnchor)
}
