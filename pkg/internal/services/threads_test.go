package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostThreadReplyCounters(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")
	channel := createTestChannel(t, "general", alice)

	parent, err := NewMessage(channel.ID, alice.ID, "root message", nil)
	require.NoError(t, err)
	assert.Nil(t, parent.ThreadID)
	assert.Zero(t, parent.ReplyCount)

	first, err := PostThreadReply(parent.ID, bob.ID, "first reply")
	require.NoError(t, err)
	require.NotNil(t, first.ParentID)
	assert.Equal(t, parent.ID, *first.ParentID)

	reloaded, err := GetMessage(channel.ID, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.ReplyCount)
	require.NotNil(t, reloaded.ThreadID)
	assert.Equal(t, parent.ID, *reloaded.ThreadID)
	require.NotNil(t, reloaded.LastReplyAt)
	assert.WithinDuration(t, first.CreatedAt, *reloaded.LastReplyAt, time.Second)

	second, err := PostThreadReply(parent.ID, alice.ID, "second reply")
	require.NoError(t, err)

	reloaded, err = GetMessage(channel.ID, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.ReplyCount)
	assert.WithinDuration(t, second.CreatedAt, *reloaded.LastReplyAt, time.Second)

	replies, err := ListThreadReply(parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, first.ID, replies[0].ID)
	assert.Equal(t, second.ID, replies[1].ID)
}

func TestPostThreadReplyValidation(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	channel := createTestChannel(t, "general", alice)
	parent, err := NewMessage(channel.ID, alice.ID, "root message", nil)
	require.NoError(t, err)

	_, err = PostThreadReply(parent.ID, alice.ID, "   ")
	assert.Error(t, err)

	_, err = PostThreadReply(99999, alice.ID, "orphan reply")
	assert.Error(t, err)

	// Neither attempt may have touched the parent.
	reloaded, err := GetMessage(channel.ID, parent.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.ReplyCount)
	assert.Nil(t, reloaded.ThreadID)
}

func TestRepliesExcludedFromChannelFeed(t *testing.T) {
	setupTestDatabase(t)

	alice := createTestAccount(t, "alice")
	channel := createTestChannel(t, "general", alice)
	parent, err := NewMessage(channel.ID, alice.ID, "root message", nil)
	require.NoError(t, err)

	_, err = PostThreadReply(parent.ID, alice.ID, "threaded reply")
	require.NoError(t, err)

	messages, err := ListMessage(channel.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, parent.ID, messages[0].ID)
}
