package services

import (
	"sync"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	readingAnchorQueue = make(map[uint]int)
	readingAnchorLock  sync.Mutex
)

// SetReadingAnchor records how many messages a member had seen when they
// last read their channel. Anchors only move forward; stale reports are
// merged away before the periodic flush.
func SetReadingAnchor(memberId uint, messageCount int) {
	readingAnchorLock.Lock()
	defer readingAnchorLock.Unlock()
	if val, ok := readingAnchorQueue[memberId]; ok {
		readingAnchorQueue[memberId] = max(messageCount, val)
	} else {
		readingAnchorQueue[memberId] = messageCount
	}
}

func FlushReadingAnchor() {
	readingAnchorLock.Lock()
	queue := readingAnchorQueue
	readingAnchorQueue = make(map[uint]int)
	readingAnchorLock.Unlock()

	for memberId, anchor := range queue {
		var member models.ChannelMember
		if err := database.C.Where("id = ?", memberId).First(&member).Error; err != nil {
			continue
		}
		if member.ReadingAnchor != nil && *member.ReadingAnchor >= anchor {
			continue
		}

		if err := database.C.Model(&models.ChannelMember{}).
			Where("id = ?", memberId).
			Update("reading_anchor", anchor).Error; err != nil {
			log.Error().Err(err).Msg("An error occurred when flushing reading anchor...")
			return
		}
	}
}
