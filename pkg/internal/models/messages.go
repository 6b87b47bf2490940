package models

import (
	"time"

	"gorm.io/datatypes"
)

type Attachment struct {
	Type string `json:"type"`
	Url  string `json:"url"`
}

// Reaction is one emoji annotation on a message plus everyone who applied it.
// A user id may appear in at most one reaction entry across the whole
// message; entries with no users left are pruned on write.
type Reaction struct {
	Emoji   string `json:"emoji"`
	UserIDs []uint `json:"user_ids"`
}

type Message struct {
	BaseModel

	Uuid        string                          `json:"uuid"`
	Content     string                          `json:"content"`
	Attachments datatypes.JSONSlice[Attachment] `json:"attachments"`
	Reactions   datatypes.JSONSlice[Reaction]   `json:"reactions"`

	Channel   Channel `json:"channel"`
	ChannelID uint    `json:"channel_id"`
	SenderID  uint    `json:"sender_id"`

	// Thread linkage. ThreadID is stamped onto the parent once the first
	// reply lands and equals the parent's own id; replies carry the same
	// ThreadID plus a ParentID back-reference.
	ThreadID    *uint      `json:"thread_id" gorm:"index"`
	ParentID    *uint      `json:"parent_id"`
	Parent      *Message   `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	ReplyCount  int        `json:"reply_count"`
	LastReplyAt *time.Time `json:"last_reply_at"`

	IsEdited bool       `json:"is_edited"`
	EditedAt *time.Time `json:"edited_at"`
}
