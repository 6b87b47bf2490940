package models

type ChannelType = uint8

const (
	ChannelTypeCommon = ChannelType(iota)
	ChannelTypeDirect
)

type Channel struct {
	BaseModel

	Name        string          `json:"name"`
	Description string          `json:"description"`
	Members     []ChannelMember `json:"members"`
	Messages    []Message       `json:"messages"`
	Type        ChannelType     `json:"type"`
	AccountID   uint            `json:"account_id"`

	// ConversationID is only set on direct channels. It is derived from both
	// participant account ids, sorted, so the same pair always maps to the
	// same channel no matter who initiated it.
	ConversationID *string `json:"conversation_id" gorm:"uniqueIndex"`
}

func (v Channel) DisplayText() string {
	if v.Type == ChannelTypeDirect {
		return "DM"
	}
	return v.Name
}

type NotifyLevel = int8

const (
	NotifyLevelAll = NotifyLevel(iota)
	NotifyLevelMentioned
	NotifyLevelNone
)

type ChannelMember struct {
	BaseModel

	ChannelID  uint        `json:"channel_id"`
	AccountID  uint        `json:"account_id"`
	Channel    Channel     `json:"channel"`
	Account    Account     `json:"account"`
	Notify     NotifyLevel `json:"notify"`
	PowerLevel int         `json:"power_level"`

	// ReadingAnchor tracks the number of messages the member had seen the
	// last time they read the channel. Only ever moves forward.
	ReadingAnchor *int `json:"reading_anchor"`
}
