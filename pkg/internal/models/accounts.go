package models

type StatusType = string

const (
	StatusOnline  = StatusType("online")
	StatusAway    = StatusType("away")
	StatusOffline = StatusType("offline")
)

type Account struct {
	BaseModel

	Name         string     `json:"name" gorm:"uniqueIndex"`
	Nick         string     `json:"nick"`
	Email        string     `json:"email" gorm:"uniqueIndex"`
	ContactEmail *string    `json:"contact_email"`
	Avatar       *string    `json:"avatar"`
	Status       StatusType `json:"status"`

	PasswordHash string `json:"-"`

	Channels []Channel `json:"channels" gorm:"foreignKey:AccountID"`
}

func (v Account) DisplayName() string {
	if len(v.Nick) > 0 {
		return v.Nick
	}
	return v.Name
}
