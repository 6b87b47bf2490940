package services

import (
	"fmt"
	"strings"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/stream"
	"golang.org/x/crypto/bcrypt"
)

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountWithEmail(email string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("email = ?", email).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func ListAccount() ([]models.Account, error) {
	var accounts []models.Account
	if err := database.C.Find(&accounts).Error; err != nil {
		return accounts, err
	}
	return accounts, nil
}

func NewAccount(name, nick, email, password string) (models.Account, error) {
	var account models.Account
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if len(name) == 0 || len(email) == 0 {
		return account, fmt.Errorf("name and email cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		Name:         name,
		Nick:         nick,
		Email:        email,
		Status:       models.StatusOffline,
		PasswordHash: string(hash),
	}
	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}

	Bus.Publish(stream.Event{Topic: stream.TopicAccounts, AccountID: account.ID})
	return account, nil
}

func CheckAccountPassword(account models.Account, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
}

func EditAccountProfile(account models.Account, nick string, avatar, contactEmail *string) (models.Account, error) {
	account.Nick = nick
	if avatar != nil {
		account.Avatar = avatar
	}
	if contactEmail != nil {
		account.ContactEmail = contactEmail
	}

	if err := database.C.Save(&account).Error; err != nil {
		return account, err
	}

	Bus.Publish(stream.Event{Topic: stream.TopicAccounts, AccountID: account.ID})
	return account, nil
}

func SetAccountStatus(account models.Account, status models.StatusType) error {
	switch status {
	case models.StatusOnline, models.StatusAway, models.StatusOffline:
	default:
		return fmt.Errorf("unknown status: %s", status)
	}

	if err := database.C.Model(&models.Account{}).
		Where("id = ?", account.ID).
		Update("status", status).Error; err != nil {
		return err
	}

	Bus.Publish(stream.Event{Topic: stream.TopicAccounts, AccountID: account.ID})
	return nil
}
