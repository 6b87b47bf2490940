package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/backchannel-im/backchannel/pkg/internal/database"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDatabase points database.C at a fresh in-memory store. Every
// test gets its own schema; the shared-cache URI keeps the database alive
// across the pooled connections gorm opens.
func setupTestDatabase(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))

	database.C = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

func createTestAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account, err := NewAccount(name, name, name+"@example.com", "sup3r-secret!")
	require.NoError(t, err)
	return account
}

func createTestChannel(t *testing.T, name string, creator models.Account) models.Channel {
	t.Helper()

	channel, err := NewChannel(models.Channel{
		Name:      name,
		AccountID: creator.ID,
		Type:      models.ChannelTypeCommon,
		Members: []models.ChannelMember{
			{AccountID: creator.ID, PowerLevel: 100},
		},
	})
	require.NoError(t, err)
	return channel
}
