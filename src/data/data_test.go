package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "bot:secret@tcp(127.0.0.1:3306)/stackbuddy",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestEnsureParam(t *testing.T) {
	assert.Equal(t, "u@tcp(h)/db?parseTime=true", ensureParam("u@tcp(h)/db", "parseTime", "true"))
	assert.Equal(t, "u@tcp(h)/db?a=1&parseTime=true", ensureParam("u@tcp(h)/db?a=1", "parseTime", "true"))
	assert.Equal(t, "u@tcp(h)/db?parseTime=false", ensureParam("u@tcp(h)/db?parseTime=false", "parseTime", "true"))
}

func TestIdentityLinks_NoDatabaseUsesFallback(t *testing.T) {
	links := NewIdentityLinks(nil, 1)

	id, err := links.Lookup(context.Background(), "123456789")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	assert.Error(t, links.Link(context.Background(), "123456789", 4))
}

func TestIdentityLinks_LinkValidates(t *testing.T) {
	links := NewIdentityLinks(dryRunDB(t), 1)
	assert.Error(t, links.Link(context.Background(), "", 4))
	assert.Error(t, links.Link(context.Background(), "42", 0))
}

func TestIdentityLinks_LookupQuery(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var link UserLink
		return tx.Where("discord_user_id = ?", "42").First(&link)
	})
	assert.Contains(t, sql, "`user_links`")
	assert.Contains(t, sql, "discord_user_id = '42'")
}

func TestSettingsCache(t *testing.T) {
	require.NoError(t, LoadSettings(nil))
	assert.Empty(t, GetSetting("stackup_api_url"))

	restore := SetSettingForTest("stackup_api_url", "http://example.test")
	assert.Equal(t, "http://example.test", GetSetting("stackup_api_url"))
	restore()
	assert.Empty(t, GetSetting("stackup_api_url"))
}
