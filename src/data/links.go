package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserLink maps a Discord account to a StackUp user id.
type UserLink struct {
	DiscordUserID string `gorm:"primaryKey;size:32"`
	StackUpUserID int    `gorm:"column:stackup_user_id;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName pins the table name.
func (UserLink) TableName() string { return "user_links" }

// IdentityLinks resolves Discord users to StackUp ids, falling back to a
// fixed identity when no link exists or no database is configured.
type IdentityLinks struct {
	db       *gorm.DB
	fallback int
}

// NewIdentityLinks creates a resolver. db may be nil.
func NewIdentityLinks(db *gorm.DB, fallback int) *IdentityLinks {
	return &IdentityLinks{db: db, fallback: fallback}
}

// Lookup returns the linked StackUp id for discordUserID.
func (l *IdentityLinks) Lookup(ctx context.Context, discordUserID string) (int, error) {
	if l.db == nil || discordUserID == "" {
		return l.fallback, nil
	}

	var link UserLink
	err := l.db.WithContext(ctx).Where("discord_user_id = ?", discordUserID).First(&link).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return l.fallback, nil
	case err != nil:
		return 0, fmt.Errorf("identity lookup %s: %w", discordUserID, err)
	}
	return link.StackUpUserID, nil
}

// Link upserts the mapping for discordUserID.
func (l *IdentityLinks) Link(ctx context.Context, discordUserID string, stackUpUserID int) error {
	if l.db == nil {
		return errors.New("identity link: no database configured")
	}
	if discordUserID == "" || stackUpUserID <= 0 {
		return fmt.Errorf("identity link: invalid pair %q -> %d", discordUserID, stackUpUserID)
	}

	link := UserLink{DiscordUserID: discordUserID, StackUpUserID: stackUpUserID}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stackup_user_id", "updated_at"}),
	}).Create(&link).Error
}
