package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

const (
	// AuthorName labels every answer embed.
	AuthorName = "Stack-Buddy"
	// ThumbnailURL is the bot avatar shown on every answer embed.
	ThumbnailURL = "https://i.imgur.com/xRT3jsZ.png"

	// MaxEmbedDescription is Discord's hard limit on embed descriptions.
	MaxEmbedDescription = 4096
	truncatedSuffix     = "\n*(truncated)*"
)

// Answer is one rendered reply.
type Answer struct {
	Body     string
	Color    int
	ImageURL string
}

// BuildEmbed assembles the answer embed stamped with at.
func BuildEmbed(a Answer, at time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author:      &discordgo.MessageEmbedAuthor{Name: AuthorName},
		Description: fitDescription(a.Body),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: ThumbnailURL},
		Timestamp:   at.UTC().Format(time.RFC3339),
		Color:       a.Color,
	}
	if a.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: a.ImageURL}
	}
	return embed
}

// Emitter delivers answers to the channel a command arrived on.
type Emitter struct {
	session Session
	now     func() time.Time
}

// NewEmitter creates an emitter writing through s.
func NewEmitter(s Session) *Emitter {
	return &Emitter{session: s, now: time.Now}
}

// Emit sends a as an embed to trigger's channel, but only when the trigger's
// raw content still equals token. A suppressed send returns (nil, nil).
func (e *Emitter) Emit(trigger *discordgo.Message, token string, a Answer) (*discordgo.Message, error) {
	if trigger == nil {
		return nil, errors.New("discord: emit without trigger message")
	}
	if trigger.Content != token {
		return nil, nil
	}

	msg, err := e.session.ChannelMessageSendComplex(trigger.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildEmbed(a, e.now())},
	})
	if err != nil {
		return nil, fmt.Errorf("send %s answer to %s: %w", token, trigger.ChannelID, err)
	}
	return msg, nil
}

// fitDescription keeps body under the embed limit, cutting at the last
// paragraph break that fits.
func fitDescription(body string) string {
	if utf8.RuneCountInString(body) <= MaxEmbedDescription {
		return body
	}
	limit := MaxEmbedDescription - utf8.RuneCountInString(truncatedSuffix)
	runes := []rune(body)
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, "\n\n"); idx > 0 {
		cut = cut[:idx]
	}
	return cut + truncatedSuffix
}
