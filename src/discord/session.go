package discord

import "github.com/bwmarrin/discordgo"

// Session is the slice of *discordgo.Session the bot writes through.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Session = (*discordgo.Session)(nil)

// Accent colors (Discord's dark palette).
const (
	ColorDarkBlue   = 0x206694
	ColorDarkGreen  = 0x1F8B4C
	ColorRed        = 0xE74C3C
	ColorDarkPurple = 0x71368A
	ColorDarkGold   = 0xC27C0E
	ColorDarkOrange = 0xA84300
	ColorDarkTeal   = 0x11806A
	ColorDarkRed    = 0x992D22
)
