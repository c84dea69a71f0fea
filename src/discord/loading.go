package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	// LoadingText is the body of the first loading message.
	LoadingText = "Loading..."
	// LoadingColor is the accent of the loading message.
	LoadingColor = ColorDarkBlue
	// LoadingInterval is the wait after each frame.
	LoadingInterval = time.Second
)

// LoadingFrames are written, in order, over the loading message.
var LoadingFrames = []string{"Loading.", "Loading..", "Loading...", "Loading...."}

// Animator drives the loading message shown while a command runs.
type Animator struct {
	session  Session
	interval time.Duration
	sleep    func(time.Duration)
}

// NewAnimator creates an animator with the standard one second cadence.
func NewAnimator(s Session) *Animator {
	return &Animator{session: s, interval: LoadingInterval, sleep: time.Sleep}
}

// WithInterval returns a copy using a different frame interval.
func (a *Animator) WithInterval(d time.Duration) *Animator {
	cp := *a
	cp.interval = d
	return &cp
}

// WithSleep returns a copy using fn to wait between frames.
func (a *Animator) WithSleep(fn func(time.Duration)) *Animator {
	cp := *a
	cp.sleep = fn
	return &cp
}

// Loading is a handle to a sent loading message.
type Loading struct {
	session   Session
	channelID string
	messageID string
	interval  time.Duration
	sleep     func(time.Duration)
}

// Begin synchronously sends the initial loading message to channelID.
func (a *Animator) Begin(channelID string) (*Loading, error) {
	msg, err := a.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{loadingEmbed(LoadingText)},
	})
	if err != nil {
		return nil, fmt.Errorf("send loading message to %s: %w", channelID, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("send loading message to %s: no message returned", channelID)
	}
	return &Loading{
		session:   a.session,
		channelID: channelID,
		messageID: msg.ID,
		interval:  a.interval,
		sleep:     a.sleep,
	}, nil
}

// MessageID returns the id of the loading message.
func (l *Loading) MessageID() string { return l.messageID }

// Update rewrites the loading message in place.
func (l *Loading) Update(text string) error {
	embeds := []*discordgo.MessageEmbed{loadingEmbed(text)}
	_, err := l.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      l.messageID,
		Channel: l.channelID,
		Embeds:  &embeds,
	})
	if err != nil {
		return fmt.Errorf("edit loading message %s: %w", l.messageID, err)
	}
	return nil
}

// Play walks every frame: edit, then wait one interval. It always runs the
// full sequence; a failed edit is passed to onErr and the next frame follows.
func (l *Loading) Play(onErr func(error)) {
	for _, frame := range LoadingFrames {
		if err := l.Update(frame); err != nil && onErr != nil {
			onErr(err)
		}
		l.sleep(l.interval)
	}
}

func loadingEmbed(text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Description: text, Color: LoadingColor}
}
