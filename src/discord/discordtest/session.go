// Package discordtest provides an in-memory discord.Session for tests.
package discordtest

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Sent is one recorded ChannelMessageSendComplex call.
type Sent struct {
	ChannelID string
	MessageID string
	Data      *discordgo.MessageSend
	At        time.Time
}

// Edit is one recorded ChannelMessageEditComplex call.
type Edit struct {
	ChannelID string
	MessageID string
	Data      *discordgo.MessageEdit
	At        time.Time
}

// Session records sends and edits. SendErr and EditErr, when set, decide the
// error returned for each call.
type Session struct {
	SendErr func(channelID string, data *discordgo.MessageSend) error
	EditErr func(edit *discordgo.MessageEdit) error

	mu    sync.Mutex
	seq   int
	sent  []Sent
	edits []Edit
}

// ChannelMessageSendComplex implements discord.Session.
func (s *Session) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if s.SendErr != nil {
		if err := s.SendErr(channelID, data); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("msg-%d", s.seq)
	s.sent = append(s.sent, Sent{ChannelID: channelID, MessageID: id, Data: data, At: time.Now()})
	return &discordgo.Message{ID: id, ChannelID: channelID}, nil
}

// ChannelMessageEditComplex implements discord.Session.
func (s *Session) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if s.EditErr != nil {
		if err := s.EditErr(m); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits = append(s.edits, Edit{ChannelID: m.Channel, MessageID: m.ID, Data: m, At: time.Now()})
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

// Sends returns a snapshot of recorded sends.
func (s *Session) Sends() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sent(nil), s.sent...)
}

// Edits returns a snapshot of recorded edits.
func (s *Session) Edits() []Edit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Edit(nil), s.edits...)
}

// SendsTo returns the sends addressed to channelID.
func (s *Session) SendsTo(channelID string) []Sent {
	var out []Sent
	for _, sent := range s.Sends() {
		if sent.ChannelID == channelID {
			out = append(out, sent)
		}
	}
	return out
}

// Description returns the first embed description of a send, or "".
func (s Sent) Description() string {
	if s.Data == nil || len(s.Data.Embeds) == 0 || s.Data.Embeds[0] == nil {
		return ""
	}
	return s.Data.Embeds[0].Description
}

// Description returns the first embed description of an edit, or "".
func (e Edit) Description() string {
	if e.Data == nil || e.Data.Embeds == nil || len(*e.Data.Embeds) == 0 {
		return ""
	}
	return (*e.Data.Embeds)[0].Description
}
