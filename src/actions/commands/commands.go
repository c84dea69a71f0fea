// Package commands maps Stack-Buddy's text commands onto StackUp fetches and
// Discord answers.
package commands

import (
	"strings"

	"github.com/stake-plus/stackbuddy/src/discord"
)

// Kind identifies what a command answers with.
type Kind int

const (
	KindHelp Kind = iota
	KindInfo
	KindUsername
	KindBalance
	KindProfile
	KindCampaigns
	KindPathways
	KindHackathons
	KindCalendar
)

// Command is one row of the command table.
type Command struct {
	Token   string
	Kind    Kind
	Color   int
	Animate bool
}

// UserScoped reports whether the command needs a StackUp user id.
func (c Command) UserScoped() bool {
	switch c.Kind {
	case KindUsername, KindBalance, KindProfile:
		return true
	}
	return false
}

var table = []Command{
	{Token: "!help", Kind: KindHelp, Color: discord.ColorDarkGreen},
	{Token: "!info", Kind: KindInfo, Color: discord.ColorRed},
	{Token: "!get-username", Kind: KindUsername, Color: discord.ColorDarkBlue, Animate: true},
	{Token: "!get-balance", Kind: KindBalance, Color: discord.ColorDarkPurple, Animate: true},
	{Token: "!get-profile", Kind: KindProfile, Color: discord.ColorDarkGold, Animate: true},
	{Token: "!get-campaigns", Kind: KindCampaigns, Color: discord.ColorDarkOrange, Animate: true},
	{Token: "!get-pathways", Kind: KindPathways, Color: discord.ColorDarkTeal, Animate: true},
	{Token: "!get-hackathons", Kind: KindHackathons, Color: discord.ColorDarkRed, Animate: true},
	{Token: "!get-calendar", Kind: KindCalendar, Color: discord.ColorDarkBlue, Animate: true},
}

var byToken = func() map[string]Command {
	m := make(map[string]Command, len(table))
	for _, c := range table {
		m[c.Token] = c
	}
	return m
}()

// All returns the command table in help order.
func All() []Command {
	return append([]Command(nil), table...)
}

// Dispatch selects the command for a message's content. Lookup is by exact,
// case-sensitive match on the trimmed text, and the raw text must equal the
// token too: answers are only emitted for an exact match, so padded input is
// refused before anything is sent.
func Dispatch(content string) (Command, bool) {
	trimmed := strings.TrimSpace(content)
	cmd, ok := byToken[trimmed]
	if !ok || content != cmd.Token {
		return Command{}, false
	}
	return cmd, true
}
