// Package render formats StackUp records into the text bodies posted to Discord.
package render

import (
	"fmt"
	"strings"

	"github.com/stake-plus/stackbuddy/src/stackup"
)

const (
	campaignsHeader  = "**Featured campaigns:** \n\n"
	pathwaysHeader   = "**Featured pathways:** \n\n"
	hackathonsHeader = "**Upcoming hackathons:** \n\n"
)

// User renders a profile.
func User(u stackup.User) string {
	return fmt.Sprintf("ID: %d\nUsername: %s\nNationality: %s\nCareer Level: %s\nRole: %s\nTech Stacks: %s",
		u.ID, u.Username, u.Nationality, u.CareerLevel, u.Role, u.TechStack)
}

// Balance renders the current balance.
func Balance(b stackup.Balance) string {
	return fmt.Sprintf("Your StackUp balance is: $%d", b.CurrentBalance)
}

// Progress renders quest progress.
func Progress(p stackup.Progress) string {
	return fmt.Sprintf("Submissions: %d\nSubmitted: %d\nRewarded: %d\nTotal Earnings: $%d",
		p.Submissions, p.Submitted, p.Rewarded, p.TotalQuestEarnings)
}

// Campaigns renders the featured campaigns list. An empty list yields the header only.
func Campaigns(items []stackup.Campaign) string {
	var sb strings.Builder
	sb.WriteString(campaignsHeader)
	for _, c := range items {
		fmt.Fprintf(&sb, "**Title:** %s\n**Subtitle:** %s\n**Quest Count:** %d\n\n", c.Title, c.SubTitle, c.QuestCount)
	}
	return sb.String()
}

// Pathways renders the featured pathways list.
func Pathways(items []stackup.Pathway) string {
	var sb strings.Builder
	sb.WriteString(pathwaysHeader)
	for _, p := range items {
		fmt.Fprintf(&sb, "**Title:** %s\n**Modules:** %d\n**Skills:** %d\n\n", p.Title, p.Modules, p.Skills)
	}
	return sb.String()
}

// Hackathons renders the upcoming hackathons list.
func Hackathons(items []stackup.Hackathon) string {
	var sb strings.Builder
	sb.WriteString(hackathonsHeader)
	for _, h := range items {
		fmt.Fprintf(&sb, "**Title:** %s\n**Price:** $%d\n**Participating:** %d\n**Location:** %d\n\n",
			h.Title, h.Price, h.Participating, h.Location)
	}
	return sb.String()
}
