package stackup

import (
	"encoding/json"
	"fmt"
)

// User is the payload of /get-user/{id}.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Nationality string `json:"nationality"`
	CareerLevel string `json:"career_level"`
	Role        string `json:"role"`
	TechStack   string `json:"tech_stack"`
}

// Balance is the payload of /get-user-balance/{id}. Only CurrentBalance is
// rendered; the ledger fields are kept for completeness.
type Balance struct {
	ID                int    `json:"id"`
	UserID            string `json:"user_id"`
	TotalEarnings     int    `json:"total_earnings"`
	TotalWithdrawn    int    `json:"total_withdrawn"`
	WithdrawalMethods string `json:"withdrawal_methods"`
	CurrentBalance    int    `json:"current_balance"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// Progress is the payload of /get-user-progress/{id}.
type Progress struct {
	ID                 int    `json:"id"`
	UserID             string `json:"user_id"`
	Submissions        int    `json:"submissions"`
	Submitted          int    `json:"submitted"`
	Rewarded           int    `json:"rewarded"`
	TotalQuestEarnings int    `json:"total_quest_earnings"`
}

// UnmarshalJSON accepts the live API's "total_quest_earings" spelling as
// well. The correct spelling wins whenever it is present.
func (p *Progress) UnmarshalJSON(b []byte) error {
	if err := requireFields(b, "progress", "submissions", "submitted", "rewarded"); err != nil {
		return err
	}
	type plain Progress
	var aux struct {
		plain
		Earnings *int `json:"total_quest_earnings"`
		Misspelt *int `json:"total_quest_earings"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Progress(aux.plain)
	switch {
	case aux.Earnings != nil:
		p.TotalQuestEarnings = *aux.Earnings
	case aux.Misspelt != nil:
		p.TotalQuestEarnings = *aux.Misspelt
	default:
		return fmt.Errorf("stackup: progress: missing field %q", "total_quest_earnings")
	}
	return nil
}

// Campaign is one entry of /stack-featured-campaigns.
type Campaign struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	SubTitle   string `json:"sub_title"`
	QuestCount int    `json:"quest_count"`
}

// Pathway is one entry of /stack-featured-pathways.
type Pathway struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Modules int    `json:"modules"`
	Skills  int    `json:"skills"`
}

// Hackathon is one entry of /stack-featured-hackathons.
// Location is a numeric code on the wire, not a label.
type Hackathon struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Price         int    `json:"price"`
	Participating int    `json:"participating"`
	Location      int    `json:"location"`
}

// Wire keys each record must carry.
var (
	userFields      = []string{"id", "username", "nationality", "career_level", "role", "tech_stack"}
	balanceFields   = []string{"current_balance"}
	campaignFields  = []string{"title", "sub_title", "quest_count"}
	pathwayFields   = []string{"title", "modules", "skills"}
	hackathonFields = []string{"title", "price", "participating", "location"}
)

// UnmarshalJSON rejects bodies missing any rendered field.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	if err := requireFields(b, "user", userFields...); err != nil {
		return err
	}
	return json.Unmarshal(b, (*plain)(u))
}

// UnmarshalJSON rejects bodies without current_balance.
func (bal *Balance) UnmarshalJSON(b []byte) error {
	type plain Balance
	if err := requireFields(b, "balance", balanceFields...); err != nil {
		return err
	}
	return json.Unmarshal(b, (*plain)(bal))
}

func (c *Campaign) UnmarshalJSON(b []byte) error {
	type plain Campaign
	if err := requireFields(b, "campaign", campaignFields...); err != nil {
		return err
	}
	return json.Unmarshal(b, (*plain)(c))
}

func (p *Pathway) UnmarshalJSON(b []byte) error {
	type plain Pathway
	if err := requireFields(b, "pathway", pathwayFields...); err != nil {
		return err
	}
	return json.Unmarshal(b, (*plain)(p))
}

func (h *Hackathon) UnmarshalJSON(b []byte) error {
	type plain Hackathon
	if err := requireFields(b, "hackathon", hackathonFields...); err != nil {
		return err
	}
	return json.Unmarshal(b, (*plain)(h))
}

// requireFields checks that b is a JSON object carrying every key with a
// non-null value.
func requireFields(b []byte, kind string, keys ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("stackup: %s: %w", kind, err)
	}
	if obj == nil {
		return fmt.Errorf("stackup: %s: expected an object", kind)
	}
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("stackup: %s: missing field %q", kind, k)
		}
	}
	return nil
}
