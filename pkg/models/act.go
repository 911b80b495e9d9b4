package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type Act struct {
	bun.BaseModel `bun:"table:acts,alias:a"`

	ID             int             `bun:",pk,nullzero" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ActNumber      int             `bun:",nullzero" json:"act_number"`
	Title          string          `bun:",nullzero" json:"title"`
	Description    *string         `json:"description,omitempty"`
	DurationTarget *string         `json:"duration_target,omitempty"`
	Tone           *string         `json:"tone,omitempty"`
	Elements       []*StoryElement `bun:"rel:has-many,join:id=act_id" json:"elements,omitempty"`
}

// Label formats the act number with roman numerals, matching the site's
// display convention (Act I / Act II / Act III).
func (a *Act) Label() string {
	switch a.ActNumber {
	case 1:
		return "Act I"
	case 2:
		return "Act II"
	case 3:
		return "Act III"
	}
	return fmt.Sprintf("Act %d", a.ActNumber)
}
