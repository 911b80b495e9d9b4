package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	ElementTypeJourneyPoint = "journey_point"
	ElementTypeKeyMoment    = "key_moment"
	ElementTypeTheme        = "theme"
	ElementTypeCharacter    = "character"
)

// StoryElement is a narrative beat, theme, key moment, or character profile.
// Themes and characters are act-independent, so ActID is nullable. SortOrder
// is only meaningful within the scope of (act_id, element_type).
type StoryElement struct {
	bun.BaseModel `bun:"table:story_elements,alias:se"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ActID        *int      `json:"act_id,omitempty"`
	Act          *Act      `bun:"rel:belongs-to,join:act_id=id" json:"act,omitempty"`
	ElementType  string    `bun:",nullzero" json:"element_type"`
	Title        string    `bun:",nullzero" json:"title"`
	Description  *string   `json:"description,omitempty"`
	Quote        *string   `json:"quote,omitempty"`
	WhyItMatters *string   `json:"why_it_matters,omitempty"`
	SortOrder    int       `json:"sort_order"`
}
