package models

import (
	"github.com/uptrace/bun"
)

// ClipStoryLink joins clips to story elements. IsPrimary marks the best clip
// for an element; at most one primary per element is a convention established
// by the linking script, not a constraint the schema enforces.
type ClipStoryLink struct {
	bun.BaseModel `bun:"table:clip_story_links,alias:csl"`

	ID             int           `bun:",pk,nullzero" json:"id"`
	ClipID         int           `bun:",nullzero" json:"clip_id"`
	Clip           *Clip         `bun:"rel:belongs-to,join:clip_id=id" json:"clip,omitempty"`
	StoryElementID int           `bun:",nullzero" json:"story_element_id"`
	StoryElement   *StoryElement `bun:"rel:belongs-to,join:story_element_id=id" json:"story_element,omitempty"`
	IsPrimary      bool          `json:"is_primary"`
	RelevanceNotes *string       `json:"relevance_notes,omitempty"`
}
