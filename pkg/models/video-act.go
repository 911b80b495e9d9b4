package models

import (
	"github.com/uptrace/bun"
)

const (
	VideoActPriorityPrimary   = 1
	VideoActPrioritySecondary = 2
)

// VideoAct joins tapes to acts. A tape's footage may be relevant to multiple
// acts; Priority 1 marks the primary act.
type VideoAct struct {
	bun.BaseModel `bun:"table:video_acts,alias:va"`

	ID       int    `bun:",pk,nullzero" json:"id"`
	VideoID  int    `bun:",nullzero" json:"video_id"`
	Video    *Video `bun:"rel:belongs-to,join:video_id=id" json:"video,omitempty"`
	ActID    int    `bun:",nullzero" json:"act_id"`
	Act      *Act   `bun:"rel:belongs-to,join:act_id=id" json:"act,omitempty"`
	Priority int    `json:"priority"`
}
