package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Clip is a short extracted segment of a tape, individually playable. The
// natural key is (video_id, filename). StoragePath and ThumbnailPath are
// nullable; when absent, URLs are derived from the parent video's filename
// plus the clip's own (see pkg/assets).
type Clip struct {
	bun.BaseModel `bun:"table:clips,alias:c"`

	ID              int       `bun:",pk,nullzero" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	VideoID         int       `bun:",nullzero" json:"video_id"`
	Video           *Video    `bun:"rel:belongs-to,join:video_id=id" json:"video,omitempty"`
	Title           *string   `json:"title,omitempty"`
	Filename        string    `bun:",nullzero" json:"filename"`
	StoragePath     *string   `json:"storage_path,omitempty"`
	ThumbnailPath   *string   `json:"thumbnail_path,omitempty"`
	StartTime       *string   `json:"start_time,omitempty"`
	DurationSeconds *float64  `json:"duration_seconds,omitempty"`
	Description     *string   `json:"description,omitempty"`
	SortOrder       int       `json:"sort_order"`
}

// ParseSortOrder recovers a clip's display position from the leading digit
// run of its filename: "007-handshake.mp4" => 7, "handshake.mp4" => 0.
func ParseSortOrder(filename string) int {
	n := 0
	seen := false
	for _, r := range filename {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}

// DisplayTitle falls back from description to title to a humanized filename,
// matching what the player's info bar shows.
func (c *Clip) DisplayTitle() string {
	if c.Description != nil && *c.Description != "" {
		return *c.Description
	}
	if c.Title != nil && *c.Title != "" {
		return *c.Title
	}
	name := strings.TrimSuffix(c.Filename, ".mp4")
	return strings.ReplaceAll(name, "-", " ")
}
