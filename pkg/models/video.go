package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const (
	ProcessingStatusPending = "pending"
	ProcessingStatusPartial = "partial"
	ProcessingStatusFull    = "full"
	ProcessingStatusFailed  = "failed"
)

// fullTranscriptWordCount is the threshold above which a tape's transcript is
// considered complete.
const fullTranscriptWordCount = 500

// ProcessingStatusForWordCount derives a tape's processing status from its
// transcript length.
func ProcessingStatusForWordCount(words int) string {
	if words > fullTranscriptWordCount {
		return ProcessingStatusFull
	}
	return ProcessingStatusPartial
}

// Chapter is a named, timestamped sub-segment of a tape's analysis. Chapters
// describe content; clips are extracted files.
type Chapter struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	Summary   string `json:"summary,omitempty"`
}

// Video is one row per source tape. Filename is the stable natural key; the
// characters/chapters/highlights lists are stored as JSON text columns and
// round-tripped through MarshalData/UnmarshalData.
type Video struct {
	bun.BaseModel `bun:"table:videos,alias:v"`

	ID                  int       `bun:",pk,nullzero" json:"id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	Filename            string    `bun:",nullzero" json:"filename"`
	Title               string    `bun:",nullzero" json:"title"`
	Summary             *string   `json:"summary,omitempty"`
	DurationSeconds     *float64  `json:"duration_seconds,omitempty"`
	CharactersData      string    `bun:"characters,nullzero" json:"-"`
	ChaptersData        string    `bun:"chapters,nullzero" json:"-"`
	HighlightsData      string    `bun:"highlights,nullzero" json:"-"`
	Characters          []string  `bun:"-" json:"characters"`
	Chapters            []Chapter `bun:"-" json:"chapters"`
	Highlights          []string  `bun:"-" json:"highlights"`
	TranscriptWordCount int       `json:"transcript_word_count"`
	ProcessingStatus    string    `bun:",nullzero" json:"processing_status"`
	Clips               []*Clip   `bun:"rel:has-many,join:id=video_id" json:"clips,omitempty"`
}

// MarshalData serializes the list fields into their JSON text columns before
// an insert or update.
func (v *Video) MarshalData() error {
	for _, field := range []struct {
		dst *string
		src interface{}
	}{
		{&v.CharactersData, v.Characters},
		{&v.ChaptersData, v.Chapters},
		{&v.HighlightsData, v.Highlights},
	} {
		data, err := json.Marshal(field.src)
		if err != nil {
			return errors.WithStack(err)
		}
		*field.dst = string(data)
	}
	return nil
}

// UnmarshalData parses the JSON text columns into the list fields after a
// select. Empty columns yield empty lists, never an error.
func (v *Video) UnmarshalData() error {
	for _, field := range []struct {
		src string
		dst interface{}
	}{
		{v.CharactersData, &v.Characters},
		{v.ChaptersData, &v.Chapters},
		{v.HighlightsData, &v.Highlights},
	} {
		if field.src == "" {
			continue
		}
		if err := json.Unmarshal([]byte(field.src), field.dst); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
