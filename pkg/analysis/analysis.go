// Package analysis reads the per-tape artifacts the video pipeline writes:
// a structured JSON analysis file, a plain-text transcript, and a folder of
// extracted clip files. The import scripts share these parsers.
package analysis

import (
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// AnalysisFilename is the structured analysis file inside a tape's analysis/
// subfolder.
const AnalysisFilename = "simple_director_analysis.json"

// TranscriptFilename is the plain-text transcript next to it.
const TranscriptFilename = "full_transcript.txt"

// File is the top-level shape of the analysis JSON. Two generations of the
// pipeline wrote it: the newer one fills the structured fields, the older one
// only SynthesisText.
type File struct {
	VideoAnalysis      VideoAnalysis       `json:"video_analysis"`
	ProcessingMetadata *ProcessingMetadata `json:"processing_metadata,omitempty"`
}

type VideoAnalysis struct {
	Title       string            `json:"title,omitempty"`
	ContentType string            `json:"content_type,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Characters  []Character       `json:"characters,omitempty"`
	Chapters    []AnalysisChapter `json:"chapters,omitempty"`
	Highlights  []Highlight       `json:"highlights,omitempty"`
	Quotes      []Quote           `json:"quotes,omitempty"`
	Themes      []string          `json:"themes,omitempty"`

	// Legacy format.
	SynthesisText        string  `json:"synthesis_text,omitempty"`
	TotalSegments        int     `json:"total_segments,omitempty"`
	TotalDurationMinutes float64 `json:"total_duration_minutes,omitempty"`
}

type Character struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description,omitempty"`
	IsSpeaking  bool   `json:"is_speaking,omitempty"`
}

type AnalysisChapter struct {
	Title             string   `json:"title"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	CharactersPresent []string `json:"characters_present,omitempty"`
}

type Highlight struct {
	Title              string   `json:"title"`
	Timestamp          string   `json:"timestamp,omitempty"`
	Description        string   `json:"description,omitempty"`
	EmotionalTone      string   `json:"emotional_tone,omitempty"`
	CharactersInvolved []string `json:"characters_involved,omitempty"`
}

type Quote struct {
	Text      string `json:"text"`
	Speaker   string `json:"speaker,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Context   string `json:"context,omitempty"`
}

type ProcessingMetadata struct {
	ProcessingTimeSeconds      float64 `json:"processing_time_seconds,omitempty"`
	TotalProcessingTimeMinutes float64 `json:"total_processing_time_minutes,omitempty"`
}

// ParseFile reads and decodes an analysis JSON file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	file := &File{}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, errors.WithStack(err)
	}
	return file, nil
}

// Metadata is the tape-level result of interpreting an analysis file, ready
// for the videos table.
type Metadata struct {
	Title           string
	Summary         string
	Characters      []string
	Chapters        []models.Chapter
	Highlights      []string
	DurationSeconds float64
}

// ExtractMetadata interprets an analysis file, preferring the structured
// format and falling back to the legacy synthesis text. A nil file yields
// just the default title derived from the directory name.
func ExtractMetadata(videoDir string, file *File) Metadata {
	meta := Metadata{Title: DefaultTitle(videoDir)}
	if file == nil {
		return meta
	}

	va := file.VideoAnalysis
	if va.Title != "" {
		meta.Title = va.Title
		meta.Summary = va.Summary
		for _, c := range va.Characters {
			meta.Characters = append(meta.Characters, c.Name)
		}
		for _, ch := range va.Chapters {
			meta.Chapters = append(meta.Chapters, models.Chapter{
				Title:     ch.Title,
				StartTime: ch.StartTime,
				Summary:   ch.Summary,
			})
		}
		for _, h := range va.Highlights {
			meta.Highlights = append(meta.Highlights, h.Title)
		}
	} else if va.SynthesisText != "" {
		meta.Summary = ExtractSummary(va.SynthesisText)
		meta.Characters = ExtractCharacters(va.SynthesisText)
	}

	minutes := va.TotalDurationMinutes
	if minutes == 0 && file.ProcessingMetadata != nil {
		minutes = file.ProcessingMetadata.TotalProcessingTimeMinutes
	}
	meta.DurationSeconds = math.Round(minutes * 60)

	return meta
}

// DefaultTitle turns a tape's directory name into a displayable title when no
// analysis provides one.
func DefaultTitle(videoDir string) string {
	title := strings.ReplaceAll(videoDir, "_", " ")
	return strings.ReplaceAll(title, "-", " - ")
}

var (
	summarySectionRe    = regexp.MustCompile(`(?is)\*\*1\. SUMMARY\*\*:?\s*\n?(.*?)(?:\n\*\*2\.|\z)`)
	charactersSectionRe = regexp.MustCompile(`(?is)\*\*2\. CHARACTERS\*\*:?\s*\n?(.*?)(?:\n\*\*3\.|\z)`)
	listItemRe          = regexp.MustCompile(`- ([^\n]+)`)
)

// ExtractSummary pulls the SUMMARY section out of a legacy synthesis text,
// capped at 500 characters. Without a recognizable section the head of the
// whole text is used.
func ExtractSummary(synthesisText string) string {
	if m := summarySectionRe.FindStringSubmatch(synthesisText); m != nil {
		return truncate(strings.TrimSpace(m[1]), 500)
	}
	return truncate(synthesisText, 500)
}

// ExtractCharacters pulls the bulleted names out of a legacy synthesis text's
// CHARACTERS section. Each bullet is "Name: role"; only the name survives.
func ExtractCharacters(synthesisText string) []string {
	m := charactersSectionRe.FindStringSubmatch(synthesisText)
	if m == nil {
		return nil
	}
	var names []string
	for _, item := range listItemRe.FindAllStringSubmatch(m[1], -1) {
		name := strings.SplitN(item[1], ":", 2)[0]
		names = append(names, strings.TrimSpace(name))
	}
	return names
}

var (
	chapterSectionRe = regexp.MustCompile(`(?is)CHAPTER BREAKDOWN\*?\*?:\s*(.*?)(?:\*\*\d+\.|HIGHLIGHTS|MEMORABLE|\z)`)
	timeRangeLineRe  = regexp.MustCompile(`\*\*(\d+:\d+:\d+)\s*-\s*(\d+:\d+:\d+)\*\*:\s*(.+)`)
	boldLineRe       = regexp.MustCompile(`\*\*([^*]+)\*\*:\s*(.+)`)
	plainLineRe      = regexp.MustCompile(`^-\s+(.+)`)
)

// ChapterInfo is one entry of a legacy CHAPTER BREAKDOWN section.
type ChapterInfo struct {
	TimeRange   string
	Description string
}

// ParseChapterBreakdown parses the CHAPTER BREAKDOWN section of a legacy
// synthesis text. The pipeline emitted three bullet formats over time, all
// handled here; unrecognized lines are skipped.
func ParseChapterBreakdown(synthesisText string) []ChapterInfo {
	m := chapterSectionRe.FindStringSubmatch(synthesisText)
	if m == nil {
		return nil
	}

	var chapters []ChapterInfo
	for _, line := range strings.Split(m[1], "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "-") {
			continue
		}

		if lm := timeRangeLineRe.FindStringSubmatch(line); lm != nil {
			chapters = append(chapters, ChapterInfo{
				TimeRange:   lm[1] + " - " + lm[2],
				Description: strings.TrimSpace(lm[3]),
			})
			continue
		}
		if lm := boldLineRe.FindStringSubmatch(line); lm != nil {
			chapters = append(chapters, ChapterInfo{
				TimeRange:   strings.TrimSpace(lm[1]),
				Description: strings.TrimSpace(lm[2]),
			})
			continue
		}
		if lm := plainLineRe.FindStringSubmatch(strings.TrimSpace(line)); lm != nil && len(lm[1]) > 10 {
			chapters = append(chapters, ChapterInfo{Description: strings.TrimSpace(lm[1])})
		}
	}
	return chapters
}

// CountWords counts transcript words the same way the processing status
// threshold expects.
func CountWords(transcript string) int {
	return len(strings.Fields(transcript))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
