// Package sitedata loads the JSON data files bundled with the site: the
// character-profile index, the per-tape analysis index, and the flattened
// timeline. These are curated artifacts checked into the data directory, not
// database rows; they change when the pipeline reruns, so they are read once
// at startup.
package sitedata

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/petedyestory/tapedeck/pkg/analysis"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

const (
	characterProfilesFile = "characterProfiles.json"
	videoAnalysesFile     = "videoAnalyses.json"
	timelineFile          = "timeline.json"
)

type ProfileQuote struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
	Context   string `json:"context,omitempty"`
}

type Appearance struct {
	Video       string         `json:"video"`
	Role        string         `json:"role,omitempty"`
	IsSpeaking  bool           `json:"is_speaking,omitempty"`
	Description string         `json:"description,omitempty"`
	Quotes      []ProfileQuote `json:"quotes,omitempty"`
}

type CharacterProfile struct {
	Name        string       `json:"name"`
	Appearances []Appearance `json:"appearances"`
	TotalVideos int          `json:"total_videos"`
	TotalQuotes int          `json:"total_quotes"`
}

type TimelineEvent struct {
	DateEstimate string   `json:"date_estimate"`
	Title        string   `json:"title"`
	Video        string   `json:"video"`
	Chapter      *string  `json:"chapter,omitempty"`
	StartTime    string   `json:"start_time"`
	EndTime      *string  `json:"end_time,omitempty"`
	Summary      string   `json:"summary"`
	Characters   []string `json:"characters"`
}

// YearGroup is the timeline page's unit of display.
type YearGroup struct {
	Year   string
	Events []TimelineEvent
}

// Store holds the parsed data files. Zero values are safe; a missing file
// just leaves its section empty.
type Store struct {
	characters []CharacterProfile
	analyses   map[string]analysis.VideoAnalysis
	timeline   []TimelineEvent
}

// Load reads the three data files from dir. A file that does not exist is
// skipped; any other read or parse error is returned, since shipping a
// corrupt data file is a build problem worth failing loudly on.
func Load(dir string) (*Store, error) {
	store := &Store{analyses: map[string]analysis.VideoAnalysis{}}

	if err := loadJSON(filepath.Join(dir, characterProfilesFile), &store.characters); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, videoAnalysesFile), &store.analyses); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, timelineFile), &store.timeline); err != nil {
		return nil, err
	}

	return store, nil
}

func loadJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.WithStack(err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrapf(err, "parsing %s", filepath.Base(path))
	}
	return nil
}

// Characters returns every profile sorted by quote count descending, name
// ascending as a tiebreak.
func (s *Store) Characters() []CharacterProfile {
	characters := make([]CharacterProfile, len(s.characters))
	copy(characters, s.characters)
	sort.SliceStable(characters, func(i, j int) bool {
		if characters[i].TotalQuotes != characters[j].TotalQuotes {
			return characters[i].TotalQuotes > characters[j].TotalQuotes
		}
		return characters[i].Name < characters[j].Name
	})
	return characters
}

// Character finds a profile by exact name.
func (s *Store) Character(name string) (CharacterProfile, bool) {
	for _, c := range s.characters {
		if c.Name == name {
			return c, true
		}
	}
	return CharacterProfile{}, false
}

// Featured returns the profiles for the given names, in the given order,
// skipping names with no profile.
func (s *Store) Featured(names []string) []CharacterProfile {
	var featured []CharacterProfile
	for _, name := range names {
		if c, ok := s.Character(name); ok {
			featured = append(featured, c)
		}
	}
	return featured
}

// Analysis returns the structured analysis for a tape slug.
func (s *Store) Analysis(slug string) (analysis.VideoAnalysis, bool) {
	a, ok := s.analyses[slug]
	return a, ok
}

// Slugs returns every known tape slug, sorted.
func (s *Store) Slugs() []string {
	slugs := make([]string, 0, len(s.analyses))
	for slug := range s.analyses {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Timeline returns the raw event list.
func (s *Store) Timeline() []TimelineEvent {
	return s.timeline
}

// TimelineByYear groups events by date estimate, years ascending. Event
// order within a year is preserved from the file.
func (s *Store) TimelineByYear() []YearGroup {
	byYear := map[string][]TimelineEvent{}
	var years []string
	for _, event := range s.timeline {
		if _, ok := byYear[event.DateEstimate]; !ok {
			years = append(years, event.DateEstimate)
		}
		byYear[event.DateEstimate] = append(byYear[event.DateEstimate], event)
	}
	sort.Strings(years)

	groups := make([]YearGroup, 0, len(years))
	for _, year := range years {
		groups = append(groups, YearGroup{Year: year, Events: byYear[year]})
	}
	return groups
}

var trailingReelRe = regexp.MustCompile(`-(\d{3})$`)

// HumanizeVideoName turns a tape directory name into display text, dropping
// trailing reel-number suffixes like "-009".
func HumanizeVideoName(dirName string) string {
	name := strings.ReplaceAll(dirName, "_", " ")
	name = trailingReelRe.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// HumanizeSlug turns a tape slug into display text.
func HumanizeSlug(slug string) string {
	name := strings.ReplaceAll(slug, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.Join(strings.Fields(name), " ")
}
